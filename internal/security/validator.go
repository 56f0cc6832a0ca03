// Package security provides path validation for tool requests.
package security

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/d-kuro/mdtoc/internal/errors"
)

// Validator defines the path validation interface.
type Validator interface {
	ValidatePath(path string) error
	SanitizePath(path string) (string, error)
}

// DefaultValidator checks paths against allow and block lists.
type DefaultValidator struct {
	allowedPaths []string
	blockedPaths []string
}

// NewDefaultValidator creates a new default validator with secure defaults.
func NewDefaultValidator() *DefaultValidator {
	return &DefaultValidator{
		allowedPaths: []string{},
		blockedPaths: []string{
			"/etc",
			"/usr/bin",
			"/usr/sbin",
			"/sbin",
			"/bin",
			"/sys",
			"/proc",
		},
	}
}

// WithAllowedPaths restricts requests to the given directories. Paths are
// resolved through symlinks the same way requested paths are.
func (v *DefaultValidator) WithAllowedPaths(paths []string) *DefaultValidator {
	v.allowedPaths = make([]string, 0, len(paths))
	for _, p := range paths {
		v.allowedPaths = append(v.allowedPaths, resolve(p))
	}
	return v
}

// WithBlockedPaths adds blocked paths to the default list.
func (v *DefaultValidator) WithBlockedPaths(paths []string) *DefaultValidator {
	for _, p := range paths {
		v.blockedPaths = append(v.blockedPaths, resolve(p))
	}
	return v
}

// ValidatePath validates and checks if a file path is allowed.
func (v *DefaultValidator) ValidatePath(path string) error {
	if !filepath.IsAbs(path) {
		return errors.Security("path must be absolute")
	}

	resolvedPath := resolve(path)

	for _, blocked := range v.blockedPaths {
		if hasPathPrefix(resolvedPath, blocked) {
			return errors.SecurityWithDetails(
				"path is blocked",
				"path accesses restricted system directory",
			)
		}
	}

	if len(v.allowedPaths) > 0 {
		allowed := false
		for _, allowedPath := range v.allowedPaths {
			if hasPathPrefix(resolvedPath, allowedPath) {
				allowed = true
				break
			}
		}
		if !allowed {
			return errors.SecurityWithDetails(
				"path not allowed",
				"path is not in allowed directories",
			)
		}
	}

	return nil
}

// SanitizePath cleans and validates a file path.
func (v *DefaultValidator) SanitizePath(path string) (string, error) {
	if err := v.ValidatePath(path); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(path)
	return cleanPath, nil
}

// Absolute resolves path against the current working directory when it is
// relative.
func Absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return filepath.Join(cwd, path), nil
}

// resolve cleans path and follows symlinks when the path exists.
func resolve(path string) string {
	cleanPath := filepath.Clean(path)
	resolved, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return cleanPath
	}
	return resolved
}

// hasPathPrefix reports whether path equals prefix or lies below it.
func hasPathPrefix(path, prefix string) bool {
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	if prefix == string(filepath.Separator) {
		return true
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}
