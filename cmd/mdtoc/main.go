// Package main implements the mdtoc command, which renders a grouped table
// of contents for a tree of Markdown files into a README.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/d-kuro/mdtoc/internal/cmd"
	"github.com/d-kuro/mdtoc/internal/config"
	"github.com/d-kuro/mdtoc/internal/logging"
	"github.com/d-kuro/mdtoc/internal/toc"
	"github.com/d-kuro/mdtoc/pkg/version"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// rootFlags holds the flags shared by the root command and its subcommands
type rootFlags struct {
	configPath string
}

// newRootCmd represents the base command when called without any subcommands
func newRootCmd() *cobra.Command {
	opts := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdtoc",
		Short: "Generate a README table of contents for a Markdown tree",
		Long: `mdtoc scans the Markdown root for *.md files, groups them by directory and
writes readme.md as readme.header.md, one section per directory, then readme.footer.md.

The root is read from MARKDOWN_ROOT (or npm_package_config_markdownRoot) or from
the root key of .mdtoc.yaml.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file (default "+config.DefaultConfigFile+" if present)")

	rootCmd.AddCommand(cmd.NewVersionCmd())
	rootCmd.AddCommand(newServeCmd(opts))

	return rootCmd
}

// runGenerate runs the table of contents pipeline once
func runGenerate(cmd *cobra.Command, opts *rootFlags) error {
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetVersion().String())
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(cfg.LogLevel)
	logger.Debug("Loaded configuration",
		slog.String("root", cfg.Root),
		slog.String("pattern", cfg.Pattern),
		slog.String("output", cfg.Output))

	if _, err := toc.NewGenerator(cfg, logger).Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to generate table of contents: %w", err)
	}

	return nil
}
