// Package commands implements the schemalike command line.
package commands

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Config carries the settings main reads from the environment.
type Config struct {
	Version string
	Addr    string
}

func Execute(ctx context.Context, cfg Config) error {
	return newRootCommand(cfg).ExecuteContext(ctx)
}

func newRootCommand(cfg Config) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "schemalike",
		Short: "Build JSON Schemas from examples",
		Long: `schemalike infers JSON Schema (draft-07) documents from example values,
validates data against them and learns OpenAPI request bodies from samples.`,
		Version:       cfg.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newInferCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newOptsCommand())
	rootCmd.AddCommand(newServeCommand(cfg))

	return rootCmd
}

// readInput reads the named file, or the command's input when path is "" or "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		return b, errors.Wrap(err, "read stdin")
	}
	b, err := os.ReadFile(path)
	return b, errors.Wrapf(err, "read %s", path)
}

// isYAMLInput resolves the input format from an explicit flag or the file extension.
func isYAMLInput(format, path string) bool {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return true
	case "json":
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
