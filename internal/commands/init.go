package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/config"
)

func newInitCommand() *cobra.Command {
	var format string
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create bankview.yaml and a data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			if err := runInit(absDir, format, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized bankview project at %s\n", absDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "default data format (json, csv, xlsx)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing bankview.yaml")

	return cmd
}

func runInit(dir, format string, force bool) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	switch format {
	case "json", "csv", "xlsx":
	default:
		return fmt.Errorf("unsupported format %q", format)
	}

	// Create data directory.
	cfg := config.Default()
	cfg.Data.Format = format
	if err := os.MkdirAll(filepath.Join(dir, cfg.Data.Dir), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", cfg.Data.Dir, err)
	}

	// Write bankview.yaml.
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write .gitignore.
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(".env\n"), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	return nil
}
