// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/texpng/internal/convert"
	"github.com/pdiddy/texpng/internal/manifest"
	"github.com/pdiddy/texpng/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_dir> <output_dir>",
	Short: "Convert a tree of TEX files to PNG images",
	Long: `Convert recursively finds every .tex file under the input directory and
renders it to a PNG under the output directory, mirroring the input's
subdirectory structure. Each file is converted independently: a failing
file is reported on stderr and the batch moves on to the next one.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := convertConfig(cmd)
		inputRoot, outputRoot := args[0], args[1]

		info, err := os.Stat(inputRoot)
		if err != nil {
			return fmt.Errorf("input directory: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("input path %s is not a directory", inputRoot)
		}

		var conv convert.Converter
		switch cfg.Backend {
		case types.BackendSiltex:
			conv, err = convert.NewSiltexConverter(cfg.SiltexBin)
			if err != nil {
				return err
			}
		case types.BackendBuiltin:
			conv = convert.NewBuiltinConverter()
		default:
			return fmt.Errorf("unknown backend %q (want siltex or builtin)", cfg.Backend)
		}

		opts := convert.BatchOptions{Jobs: cfg.Jobs}
		if cfg.ManifestPath != "" {
			store, err := manifest.Open(cfg.ManifestPath)
			if err != nil {
				return err
			}
			defer store.Close()
			opts.Ledger = store
		}

		textures, err := convert.Discover(inputRoot, outputRoot)
		if err != nil {
			return err
		}

		// Per-file failures are reported inside the batch and do not
		// affect the exit status.
		convert.Batch(conv, textures, opts, os.Stderr)
		return nil
	},
}

// convertConfig resolves convert settings: flags win, then config file
// keys under "convert.", then defaults.
func convertConfig(cmd *cobra.Command) types.ConvertConfig {
	cfg := types.ConvertConfig{
		Backend:      types.ConvertBackend(stringSetting(cmd, "backend", "convert.backend", string(types.BackendSiltex))),
		SiltexBin:    stringSetting(cmd, "siltex-bin", "convert.siltex_bin", "siltex"),
		ManifestPath: stringSetting(cmd, "manifest", "convert.manifest_path", ""),
	}
	cfg.Jobs, _ = cmd.Flags().GetInt("jobs")
	if !cmd.Flags().Changed("jobs") && viper.IsSet("convert.jobs") {
		cfg.Jobs = viper.GetInt("convert.jobs")
	}
	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}
	return cfg
}

// stringSetting reads a flag, falling back to the config file when the
// flag was left at its default.
func stringSetting(cmd *cobra.Command, flag, key, def string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	if v == "" {
		return def
	}
	return v
}

func init() {
	convertCmd.Flags().String("backend", string(types.BackendSiltex), "conversion backend: siltex or builtin")
	convertCmd.Flags().String("siltex-bin", "siltex", "name or path of the external siltex binary")
	convertCmd.Flags().Int("jobs", 1, "number of concurrent conversion workers")
	convertCmd.Flags().String("manifest", "", "SQLite manifest database for incremental runs")

	rootCmd.AddCommand(convertCmd)
}
