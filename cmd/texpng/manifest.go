// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texpng/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest <db>",
	Short: "Inspect a conversion manifest database",
	Long: `Manifest lists the conversion records stored in a manifest database
written by "texpng convert --manifest". The table format shows one line per
source file; yaml dumps the full records.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(args[0]); err != nil {
			return fmt.Errorf("manifest database: %w", err)
		}

		store, err := manifest.Open(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		format, _ := cmd.Flags().GetString("format")
		switch format {
		case "table":
			return store.WriteTable(os.Stdout)
		case "yaml":
			return store.ExportYAML(os.Stdout)
		default:
			return fmt.Errorf("unknown format %q (want table or yaml)", format)
		}
	},
}

func init() {
	manifestCmd.Flags().String("format", "table", "output format: table or yaml")

	rootCmd.AddCommand(manifestCmd)
}
