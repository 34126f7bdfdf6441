// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texpng/internal/atlas"
	"github.com/pdiddy/texpng/pkg/types"
)

var atlasCmd = &cobra.Command{
	Use:   "atlas <imageMap.png> <imageCoords.txt>",
	Short: "Extract sprites from a packed image map",
	Long: `Atlas crops individual sprites out of a packed image map. The coords
file names one region per line as "rel_path x y w h"; each region is saved
as a PNG at rel_path under the output base directory. Invalid lines and
failing entries are reported and skipped.

By default sprites are written under the image map's grandparent directory,
which is where the rel_paths in extracted coords files point.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := types.AtlasConfig{
			OutputDir: stringSetting(cmd, "output-dir", "atlas.output_dir", ""),
		}

		result, err := atlas.Extract(args[0], args[1], cfg.OutputDir, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\nAtlas summary: %d extracted, %d skipped, %d failed\n",
			result.Extracted, result.Skipped, result.Failed)
		return nil
	},
}

func init() {
	atlasCmd.Flags().String("output-dir", "", "base directory for extracted sprites (default: the map's grandparent directory)")

	rootCmd.AddCommand(atlasCmd)
}
