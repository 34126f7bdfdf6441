// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/texpng/internal/texfile"
)

var tex2pngCmd = &cobra.Command{
	Use:   "tex2png <file.tex>",
	Short: "Decode a single TEX file to PNG",
	Long: `Tex2png decodes one TEX container with the builtin decoder and writes
an RGBA PNG. Without -o the output lands next to the current directory
under the input's base name with a .png extension; that default requires
the input to carry a .tex extension.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		texPath := args[0]

		outPath, _ := cmd.Flags().GetString("output")
		if outPath == "" {
			if !strings.EqualFold(filepath.Ext(texPath), ".tex") {
				return fmt.Errorf("no output path provided and %s doesn't have a .tex extension", texPath)
			}
			base := filepath.Base(texPath)
			outPath = strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
		}

		img, err := texfile.DecodeFile(texPath)
		if err != nil {
			return err
		}
		return texfile.WritePNG(outPath, img)
	},
}

func init() {
	tex2pngCmd.Flags().StringP("output", "o", "", "output PNG path")

	rootCmd.AddCommand(tex2pngCmd)
}
