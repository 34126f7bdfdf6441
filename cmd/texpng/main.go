// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the texpng CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the texpng CLI.
var rootCmd = &cobra.Command{
	Use:   "texpng",
	Short: "Batch extraction of game texture assets",
	Long: `texpng converts proprietary TEX texture files into PNG images and
unpacks sprite atlases. The convert subcommand walks a directory tree and
renders every .tex file it finds into a mirrored output tree, either by
driving the external siltex renderer or with the builtin decoder.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./texpng.yaml or ~/.config/texpng/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("texpng")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "texpng"))
		}
	}

	viper.SetEnvPrefix("TEXPNG")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
