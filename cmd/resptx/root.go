package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resptx/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "resptx",
	Short: "Rule-driven response transformer",
	Long: `resptx - a reverse proxy that rewrites upstream response headers and
JSON bodies with an ordered set of remove/rename/replace/add/append rules.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/config.yaml)")
}

func initConfig() {
	config.Init(cfgFile)
}
