package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"resptx/internal/config"
	"resptx/internal/core/rules"
)

var validateOutput string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configured transform rules",
	Long:  `Parse and resolve the transform section of the configuration and print the resulting rule sets.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}

		in, err := settings.Transform.Parse()
		if err != nil {
			return fmt.Errorf("invalid transform configuration: %w", err)
		}

		return printConfig(cmd.OutOrStdout(), rules.Resolve(in), validateOutput)
	},
}

func SetupValidateCmd() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateOutput, "output", "o", "text", "Output format: text, yaml or json")
}

func printConfig(w io.Writer, cfg *rules.Config, format string) error {
	switch strings.ToLower(format) {
	case "yaml":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	case "json":
		out, err := sonic.ConfigStd.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text", "":
		printText(w, cfg)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func printText(w io.Writer, cfg *rules.Config) {
	if cfg.Empty() {
		fmt.Fprintln(w, "configuration is valid: no rules, responses pass through unchanged")
		return
	}
	fmt.Fprintln(w, "configuration is valid")

	if h := cfg.Headers; h != nil {
		fmt.Fprintf(w, "headers: remove=%d rename=%d replace=%d add=%d append=%d\n",
			len(h.Remove), len(h.Rename), len(h.Replace), len(h.Add), len(h.Append))
		printPairs(w, "rename", h.Rename)
		printPairs(w, "replace", h.Replace)
		printPairs(w, "add", h.Add)
		printPairs(w, "append", h.Append)
	} else {
		fmt.Fprintln(w, "headers: none")
	}

	if j := cfg.JSON; j != nil {
		fmt.Fprintf(w, "json:    remove=%d rename=%d replace=%d add=%d append=%d\n",
			len(j.Remove), len(j.Rename), len(j.Replace), len(j.Add), len(j.Append))
		printPairs(w, "rename", j.Rename)
	} else {
		fmt.Fprintln(w, "json:    none")
	}
}

func printPairs(w io.Writer, action string, pairs []rules.KeyValue) {
	for _, kv := range pairs {
		fmt.Fprintf(w, "  %-8s %s\n", action, kv.String())
	}
}
