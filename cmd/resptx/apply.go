package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"resptx/internal/config"
	"resptx/internal/core/rules"
	"resptx/internal/core/transform"
)

var (
	applyRulesFile   string
	applyContentType string
	applyVerbose     bool
)

var applyCmd = &cobra.Command{
	Use:   "apply [body.json|-]",
	Short: "Apply the JSON body rules to a file",
	Long: `Run the JSON body transformation offline against a file (or stdin) and print
the result. The body is printed unchanged when no rule applies.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadApplyRules()
		if err != nil {
			return err
		}

		body, err := readBody(cmd.InOrStdin(), args)
		if err != nil {
			return err
		}

		log := zap.NewNop()
		if applyVerbose {
			if log, err = zap.NewDevelopment(); err != nil {
				return err
			}
		}

		out := body
		if cfg.JSON != nil && transform.IsJSONMimeType(applyContentType) {
			out, _, err = transform.New(log).Body(cfg.JSON, body)
			if err != nil {
				return err
			}
		}

		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func SetupApplyCmd() {
	rootCmd.AddCommand(applyCmd)

	applyCmd.Flags().StringVarP(&applyRulesFile, "rules", "r", "", "JSON rules document (default: transform section of the config)")
	applyCmd.Flags().StringVar(&applyContentType, "content-type", "application/json", "Content-Type the body is treated as")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "Log every applied rule to stderr")
}

func loadApplyRules() (*rules.Config, error) {
	if applyRulesFile != "" {
		data, err := os.ReadFile(applyRulesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read rules: %w", err)
		}
		in, err := rules.ParseJSON(data)
		if err != nil {
			return nil, err
		}
		return rules.Resolve(in), nil
	}

	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	in, err := settings.Transform.Parse()
	if err != nil {
		return nil, fmt.Errorf("invalid transform configuration: %w", err)
	}
	return rules.Resolve(in), nil
}

func readBody(stdin io.Reader, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return data, nil
}
