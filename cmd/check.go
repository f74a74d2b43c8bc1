package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfix-dev/jfix/formatter"
	"github.com/jfix-dev/jfix/internal"
	tt "github.com/jfix-dev/jfix/internal/types"
	"github.com/jfix-dev/jfix/rewrite"
)

var (
	checkJSONOutput bool
	checkOutPath    string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report methods that would be rewritten, without touching any file",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		engine, err := rewrite.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize rewrite engine", zap.Error(err))
		}

		results, err := rewrite.ProcessFiles(ctx, logger, engine, args)
		if err != nil {
			logger.Fatal("Failed to process files", zap.Error(err))
		}

		diags := collectDiagnostics(results)
		if checkJSONOutput {
			if err := printJSON(diags, checkOutPath); err != nil {
				logger.Fatal("Failed to output JSON", zap.Error(err))
			}
		} else if len(diags) > 0 {
			fmt.Println(formatter.FormatDiagnostics(diags))
		}

		for _, result := range results {
			if result.Changed {
				os.Exit(1)
			}
		}
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSONOutput, "json", false, "Output diagnostics in JSON format")
	checkCmd.Flags().StringVarP(&checkOutPath, "output", "o", "", "Output path (when using JSON)")
}

func collectDiagnostics(results []internal.Result) []tt.Diagnostic {
	var diags []tt.Diagnostic
	for _, result := range results {
		diags = append(diags, result.Diagnostics...)
	}
	return diags
}

func printJSON(diags []tt.Diagnostic, outPath string) error {
	data, err := json.MarshalIndent(diags, "", "  ")
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(outPath, data, 0o644)
}
