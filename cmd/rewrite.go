package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfix-dev/jfix/formatter"
	"github.com/jfix-dev/jfix/rewrite"
)

var (
	dryRun      bool
	ignoreRules string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [paths...]",
	Short: "Apply the rewrite rules and update files in place",
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

		if ignoreRules != "" {
			for _, rule := range strings.Split(ignoreRules, ",") {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		results, err := rewrite.ProcessFiles(ctx, logger, engine, args)
		if err != nil {
			logger.Fatal("Failed to process files", zap.Error(err))
		}

		written, err := rewrite.WriteResults(results, dryRun)
		if err != nil {
			logger.Fatal("Failed to write results", zap.Error(err))
		}

		diags := collectDiagnostics(results)
		if len(diags) > 0 {
			fmt.Println(formatter.FormatDiagnostics(diags))
		}
		fmt.Println(formatter.FormatSummary(results))
		if dryRun {
			fmt.Printf("dry-run: %d file(s) would be rewritten\n", written)
		}
	},
}

func init() {
	rewriteCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show rewrites without applying them")
	rewriteCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of rules to ignore")
}
