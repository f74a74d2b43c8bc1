package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jfix-dev/jfix/formatter"
	"github.com/jfix-dev/jfix/internal"
	"github.com/jfix-dev/jfix/rewrite"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Watch directories and rewrite .java files as they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide directory paths")
			os.Exit(1)
		}

		engine, err := rewrite.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize rewrite engine", zap.Error(err))
		}

		err = engine.StartWatching(args, func(result internal.Result) {
			if _, err := rewrite.WriteResults([]internal.Result{result}, false); err != nil {
				logger.Error("Failed to write result", zap.Error(err))
				return
			}
			if len(result.Diagnostics) > 0 {
				fmt.Println(formatter.FormatDiagnostics(result.Diagnostics))
			}
		})
		if err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		defer func() {
			if err := engine.StopWatching(); err != nil {
				logger.Error("Failed to stop watching", zap.Error(err))
			}
		}()

		fmt.Println("Watching for changes. Press Ctrl+C to stop.")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
	},
}
