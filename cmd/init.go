package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/jfix-dev/jfix/rewrite"
)

// initCmd: jfix init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new rewrite configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".jfix.yaml"
	}

	d, err := yaml.Marshal(rewrite.DefaultConfig())
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}
	return nil
}
