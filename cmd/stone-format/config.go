package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "unable to encode config")
	}

	_, err = cmd.OutOrStdout().Write(out)

	return errors.Wrap(err, "unable to print config")
}
