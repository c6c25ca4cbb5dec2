package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackbar/pkg/chart/config"
)

// configCommand creates the chart configuration command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with chart configuration files",
	}

	cmd.AddCommand(c.configDefaultCommand())
	cmd.AddCommand(c.configCheckCommand())

	return cmd
}

// configDefaultCommand creates the "config default" subcommand.
func (c *CLI) configDefaultCommand() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "default",
		Short: "Print the stock configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Encode(config.Default(), format)
			if err != nil {
				return err
			}
			_, err = c.Out.Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format: toml, yaml, json")
	return cmd
}

// configCheckCommand creates the "config check" subcommand.
func (c *CLI) configCheckCommand() *cobra.Command {
	var show bool
	cmd := &cobra.Command{
		Use:   "check [config file]",
		Short: "Validate a configuration file",
		Long:  `Check loads a configuration file on top of the defaults and validates it. With --print the effective configuration is written in the file's own format.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if show {
				data, err := config.Encode(cfg, strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
				if err != nil {
					return err
				}
				_, err = c.Out.Write(data)
				return err
			}
			c.printSuccess("%s is valid", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&show, "print", false, "print the effective configuration")
	return cmd
}
