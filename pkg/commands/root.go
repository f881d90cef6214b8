package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	verbosity  string
	configFile string
	simulate   bool
)

var rootCmd = &cobra.Command{
	Use:   "nvmemictl",
	Short: "CLI for NVMe drive discovery and health over MCTP",
	Long:  "A CLI tool to discover NVMe drives behind an I2C/I3C backplane and poll their health via NVMe-MI over MCTP.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setUpLogs(verbosity)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&verbosity, "verbosity", "v", zerolog.WarnLevel.String(), "Log level (debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ./nvmemictl.yaml, /etc/nvmemictl/nvmemictl.yaml)")
	rootCmd.PersistentFlags().BoolVar(&simulate, "simulate", false, "Use a simulated backplane instead of a registered bus provider")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(exporterCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setUpLogs sets the log output and the log level.
func setUpLogs(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	return nil
}
