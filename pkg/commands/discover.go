package commands

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pmarks/mctp/pkg/discovery"
)

var (
	discoverConnectors string
	discoverChannels   string
	discoverTargetAddr uint8
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Sweep the backplane for NVMe drives and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadConfig()
		if err != nil {
			return err
		}

		connectorsSpec := discoverConnectors
		if connectorsSpec == "" {
			connectorsSpec = v.GetString(keyConnectors)
		}
		connectors, err := parseConnectors(connectorsSpec)
		if err != nil {
			return err
		}

		channelsSpec := discoverChannels
		if channelsSpec == "" {
			channelsSpec = v.GetString(keyChannels)
		}

		targetAddr := discoverTargetAddr
		if !cmd.Flags().Changed("target-address") {
			targetAddr = uint8(v.GetInt(keyTargetAddress))
		}

		provider, err := resolveProvider()
		if err != nil {
			return err
		}

		result := discovery.DiscoverNVMeDrives(provider, discovery.SweepConfig{
			Connectors:    connectors,
			Channels:      parseChannels(channelsSpec),
			TargetAddress: targetAddr,
		})

		log.Info().
			Int("drives", len(result.Drives)).
			Int("errors", len(result.Errors)).
			Msg("sweep finished")

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling result: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	discoverCmd.Flags().StringVar(&discoverConnectors, "connectors", "", "Comma-separated connector indices (default: 0-5)")
	discoverCmd.Flags().StringVar(&discoverChannels, "channels", "", "Comma-separated channels (default: a,b)")
	discoverCmd.Flags().Uint8Var(&discoverTargetAddr, "target-address", discovery.DefaultTargetAddress, "7-bit slave address to probe")
}
