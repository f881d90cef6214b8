package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pmarks/mctp/pkg/discovery"
	"github.com/pmarks/mctp/pkg/nvmemi"
	"github.com/pmarks/mctp/pkg/transport"
)

var (
	healthConnector    int
	healthChannel      string
	healthAddress      uint8
	healthControllerID int
)

// healthReport is the JSON shape printed by the health command.
type healthReport struct {
	Endpoint   *discovery.Endpoint  `json:"endpoint"`
	Subsystem  nvmemi.HealthStatus  `json:"subsystem_health"`
	Controller *nvmemi.HealthStatus `json:"controller_health,omitempty"`
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Poll the health of a single drive",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := resolveProvider()
		if err != nil {
			return err
		}

		bus, err := provider.Bind(healthConnector, healthChannel)
		if err != nil {
			return fmt.Errorf("binding connector %d channel %s: %w", healthConnector, healthChannel, err)
		}

		t := transport.NewI2C(bus, transport.Config{})

		ep := discovery.DiscoverEndpoint(t, healthAddress)
		if ep == nil {
			return fmt.Errorf("no MCTP endpoint at 0x%02X on connector %d channel %s",
				healthAddress, healthConnector, healthChannel)
		}

		client := nvmemi.NewClient(t, nvmemi.Config{DefaultEID: ep.EID})

		report := healthReport{Endpoint: ep}
		report.Subsystem, err = client.HealthPoll(healthAddress, ep.EID)
		if err != nil {
			return fmt.Errorf("subsystem health poll: %w", err)
		}

		if healthControllerID >= 0 {
			ctrl, err := client.ControllerHealthPoll(healthAddress, ep.EID, uint16(healthControllerID))
			if err != nil {
				return fmt.Errorf("controller health poll: %w", err)
			}
			report.Controller = &ctrl
		}

		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	healthCmd.Flags().IntVar(&healthConnector, "connector", 0, "Connector index")
	healthCmd.Flags().StringVar(&healthChannel, "channel", "a", "Channel identifier")
	healthCmd.Flags().Uint8Var(&healthAddress, "address", discovery.DefaultTargetAddress, "7-bit slave address of the drive")
	healthCmd.Flags().IntVar(&healthControllerID, "controller", -1, "Controller ID to poll in addition to the subsystem (-1 to skip)")
}
