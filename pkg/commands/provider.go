package commands

import (
	"errors"

	"github.com/pmarks/mctp/pkg/discovery"
)

// busProviderFactory is supplied by the embedding program; this repository
// never opens hardware itself.
var busProviderFactory func() (discovery.BusProvider, error)

// RegisterBusProvider installs the factory used to reach the physical
// backplane. Call before Execute.
func RegisterBusProvider(factory func() (discovery.BusProvider, error)) {
	busProviderFactory = factory
}

// resolveProvider picks the bus provider for a command run.
func resolveProvider() (discovery.BusProvider, error) {
	if simulate {
		return simulatedBackplane(), nil
	}
	if busProviderFactory == nil {
		return nil, errors.New("no bus provider registered; pass --simulate or register one before Execute")
	}
	return busProviderFactory()
}

// simulatedBackplane wires two simulated drives onto an otherwise empty
// connector matrix, for demos and smoke tests.
func simulatedBackplane() discovery.BusProvider {
	provider := discovery.NewMockProvider()

	first := discovery.NewSimulatedDrive(0x1D)
	first.Subsystem.NQN = "nqn.2014-08.org.nvmexpress:sim0"
	provider.AddBus(0, "a", first.Bus())

	second := discovery.NewSimulatedDrive(0x2A)
	second.Subsystem.NQN = "nqn.2014-08.org.nvmexpress:sim1"
	second.Health.CompositeTemperature = 52
	second.Health.PercentageUsed = 87
	second.Health.PowerOnHours = 38200
	provider.AddBus(3, "b", second.Bus())

	return provider
}
