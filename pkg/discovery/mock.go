package discovery

import (
	"errors"
	"fmt"
	"sync"

	"github.com/pmarks/mctp/pkg/message"
	"github.com/pmarks/mctp/pkg/nvmemi"
	"github.com/pmarks/mctp/pkg/smbus"
	"github.com/pmarks/mctp/pkg/transport"
)

// errNoDevice is what an unpopulated mock bus returns for any I/O, standing
// in for the timeout a real bus reports when nothing answers at an address.
var errNoDevice = errors.New("discovery: no device on bus")

// completionUnsupported is the control completion code the simulated drive
// returns for commands it does not implement.
const completionUnsupported uint8 = 0x05

// MockProvider provides a BusProvider backed by in-memory buses for testing
// without real hardware. Pairs without a registered bus behave like empty
// ports: binding succeeds and all I/O fails.
type MockProvider struct {
	mu    sync.RWMutex
	buses map[string]transport.Bus
	errs  map[string]error
}

// NewMockProvider creates an empty provider.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		buses: make(map[string]transport.Bus),
		errs:  make(map[string]error),
	}
}

func pairKey(connector int, channel string) string {
	return fmt.Sprintf("%d/%s", connector, channel)
}

// AddBus registers a bus for one connector/channel pair.
func (p *MockProvider) AddBus(connector int, channel string, bus transport.Bus) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buses[pairKey(connector, channel)] = bus
}

// FailPair makes Bind fail for one connector/channel pair.
func (p *MockProvider) FailPair(connector int, channel string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errs[pairKey(connector, channel)] = err
}

// Bind implements BusProvider.
func (p *MockProvider) Bind(connector int, channel string) (transport.Bus, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	key := pairKey(connector, channel)
	if err := p.errs[key]; err != nil {
		return nil, err
	}
	if bus, ok := p.buses[key]; ok {
		return bus, nil
	}

	// Empty port: binding works, the device never answers.
	return &transport.MockBus{
		WriteFunc: func(addr uint8, data []byte) error { return errNoDevice },
		ReadFunc: func(addr, register uint8, count int) ([]byte, error) {
			return nil, errNoDevice
		},
	}, nil
}

// SimulatedDrive emulates an NVMe drive's MCTP endpoint: it answers the Get
// Endpoint ID and Get Message Type Support control commands and the three
// NVMe-MI commands this repository implements, over the SMBus framing.
type SimulatedDrive struct {
	// EID is the endpoint ID the drive reports.
	EID uint8

	// Type is the endpoint role reported by Get Endpoint ID.
	Type EndpointType

	// MediumInfo is the medium-specific info byte of the Get Endpoint ID
	// response.
	MediumInfo uint8

	// MessageTypes is the list advertised by Get Message Type Support.
	MessageTypes []message.Type

	// Subsystem is returned by Read MI Data Structure. Keep the NQN short
	// enough for the response to fit one MCTP packet.
	Subsystem nvmemi.SubsystemInfo

	// Health is returned by Subsystem Health Status Poll.
	Health nvmemi.HealthStatus

	// ControllerHealth is returned by Controller Health Status Poll.
	ControllerHealth nvmemi.HealthStatus
}

// NewSimulatedDrive creates a healthy simulated drive with the given EID.
func NewSimulatedDrive(eid uint8) *SimulatedDrive {
	return &SimulatedDrive{
		EID:          eid,
		MessageTypes: []message.Type{message.TypeControl, message.TypeNVMeMI},
		Subsystem: nvmemi.SubsystemInfo{
			NQN:          "nqn.2014-08.org.nvmexpress:sim",
			NumPorts:     1,
			MajorVersion: 1,
			MinorVersion: 2,
		},
		Health: nvmemi.HealthStatus{
			CompositeTemperature: 35,
			AvailableSpare:       100,
			SpareThreshold:       10,
			PercentageUsed:       3,
			PowerOnHours:         1200,
		},
		ControllerHealth: nvmemi.HealthStatus{
			CompositeTemperature: 35,
			AvailableSpare:       100,
			SpareThreshold:       10,
			PercentageUsed:       3,
		},
	}
}

// Bus returns a mock bus wired to this drive.
func (d *SimulatedDrive) Bus() *transport.MockBus {
	return transport.NewMockBus(d.handle)
}

// handle answers a read by responding to the most recent written request.
func (d *SimulatedDrive) handle(addr uint8, lastWrite []byte) ([]byte, error) {
	if lastWrite == nil {
		return nil, errNoDevice
	}

	req, err := smbus.ParseFrame(lastWrite, addr)
	if err != nil {
		return nil, err
	}

	var payload []byte
	switch req.Type {
	case message.TypeControl:
		payload = d.handleControl(req.Payload)
	case message.TypeNVMeMI:
		payload = d.handleNVMeMI(req.Payload)
	default:
		return nil, fmt.Errorf("discovery: simulated drive: unsupported message type %s", req.Type)
	}

	resp, err := message.NewPacket(message.PacketConfig{
		DestEID:   req.Header.SourceEID,
		SourceEID: d.EID,
		Type:      req.Type,
		Payload:   payload,
		MsgTag:    req.Header.MsgTag,
	})
	if err != nil {
		return nil, err
	}

	return smbus.BuildFrame(addr, addr, resp.Encode()), nil
}

func (d *SimulatedDrive) handleControl(request []byte) []byte {
	if len(request) < 1 {
		return []byte{completionUnsupported}
	}

	switch request[0] &^ controlRqBit {
	case CommandGetEndpointID:
		var typeBits uint8
		if d.Type == EndpointBusOwner {
			typeBits = endpointTypeBusOwner << endpointTypeShift
		}
		return []byte{CompletionSuccess, d.EID, typeBits, d.MediumInfo}

	case CommandGetMessageTypeSupport:
		resp := []byte{CompletionSuccess, uint8(len(d.MessageTypes))}
		for _, t := range d.MessageTypes {
			resp = append(resp, uint8(t))
		}
		return resp

	default:
		return []byte{completionUnsupported}
	}
}

func (d *SimulatedDrive) handleNVMeMI(request []byte) []byte {
	if len(request) < 4 {
		return nvmemi.EncodeSubsystemHealthResponse(completionUnsupported, nvmemi.HealthStatus{})
	}

	switch nvmemi.Opcode(request[3]) {
	case nvmemi.OpcodeReadDataStructure:
		return nvmemi.EncodeSubsystemInfoResponse(nvmemi.StatusSuccess, d.Subsystem)
	case nvmemi.OpcodeSubsystemHealthPoll:
		return nvmemi.EncodeSubsystemHealthResponse(nvmemi.StatusSuccess, d.Health)
	case nvmemi.OpcodeControllerHealthPoll:
		return nvmemi.EncodeControllerHealthResponse(nvmemi.StatusSuccess, d.ControllerHealth)
	default:
		return nvmemi.EncodeSubsystemHealthResponse(completionUnsupported, nvmemi.HealthStatus{})
	}
}
