package nvmemi

import "fmt"

// Opcode is the NVMe-MI command opcode carried in byte 3 of the message
// header.
type Opcode uint8

const (
	// OpcodeReadDataStructure reads an MI data structure from the subsystem.
	OpcodeReadDataStructure Opcode = 0x00

	// OpcodeSubsystemHealthPoll polls the health of the whole NVM subsystem.
	OpcodeSubsystemHealthPoll Opcode = 0x01

	// OpcodeControllerHealthPoll polls the health of a single controller.
	OpcodeControllerHealthPoll Opcode = 0x02
)

// String returns a human-readable opcode name.
func (o Opcode) String() string {
	switch o {
	case OpcodeReadDataStructure:
		return "ReadDataStructure"
	case OpcodeSubsystemHealthPoll:
		return "SubsystemHealthPoll"
	case OpcodeControllerHealthPoll:
		return "ControllerHealthPoll"
	default:
		return fmt.Sprintf("Opcode(0x%02X)", uint8(o))
	}
}

// StatusSuccess is the NVMe-MI response status for success.
const StatusSuccess uint8 = 0x00

// Data structure types for Read MI Data Structure.
const (
	// DataStructureSubsystemInfo selects the NVM Subsystem Information
	// structure.
	DataStructureSubsystemInfo uint8 = 0x00
)

// Critical warning bits of the health status (NVMe-MI Section 5.6).
const (
	// WarningSpareBelowThreshold: available spare is below its threshold.
	WarningSpareBelowThreshold uint8 = 1 << 0

	// WarningTemperatureExceeded: a temperature threshold was crossed.
	WarningTemperatureExceeded uint8 = 1 << 1

	// WarningReliabilityDegraded: NVM subsystem reliability is degraded.
	WarningReliabilityDegraded uint8 = 1 << 2

	// WarningReadOnlyMode: media has been placed in read-only mode.
	WarningReadOnlyMode uint8 = 1 << 3

	// WarningVolatileBackupFailed: the volatile memory backup failed.
	WarningVolatileBackupFailed uint8 = 1 << 4
)
