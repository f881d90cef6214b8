// Package nvmemi implements the NVMe Management Interface command codec and
// a client for polling NVMe drives over an MCTP transport.
//
// Three commands are implemented: Read MI Data Structure (subsystem
// identification), Subsystem Health Status Poll and Controller Health Status
// Poll. Configuration-set commands are out of scope.
package nvmemi

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Message header layout (4 bytes): reserved, ROR flag in bit 7 of byte 1,
// reserved, opcode.
const (
	headerSize = 4

	// rorResponse is the Request-or-Response flag in byte 1: set on
	// responses, clear on requests.
	rorResponse uint8 = 0x80
)

// Minimum response sizes per command, message header included.
const (
	// minSubsystemInfoResponse: header, status, ports, major, minor.
	minSubsystemInfoResponse = headerSize + 4

	// minSubsystemHealthResponse: header, status, critical warning,
	// composite temperature. Trailing fields beyond this are optional; some
	// firmware omits them (see ParseSubsystemHealth).
	minSubsystemHealthResponse = headerSize + 4

	// minControllerHealthResponse: header, status, critical warning,
	// composite temperature, available spare, spare threshold.
	minControllerHealthResponse = headerSize + 6

	// pohOffset is the byte offset of the power-on-hours field in a full
	// subsystem health response, past a 4-byte reserved region.
	pohOffset = 15

	// fullSubsystemHealthResponse is the complete structure size.
	fullSubsystemHealthResponse = pohOffset + 4
)

// Conservative defaults substituted for trailing health fields that a short
// but well-formed response omitted.
const (
	defaultAvailableSpare uint8 = 100
	defaultSpareThreshold uint8 = 10
)

// kelvinOffset converts the raw composite temperature field to Celsius.
const kelvinOffset = 273

func encodeHeader(response bool, opcode Opcode) []byte {
	hdr := make([]byte, headerSize)
	if response {
		hdr[1] = rorResponse
	}
	hdr[3] = uint8(opcode)
	return hdr
}

// ReadSubsystemInfoRequest builds a Read MI Data Structure request selecting
// the NVM Subsystem Information structure at offset zero.
func ReadSubsystemInfoRequest() []byte {
	req := encodeHeader(false, OpcodeReadDataStructure)
	// Data structure type, 16-bit offset (little-endian), reserved.
	return append(req, DataStructureSubsystemInfo, 0x00, 0x00, 0x00)
}

// SubsystemHealthPollRequest builds a Subsystem Health Status Poll request.
// The command carries no parameters beyond the message header.
func SubsystemHealthPollRequest() []byte {
	return encodeHeader(false, OpcodeSubsystemHealthPoll)
}

// ControllerHealthPollRequest builds a Controller Health Status Poll request
// for the given controller ID.
func ControllerHealthPollRequest(controllerID uint16) []byte {
	req := encodeHeader(false, OpcodeControllerHealthPoll)
	req = append(req, 0, 0)
	binary.LittleEndian.PutUint16(req[headerSize:], controllerID)
	return req
}

// ParseSubsystemInfo parses a Read MI Data Structure response carrying the
// NVM Subsystem Information structure. The NQN is NUL-terminated on the
// wire; it is truncated at the first NUL and undecodable bytes are replaced.
func ParseSubsystemInfo(data []byte) (SubsystemInfo, error) {
	if len(data) < minSubsystemInfoResponse {
		return SubsystemInfo{}, ErrResponseTooShort
	}
	if status := data[headerSize]; status != StatusSuccess {
		return SubsystemInfo{}, &StatusError{Status: status}
	}

	info := SubsystemInfo{
		NumPorts:     data[headerSize+1],
		MajorVersion: data[headerSize+2],
		MinorVersion: data[headerSize+3],
	}

	nqn := data[minSubsystemInfoResponse:]
	if i := bytes.IndexByte(nqn, 0); i >= 0 {
		nqn = nqn[:i]
	}
	info.NQN = strings.ToValidUTF8(string(nqn), "�")

	return info, nil
}

// ParseSubsystemHealth parses a Subsystem Health Status Poll response.
//
// Responses shorter than the full structure but carrying at least the status,
// critical warning and composite temperature are tolerated: the omitted
// trailing fields take conservative defaults (full spare, 10% threshold,
// nothing used, zero power-on hours). Some firmware variants omit them.
func ParseSubsystemHealth(data []byte) (HealthStatus, error) {
	if len(data) < minSubsystemHealthResponse {
		return HealthStatus{}, ErrResponseTooShort
	}
	if status := data[headerSize]; status != StatusSuccess {
		return HealthStatus{}, &StatusError{Status: status}
	}

	h := HealthStatus{
		CriticalWarning:      data[headerSize+1],
		CompositeTemperature: int(binary.LittleEndian.Uint16(data[headerSize+2:])) - kelvinOffset,
		AvailableSpare:       defaultAvailableSpare,
		SpareThreshold:       defaultSpareThreshold,
	}

	if len(data) > headerSize+4 {
		h.AvailableSpare = data[headerSize+4]
	}
	if len(data) > headerSize+5 {
		h.SpareThreshold = data[headerSize+5]
	}
	if len(data) > headerSize+6 {
		h.PercentageUsed = data[headerSize+6]
	}
	if len(data) >= fullSubsystemHealthResponse {
		// Raw field counts units of 100 hours.
		h.PowerOnHours = uint64(binary.LittleEndian.Uint32(data[pohOffset:])) * 100
	}

	return h, nil
}

// ParseControllerHealth parses a Controller Health Status Poll response. The
// layout mirrors the head of the subsystem poll, scoped to one controller;
// there is no power-on-hours field.
func ParseControllerHealth(data []byte) (HealthStatus, error) {
	if len(data) < minControllerHealthResponse {
		return HealthStatus{}, ErrResponseTooShort
	}
	if status := data[headerSize]; status != StatusSuccess {
		return HealthStatus{}, &StatusError{Status: status}
	}

	h := HealthStatus{
		CriticalWarning:      data[headerSize+1],
		CompositeTemperature: int(binary.LittleEndian.Uint16(data[headerSize+2:])) - kelvinOffset,
		AvailableSpare:       data[headerSize+4],
		SpareThreshold:       data[headerSize+5],
	}
	if len(data) > headerSize+6 {
		h.PercentageUsed = data[headerSize+6]
	}

	return h, nil
}

// EncodeSubsystemInfoResponse builds a Read MI Data Structure response wire
// image. Used by the simulated backplane and by tests; keep NQNs short
// enough for the whole response to fit one MCTP packet payload.
func EncodeSubsystemInfoResponse(status uint8, info SubsystemInfo) []byte {
	resp := encodeHeader(true, OpcodeReadDataStructure)
	resp = append(resp, status, info.NumPorts, info.MajorVersion, info.MinorVersion)
	resp = append(resp, []byte(info.NQN)...)
	return append(resp, 0x00)
}

// EncodeSubsystemHealthResponse builds a full-length Subsystem Health Status
// Poll response wire image from h.
func EncodeSubsystemHealthResponse(status uint8, h HealthStatus) []byte {
	resp := make([]byte, fullSubsystemHealthResponse)
	copy(resp, encodeHeader(true, OpcodeSubsystemHealthPoll))
	resp[headerSize] = status
	resp[headerSize+1] = h.CriticalWarning
	binary.LittleEndian.PutUint16(resp[headerSize+2:], uint16(h.CompositeTemperature+kelvinOffset))
	resp[headerSize+4] = h.AvailableSpare
	resp[headerSize+5] = h.SpareThreshold
	resp[headerSize+6] = h.PercentageUsed
	binary.LittleEndian.PutUint32(resp[pohOffset:], uint32(h.PowerOnHours/100))
	return resp
}

// EncodeControllerHealthResponse builds a Controller Health Status Poll
// response wire image from h.
func EncodeControllerHealthResponse(status uint8, h HealthStatus) []byte {
	resp := make([]byte, minControllerHealthResponse+1)
	copy(resp, encodeHeader(true, OpcodeControllerHealthPoll))
	resp[headerSize] = status
	resp[headerSize+1] = h.CriticalWarning
	binary.LittleEndian.PutUint16(resp[headerSize+2:], uint16(h.CompositeTemperature+kelvinOffset))
	resp[headerSize+4] = h.AvailableSpare
	resp[headerSize+5] = h.SpareThreshold
	resp[headerSize+6] = h.PercentageUsed
	return resp
}
