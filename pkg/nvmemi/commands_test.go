package nvmemi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestRequestEncodings(t *testing.T) {
	tests := []struct {
		name string
		got  []byte
		want []byte
	}{
		{
			name: "Read subsystem info",
			got:  ReadSubsystemInfoRequest(),
			want: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "Subsystem health poll",
			got:  SubsystemHealthPollRequest(),
			want: []byte{0x00, 0x00, 0x00, 0x01},
		},
		{
			name: "Controller health poll",
			got:  ControllerHealthPollRequest(0x1234),
			want: []byte{0x00, 0x00, 0x00, 0x02, 0x34, 0x12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !bytes.Equal(tt.got, tt.want) {
				t.Errorf("request = % X, want % X", tt.got, tt.want)
			}
		})
	}
}

// Requests carry the ROR bit clear, responses set.
func TestRORBit(t *testing.T) {
	if req := SubsystemHealthPollRequest(); req[1]&0x80 != 0 {
		t.Error("request ROR bit set, want clear")
	}
	resp := EncodeSubsystemHealthResponse(StatusSuccess, HealthStatus{})
	if resp[1]&0x80 == 0 {
		t.Error("response ROR bit clear, want set")
	}
}

func subsystemHealthResponse(critical uint8, kelvin uint16, spare, threshold, used uint8, pohRaw uint32) []byte {
	resp := make([]byte, fullSubsystemHealthResponse)
	resp[1] = rorResponse
	resp[3] = uint8(OpcodeSubsystemHealthPoll)
	resp[4] = StatusSuccess
	resp[5] = critical
	binary.LittleEndian.PutUint16(resp[6:], kelvin)
	resp[8] = spare
	resp[9] = threshold
	resp[10] = used
	binary.LittleEndian.PutUint32(resp[pohOffset:], pohRaw)
	return resp
}

func TestParseSubsystemHealth(t *testing.T) {
	h, err := ParseSubsystemHealth(subsystemHealthResponse(0x03, 273+85, 5, 10, 97, 123))
	if err != nil {
		t.Fatalf("ParseSubsystemHealth() error: %v", err)
	}

	if h.CompositeTemperature != 85 {
		t.Errorf("temperature = %d, want 85", h.CompositeTemperature)
	}
	if !h.HasCriticalWarning() {
		t.Error("HasCriticalWarning() = false, want true")
	}
	if !h.SpareBelowThreshold() {
		t.Error("SpareBelowThreshold() = false, want true")
	}
	if !h.TemperatureExceeded() {
		t.Error("TemperatureExceeded() = false, want true")
	}
	if h.ReliabilityDegraded() {
		t.Error("ReliabilityDegraded() = true, want false")
	}
	if h.AvailableSpare != 5 {
		t.Errorf("spare = %d, want 5", h.AvailableSpare)
	}
	if h.PowerOnHours != 12300 {
		t.Errorf("power-on hours = %d, want 12300", h.PowerOnHours)
	}
	if h.LifeRemaining() != 3 {
		t.Errorf("LifeRemaining() = %d, want 3", h.LifeRemaining())
	}
}

func TestParseSubsystemHealthLifeFloor(t *testing.T) {
	h, err := ParseSubsystemHealth(subsystemHealthResponse(0, 300, 100, 10, 150, 0))
	if err != nil {
		t.Fatalf("ParseSubsystemHealth() error: %v", err)
	}
	if h.LifeRemaining() != 0 {
		t.Errorf("LifeRemaining() = %d with 150%% used, want 0", h.LifeRemaining())
	}
}

// Firmware variants that omit the trailing fields get conservative defaults.
func TestParseSubsystemHealthShortResponse(t *testing.T) {
	full := subsystemHealthResponse(0x00, 273+40, 55, 20, 7, 9)

	h, err := ParseSubsystemHealth(full[:minSubsystemHealthResponse])
	if err != nil {
		t.Fatalf("ParseSubsystemHealth() error: %v", err)
	}
	if h.CompositeTemperature != 40 {
		t.Errorf("temperature = %d, want 40", h.CompositeTemperature)
	}
	if h.AvailableSpare != defaultAvailableSpare {
		t.Errorf("spare = %d, want default %d", h.AvailableSpare, defaultAvailableSpare)
	}
	if h.SpareThreshold != defaultSpareThreshold {
		t.Errorf("threshold = %d, want default %d", h.SpareThreshold, defaultSpareThreshold)
	}
	if h.PercentageUsed != 0 {
		t.Errorf("used = %d, want 0", h.PercentageUsed)
	}
	if h.PowerOnHours != 0 {
		t.Errorf("power-on hours = %d, want 0", h.PowerOnHours)
	}
}

func TestParseSubsystemHealthErrors(t *testing.T) {
	if _, err := ParseSubsystemHealth(make([]byte, minSubsystemHealthResponse-1)); !errors.Is(err, ErrResponseTooShort) {
		t.Errorf("short response: error = %v, want ErrResponseTooShort", err)
	}

	bad := subsystemHealthResponse(0, 300, 100, 10, 0, 0)
	bad[4] = 0x04
	_, err := ParseSubsystemHealth(bad)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("bad status: error = %v, want *StatusError", err)
	}
	if statusErr.Status != 0x04 {
		t.Errorf("status = 0x%02X, want 0x04", statusErr.Status)
	}
}

func TestParseSubsystemInfo(t *testing.T) {
	info := SubsystemInfo{
		NQN:          "nqn.2019-09.com.example:drive7",
		NumPorts:     2,
		MajorVersion: 1,
		MinorVersion: 2,
	}

	parsed, err := ParseSubsystemInfo(EncodeSubsystemInfoResponse(StatusSuccess, info))
	if err != nil {
		t.Fatalf("ParseSubsystemInfo() error: %v", err)
	}
	if parsed != info {
		t.Errorf("parsed = %+v, want %+v", parsed, info)
	}
}

func TestParseSubsystemInfoNQNTruncation(t *testing.T) {
	resp := EncodeSubsystemInfoResponse(StatusSuccess, SubsystemInfo{NQN: "nqn.test"})
	// Garbage past the terminating NUL must be ignored.
	resp = append(resp, 0xFF, 0x41, 0x42)

	parsed, err := ParseSubsystemInfo(resp)
	if err != nil {
		t.Fatalf("ParseSubsystemInfo() error: %v", err)
	}
	if parsed.NQN != "nqn.test" {
		t.Errorf("NQN = %q, want %q", parsed.NQN, "nqn.test")
	}
}

func TestParseSubsystemInfoInvalidUTF8(t *testing.T) {
	resp := []byte{0x00, 0x80, 0x00, 0x00, StatusSuccess, 1, 1, 0, 'n', 'q', 'n', 0xFF, 'x'}

	parsed, err := ParseSubsystemInfo(resp)
	if err != nil {
		t.Fatalf("ParseSubsystemInfo() error: %v", err)
	}
	if parsed.NQN != "nqn�x" {
		t.Errorf("NQN = %q, want replacement for the invalid byte", parsed.NQN)
	}
}

func TestParseSubsystemInfoErrors(t *testing.T) {
	if _, err := ParseSubsystemInfo(make([]byte, minSubsystemInfoResponse-1)); !errors.Is(err, ErrResponseTooShort) {
		t.Errorf("short response: error = %v, want ErrResponseTooShort", err)
	}

	_, err := ParseSubsystemInfo(EncodeSubsystemInfoResponse(0x02, SubsystemInfo{}))
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Status != 0x02 {
		t.Errorf("bad status: error = %v, want *StatusError{0x02}", err)
	}
}

func TestParseControllerHealth(t *testing.T) {
	h := HealthStatus{
		CompositeTemperature: 61,
		CriticalWarning:      WarningTemperatureExceeded,
		AvailableSpare:       80,
		SpareThreshold:       15,
		PercentageUsed:       12,
	}

	parsed, err := ParseControllerHealth(EncodeControllerHealthResponse(StatusSuccess, h))
	if err != nil {
		t.Fatalf("ParseControllerHealth() error: %v", err)
	}
	if parsed != h {
		t.Errorf("parsed = %+v, want %+v", parsed, h)
	}
}

func TestParseControllerHealthErrors(t *testing.T) {
	if _, err := ParseControllerHealth(make([]byte, minControllerHealthResponse-1)); !errors.Is(err, ErrResponseTooShort) {
		t.Errorf("short response: error = %v, want ErrResponseTooShort", err)
	}
}

func TestStatusErrorMessage(t *testing.T) {
	err := &StatusError{Status: 0x03}
	if err.Error() != "nvmemi: command failed with status 0x03" {
		t.Errorf("Error() = %q", err.Error())
	}
}
