package nvmemi

// HealthStatus is the parsed result of a subsystem or controller health
// status poll. Temperature is stored in Celsius, converted from the raw
// Kelvin field; power-on hours are stored scaled (the raw field counts units
// of 100 hours).
type HealthStatus struct {
	// CompositeTemperature is the composite temperature in Celsius.
	CompositeTemperature int `json:"composite_temperature_celsius"`

	// CriticalWarning is the raw critical warning bitmask.
	CriticalWarning uint8 `json:"critical_warning"`

	// AvailableSpare is the remaining spare capacity percentage.
	AvailableSpare uint8 `json:"available_spare"`

	// SpareThreshold is the available spare threshold percentage.
	SpareThreshold uint8 `json:"spare_threshold"`

	// PercentageUsed is the vendor estimate of life used, in percent.
	// May exceed 100 on drives past their rated endurance.
	PercentageUsed uint8 `json:"percentage_used"`

	// PowerOnHours is the power-on time in hours.
	PowerOnHours uint64 `json:"power_on_hours"`
}

// HasCriticalWarning reports whether any critical warning bit is set.
func (h *HealthStatus) HasCriticalWarning() bool {
	return h.CriticalWarning != 0
}

// SpareBelowThreshold reports whether available spare fell below threshold.
func (h *HealthStatus) SpareBelowThreshold() bool {
	return h.CriticalWarning&WarningSpareBelowThreshold != 0
}

// TemperatureExceeded reports whether a temperature threshold was crossed.
func (h *HealthStatus) TemperatureExceeded() bool {
	return h.CriticalWarning&WarningTemperatureExceeded != 0
}

// ReliabilityDegraded reports whether subsystem reliability is degraded.
func (h *HealthStatus) ReliabilityDegraded() bool {
	return h.CriticalWarning&WarningReliabilityDegraded != 0
}

// ReadOnlyMode reports whether the media is in read-only mode.
func (h *HealthStatus) ReadOnlyMode() bool {
	return h.CriticalWarning&WarningReadOnlyMode != 0
}

// VolatileBackupFailed reports whether the volatile memory backup failed.
func (h *HealthStatus) VolatileBackupFailed() bool {
	return h.CriticalWarning&WarningVolatileBackupFailed != 0
}

// LifeRemaining returns the estimated remaining drive life in percent,
// floored at zero for drives reporting more than 100% used.
func (h *HealthStatus) LifeRemaining() uint8 {
	if h.PercentageUsed >= 100 {
		return 0
	}
	return 100 - h.PercentageUsed
}

// SubsystemInfo is the parsed NVM Subsystem Information data structure.
type SubsystemInfo struct {
	// NQN is the NVM subsystem NVMe Qualified Name.
	NQN string `json:"nqn"`

	// NumPorts is the number of NVM subsystem ports.
	NumPorts uint8 `json:"num_ports"`

	// MajorVersion and MinorVersion are the NVMe-MI protocol version.
	MajorVersion uint8 `json:"major_version"`
	MinorVersion uint8 `json:"minor_version"`
}

// DriveInfo combines everything known about one discovered drive: where it
// was found, what it is and how it is doing. Identity and health are probed
// independently; either may be zero-valued when its probe failed while the
// other succeeded.
type DriveInfo struct {
	// Connector and Channel label the physical bus path the drive was
	// found on. Threaded through from the sweep; never interpreted.
	Connector int    `json:"connector"`
	Channel   string `json:"channel"`

	// Address is the 7-bit slave address of the drive.
	Address uint8 `json:"address"`

	// EID is the drive's MCTP endpoint ID.
	EID uint8 `json:"eid"`

	// Subsystem is the drive's identity, zero-valued if identification
	// failed.
	Subsystem SubsystemInfo `json:"subsystem"`

	// Health is the drive's health status, zero-valued if the poll failed.
	Health HealthStatus `json:"health"`

	// Reachable is true when the endpoint answered discovery, regardless of
	// whether the identity and health probes succeeded.
	Reachable bool `json:"reachable"`
}
