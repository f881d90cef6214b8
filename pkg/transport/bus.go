package transport

// Bus is the byte-level I/O capability a transport drives. Implementations
// bind one physical connector+channel pair behind a microcontroller or bridge
// and are supplied by the embedding program; this package never opens
// hardware itself.
//
// A Bus is not safe for sharing between concurrent users. Callers needing
// concurrency run one transport per Bus binding. Timeouts and retries are the
// Bus implementation's responsibility; errors it returns propagate through
// the transport unchanged.
type Bus interface {
	// Read issues a read of count bytes from the slave at addr. For SMBus
	// block reads, register is the command code to read from; bus kinds
	// without register addressing may ignore it.
	Read(addr, register uint8, count int) ([]byte, error)

	// Write issues a raw write of data to the slave at addr.
	Write(addr uint8, data []byte) error

	// WriteRegister writes data to a register of the slave at addr.
	WriteRegister(addr, register uint8, data []byte) error
}
