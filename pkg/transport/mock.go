package transport

import "sync"

// MockBus provides a scripted Bus implementation for testing without real
// hardware. Writes are recorded; reads are answered by a handler that sees
// the most recent write, which is how slave devices behave on a real
// request/response bus.
type MockBus struct {
	// ReadFunc, when set, overrides the handler-based read behavior.
	ReadFunc func(addr, register uint8, count int) ([]byte, error)

	// WriteFunc, when set, overrides the recording write behavior.
	WriteFunc func(addr uint8, data []byte) error

	// Handler answers reads by producing a response frame for the last
	// written request. Used when ReadFunc is nil.
	Handler func(addr uint8, lastWrite []byte) ([]byte, error)

	mu     sync.Mutex
	writes [][]byte
}

// NewMockBus creates a mock bus answering reads with handler.
func NewMockBus(handler func(addr uint8, lastWrite []byte) ([]byte, error)) *MockBus {
	return &MockBus{Handler: handler}
}

// Read implements Bus.
func (b *MockBus) Read(addr, register uint8, count int) ([]byte, error) {
	if b.ReadFunc != nil {
		return b.ReadFunc(addr, register, count)
	}
	if b.Handler != nil {
		return b.Handler(addr, b.LastWrite())
	}
	return nil, nil
}

// Write implements Bus.
func (b *MockBus) Write(addr uint8, data []byte) error {
	if b.WriteFunc != nil {
		return b.WriteFunc(addr, data)
	}
	b.record(data)
	return nil
}

// WriteRegister implements Bus.
func (b *MockBus) WriteRegister(addr, register uint8, data []byte) error {
	framed := make([]byte, 0, len(data)+1)
	framed = append(framed, register)
	framed = append(framed, data...)
	return b.Write(addr, framed)
}

func (b *MockBus) record(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	b.writes = append(b.writes, buf)
}

// LastWrite returns a copy of the most recently written data, or nil.
func (b *MockBus) LastWrite() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.writes) == 0 {
		return nil
	}
	last := b.writes[len(b.writes)-1]
	buf := make([]byte, len(last))
	copy(buf, last)
	return buf
}

// Writes returns copies of all recorded writes in order.
func (b *MockBus) Writes() [][]byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([][]byte, len(b.writes))
	for i, w := range b.writes {
		buf := make([]byte, len(w))
		copy(buf, w)
		out[i] = buf
	}
	return out
}
