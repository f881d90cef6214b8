package transport

import "sync"

// tagAllocator hands out MCTP message tags for one transport instance.
// Tags wrap 0-7; the mutex is held only across the increment, never across
// bus I/O, so concurrent senders on one transport are serialized only for
// the duration of the allocation itself.
//
// Tags are scoped per transport instance. Two transports on different buses
// may issue the same tag value concurrently without conflict.
type tagAllocator struct {
	next uint8
	mu   sync.Mutex
}

// Next returns the next message tag and advances the counter.
func (a *tagAllocator) Next() uint8 {
	a.mu.Lock()
	defer a.mu.Unlock()

	tag := a.next
	a.next = (a.next + 1) & 0x07
	return tag
}
