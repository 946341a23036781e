package app

import "sync"

// ShipmentLocker serializes operations per shipment aggregate. Phase
// advancement reads documents and evaluation flags together and must
// observe a consistent snapshot, so every mutating service call takes the
// shipment's lock for its duration.
type ShipmentLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewShipmentLocker creates an empty lock registry.
func NewShipmentLocker() *ShipmentLocker {
	return &ShipmentLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-shipment mutex and returns the unlock function.
func (l *ShipmentLocker) Lock(shipmentID string) func() {
	l.mu.Lock()
	m, ok := l.locks[shipmentID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[shipmentID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
