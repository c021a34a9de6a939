package model

import (
	"iter"
	"net/netip"
)

// Entry is one row of an Inventory.
type Entry struct {
	// MAC is the inventory key.
	MAC string `json:"mac"`

	// Serial is the value stored for MAC.
	Serial string `json:"serial"`

	// Host is the address that reported the entry. It is the zero Addr
	// when loaded from a format that does not record it.
	Host netip.Addr `json:"host,omitzero"`
}

// Inventory maps MAC addresses to serial numbers and remembers the order in
// which keys were first inserted. It is not safe for concurrent use; the
// scanner mutates it from a single goroutine.
type Inventory struct {
	order   []string
	entries map[string]Entry
}

// NewInventory returns an empty Inventory.
func NewInventory() *Inventory {
	return &Inventory{
		order:   make([]string, 0),
		entries: make(map[string]Entry),
	}
}

// Put stores the record under its MAC. When the MAC is already present the
// serial and host are replaced, the key keeps its original position, and the
// previous entry is returned with replaced set to true.
func (inv *Inventory) Put(record DeviceRecord) (previous Entry, replaced bool) {
	previous, replaced = inv.entries[record.MAC]
	if !replaced {
		inv.order = append(inv.order, record.MAC)
	}
	inv.entries[record.MAC] = Entry{
		MAC:    record.MAC,
		Serial: record.Serial,
		Host:   record.Host,
	}
	return previous, replaced
}

// Get returns the serial stored for mac.
func (inv *Inventory) Get(mac string) (string, bool) {
	e, ok := inv.entries[mac]
	return e.Serial, ok
}

// Len returns the number of distinct MAC addresses.
func (inv *Inventory) Len() int {
	return len(inv.order)
}

// Entries returns a copy of all rows in insertion order.
func (inv *Inventory) Entries() []Entry {
	out := make([]Entry, 0, len(inv.order))
	for _, mac := range inv.order {
		out = append(out, inv.entries[mac])
	}
	return out
}

// All iterates MAC and serial pairs in insertion order.
func (inv *Inventory) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, mac := range inv.order {
			if !yield(mac, inv.entries[mac].Serial) {
				return
			}
		}
	}
}

// Map returns the inventory as a plain map, discarding order.
func (inv *Inventory) Map() map[string]string {
	out := make(map[string]string, len(inv.order))
	for mac, serial := range inv.All() {
		out[mac] = serial
	}
	return out
}
