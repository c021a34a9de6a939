package model

import (
	"net/netip"
	"time"
)

// DeviceRecord is the identifier pair scraped from a device status page.
// Either field may be empty when the page does not carry it.
type DeviceRecord struct {
	// Host is the address the record was read from.
	Host netip.Addr `json:"host"`

	// MAC is the hardware address exactly as printed on the page.
	MAC string `json:"mac"`

	// Serial is the device serial number exactly as printed on the page.
	Serial string `json:"serial"`
}

// Status classifies the result of probing a single host.
type Status int

const (
	// StatusOK indicates the page was fetched and a MAC address was found.
	StatusOK Status = iota

	// StatusUnreachable indicates no HTTPS response arrived within the timeout.
	// This is the common case for addresses without a device.
	StatusUnreachable

	// StatusParseFailure indicates a response arrived but the device table
	// or its MAC row was missing.
	StatusParseFailure
)

// String returns the four-column console label for the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusUnreachable:
		return "VOID"
	case StatusParseFailure:
		return "FAIL"
	default:
		return "????"
	}
}

// Outcome is the tagged result of one host probe.
// Record is meaningful only when Status is StatusOK; Err carries the cause
// for every other status.
type Outcome struct {
	// Host is the probed address.
	Host netip.Addr

	// Status is the classification of the probe.
	Status Status

	// Record holds the scraped identifiers for StatusOK.
	Record DeviceRecord

	// Err is the underlying cause for StatusUnreachable and StatusParseFailure.
	Err error

	// Elapsed is the wall time spent on the probe.
	Elapsed time.Duration
}

// NewSuccess returns an OK outcome for the given record.
func NewSuccess(record DeviceRecord, elapsed time.Duration) Outcome {
	return Outcome{
		Host:    record.Host,
		Status:  StatusOK,
		Record:  record,
		Elapsed: elapsed,
	}
}

// NewFailure returns a non-OK outcome for host with the given cause.
func NewFailure(host netip.Addr, status Status, err error, elapsed time.Duration) Outcome {
	return Outcome{
		Host:    host,
		Status:  status,
		Record:  DeviceRecord{Host: host},
		Err:     err,
		Elapsed: elapsed,
	}
}

// OK reports whether the outcome should be added to the inventory.
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}
