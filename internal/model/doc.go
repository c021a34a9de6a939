// Package model defines the data structures shared by the probe, scanner and
// exporter packages.
//
// This package contains the following main types:
//   - DeviceRecord: the MAC and serial number scraped from one host
//   - Status and Outcome: the classified result of probing one host
//   - Inventory: the ordered MAC to serial mapping built by a scan
package model
