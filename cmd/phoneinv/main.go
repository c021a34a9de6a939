// Package main provides the entry point for the phoneinv CLI.
//
// phoneinv sweeps an IPv4 subnet for IP phones, reads the MAC address and
// serial number from each phone's HTTPS status page, and writes the
// inventory to a spreadsheet.
//
// Usage:
//
//	phoneinv 192.168.0.0/24
//	phoneinv -o inventory.csv 10.1.0.0/23
//
// See --help for all available options.
package main

func main() {
	Execute()
}
