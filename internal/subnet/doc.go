// Package subnet parses IPv4 CIDR notation and enumerates the usable host
// addresses of a network.
//
// Host enumeration follows the usual convention: the network and broadcast
// addresses are excluded, except for /31 point-to-point links where both
// addresses are hosts, and /32 where the single address is the host.
package subnet
