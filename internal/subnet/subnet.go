package subnet

import (
	"encoding/binary"
	"fmt"
	"iter"
	"net/netip"
	"strings"
)

// Subnet is an immutable IPv4 network prefix.
type Subnet struct {
	prefix netip.Prefix
}

// Parse parses an IPv4 network in CIDR notation such as "192.168.0.0/24".
// A bare address is accepted as a /32. The address must be the network
// address of the prefix.
func Parse(s string) (Subnet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Subnet{}, fmt.Errorf("%w: empty input", ErrInvalidSubnet)
	}
	if !strings.Contains(s, "/") {
		s += "/32"
	}

	prefix, err := netip.ParsePrefix(s)
	if err != nil {
		return Subnet{}, fmt.Errorf("%w: %w", ErrInvalidSubnet, err)
	}
	if !prefix.Addr().Is4() {
		return Subnet{}, fmt.Errorf("%w: %w: %s", ErrInvalidSubnet, ErrNotIPv4, s)
	}
	if masked := prefix.Masked(); masked != prefix {
		return Subnet{}, fmt.Errorf("%w: %w: %s (did you mean %s?)", ErrInvalidSubnet, ErrHostBitsSet, s, masked)
	}

	return Subnet{prefix: prefix}, nil
}

// MustParse is like Parse but panics on error. It is intended for tests
// and constant inputs.
func MustParse(s string) Subnet {
	sn, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sn
}

// String returns the subnet in CIDR notation.
func (s Subnet) String() string {
	return s.prefix.String()
}

// Prefix returns the underlying prefix.
func (s Subnet) Prefix() netip.Prefix {
	return s.prefix
}

// Len returns the number of usable host addresses.
func (s Subnet) Len() int {
	first, last := s.bounds()
	return int(last-first) + 1
}

// Hosts iterates the usable host addresses in ascending order.
// The sequence can be ranged over repeatedly.
func (s Subnet) Hosts() iter.Seq[netip.Addr] {
	first, last := s.bounds()
	return func(yield func(netip.Addr) bool) {
		for v := first; ; v++ {
			if !yield(fromUint32(v)) {
				return
			}
			if v == last {
				return
			}
		}
	}
}

// Contains reports whether addr is one of the usable hosts.
func (s Subnet) Contains(addr netip.Addr) bool {
	if !addr.Is4() || !s.prefix.Contains(addr) {
		return false
	}
	first, last := s.bounds()
	v := toUint32(addr)
	return v >= first && v <= last
}

// bounds returns the first and last usable host as integers.
func (s Subnet) bounds() (first, last uint32) {
	base := toUint32(s.prefix.Addr())
	bits := s.prefix.Bits()
	size := uint64(1) << (32 - bits)
	broadcast := base + uint32(size-1)

	switch bits {
	case 32:
		return base, base
	case 31:
		return base, broadcast
	default:
		return base + 1, broadcast - 1
	}
}

func toUint32(addr netip.Addr) uint32 {
	b := addr.As4()
	return binary.BigEndian.Uint32(b[:])
}

func fromUint32(v uint32) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return netip.AddrFrom4(b)
}
