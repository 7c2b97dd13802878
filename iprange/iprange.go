// Package iprange parses trusted IP ranges and answers membership queries.
package iprange

import (
	"fmt"
	"net/netip"
	"strings"
)

// Set is an ordered collection of IP blocks. A Set is immutable after
// parsing and safe for concurrent use.
type Set struct {
	blocks []netip.Prefix
}

// Parse builds a Set from range specifier strings. Each specifier is a
// CIDR block ("10.0.0.0/8", "fd00::/8") or a bare address, which is kept
// as a single-address block. IPv4 and IPv6 specifiers may be mixed.
func Parse(specs []string) (*Set, error) {
	blocks := make([]netip.Prefix, 0, len(specs))
	for _, spec := range specs {
		spec = strings.TrimSpace(spec)
		if spec == "" {
			return nil, fmt.Errorf("iprange: empty range specifier")
		}

		if !strings.Contains(spec, "/") {
			a, err := netip.ParseAddr(spec)
			if err != nil {
				return nil, fmt.Errorf("iprange: invalid address %q: %w", spec, err)
			}
			blocks = append(blocks, netip.PrefixFrom(a, a.BitLen()))
			continue
		}

		p, err := netip.ParsePrefix(spec)
		if err != nil {
			return nil, fmt.Errorf("iprange: invalid range %q: %w", spec, err)
		}
		blocks = append(blocks, p.Masked())
	}

	return &Set{blocks: blocks}, nil
}

// Contains reports whether addr falls within any block of the set.
// The first matching block ends the scan.
func (s *Set) Contains(addr netip.Addr) bool {
	if s == nil {
		return false
	}

	addr = addr.Unmap()
	for _, b := range s.blocks {
		if b.Contains(addr) {
			return true
		}
	}

	return false
}

// ContainsString parses addr and reports membership. It returns an error
// if addr is not a valid IP address.
func (s *Set) ContainsString(addr string) (bool, error) {
	a, err := netip.ParseAddr(addr)
	if err != nil {
		return false, err
	}

	return s.Contains(a), nil
}

// Len returns the number of blocks in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}

	return len(s.blocks)
}
