/*
Package expander turns CIDR network specs into their full ordered address
ranges and provides the IPv4 address / binary string conversions the range
math is built on.

To expand a block:

	network, _ := expander.ParseCidr("192.168.2.0/30")
	addrs := network.Expand(expander.PolicyHosts)

To walk a large block without materializing it:

	for addr := range network.Stream(expander.PolicyAll) {
		...
	}

A /0 spec spans the whole 32-bit space; bounding the prefix length or using
Stream instead of Expand is the caller's responsibility.
*/
package expander

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Policy selects which block boundary addresses an expansion produces.
type Policy int

const (
	// PolicyHosts skips the computed network and broadcast addresses and
	// yields only the usable host addresses of the block.
	PolicyHosts Policy = iota
	// PolicyAll yields the full block, both boundary addresses included.
	PolicyAll
)

func (p Policy) String() string {
	if p == PolicyAll {
		return "all"
	}
	return "hosts"
}

const addressBits = 32

// Network is a parsed CIDR spec. The input address may carry non-zero host
// bits; they are kept as given and only masked out when boundaries are
// computed.
type Network struct {
	spec   string
	addr   uint32
	prefix int
}

// ParseCidr parses an "address/prefix" spec. The address must be four
// dot-separated octets in [0,255], the prefix an integer in [0,32].
func ParseCidr(spec string) (Network, error) {
	idx := strings.Index(spec, "/")
	if idx < 0 {
		return Network{}, errors.Wrap(ErrInvalidPrefixLength, spec)
	}

	addr, err := addrValue(spec[:idx])
	if err != nil {
		return Network{}, err
	}

	prefix, err := strconv.Atoi(spec[idx+1:])
	if err != nil || prefix < 0 || prefix > addressBits {
		return Network{}, errors.Wrap(ErrInvalidPrefixLength, spec)
	}

	return Network{spec: spec, addr: addr, prefix: prefix}, nil
}

func (n Network) String() string { return n.spec }

// Prefix returns the prefix length.
func (n Network) Prefix() int { return n.prefix }

// Address returns the spec's address part as given, host bits included.
func (n Network) Address() string { return formatAddr(n.addr) }

// NetworkAddress returns the all-zero-host boundary of the block.
func (n Network) NetworkAddress() string {
	lo, _ := n.bounds()
	return formatAddr(lo)
}

// BroadcastAddress returns the all-one-host boundary of the block.
func (n Network) BroadcastAddress() string {
	_, hi := n.bounds()
	return formatAddr(hi)
}

// bounds derives the block boundaries from the padded binary form of the
// address: the first prefix characters are kept fixed and the wildcard bits
// are filled with all zeros and all ones.
func (n Network) bounds() (uint32, uint32) {
	wildcard := addressBits - n.prefix
	bin, _ := ToPaddedBinaryString(formatAddr(n.addr))
	fixed := bin[:n.prefix]

	lo, _ := strconv.ParseUint(fixed+strings.Repeat("0", wildcard), 2, 32)
	hi, _ := strconv.ParseUint(fixed+strings.Repeat("1", wildcard), 2, 32)
	return uint32(lo), uint32(hi)
}

// Count returns the number of addresses an expansion yields under the given
// policy, without materializing anything.
func (n Network) Count(policy Policy) uint64 {
	if n.prefix == addressBits {
		return 1
	}
	size := uint64(1) << uint(addressBits-n.prefix)
	if policy == PolicyAll {
		return size
	}
	return size - 2
}

// Expand returns every address of the block in ascending order. A /32 spec
// yields exactly its single address, unmodified, under either policy.
func (n Network) Expand(policy Policy) []string {
	if n.prefix == addressBits {
		return []string{formatAddr(n.addr)}
	}

	lo, hi, ok := n.span(policy)
	if !ok {
		return nil
	}

	addrs := make([]string, 0, hi-lo+1)
	for v := lo; v <= hi; v++ {
		addrs = append(addrs, formatAddr(uint32(v)))
	}
	return addrs
}

// Stream returns a channel producing the same sequence as Expand, one
// address at a time.
func (n Network) Stream(policy Policy) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)

		if n.prefix == addressBits {
			out <- formatAddr(n.addr)
			return
		}
		lo, hi, ok := n.span(policy)
		if !ok {
			return
		}
		for v := lo; v <= hi; v++ {
			out <- formatAddr(uint32(v))
		}
	}()
	return out
}

// span widens to uint64 so that a /0 broadcast boundary does not wrap the
// loop counter.
func (n Network) span(policy Policy) (uint64, uint64, bool) {
	blo, bhi := n.bounds()
	lo, hi := uint64(blo), uint64(bhi)
	if policy == PolicyHosts {
		lo, hi = lo+1, hi-1
		if lo > hi {
			// a /31 has no host addresses
			return 0, 0, false
		}
	}
	return lo, hi, true
}
