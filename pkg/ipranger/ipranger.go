// Package ipranger keeps the set of hosts and networks excluded from an
// expansion and answers containment lookups against it.
package ipranger

import (
	"net"

	"github.com/pkg/errors"
	"github.com/yl2chen/cidranger"
	"github.com/zan8in/cidrx/pkg/util/iputil"
)

var ErrInvalidExclude = errors.New("invalid exclude target")

type IPRanger struct {
	ranger cidranger.Ranger
	count  int
}

func New() *IPRanger {
	return &IPRanger{ranger: cidranger.NewPCTrieRanger()}
}

// Add accepts a single IP or a CIDR block.
func (r *IPRanger) Add(target string) error {
	switch {
	case iputil.IsCIDR(target):
		return r.AddCidr(target)
	case iputil.IsIP(target):
		return r.AddHost(target)
	default:
		return errors.Wrap(ErrInvalidExclude, target)
	}
}

// AddCidr inserts a CIDR block into the exclusion set.
func (r *IPRanger) AddCidr(cidr string) error {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return errors.Wrap(ErrInvalidExclude, cidr)
	}
	if err := r.ranger.Insert(cidranger.NewBasicRangerEntry(*network)); err != nil {
		return err
	}
	r.count++
	return nil
}

// AddHost inserts a single IP as its single-address block.
func (r *IPRanger) AddHost(host string) error {
	ip := net.ParseIP(host)
	if ip == nil {
		return errors.Wrap(ErrInvalidExclude, host)
	}
	ones := 8 * net.IPv6len
	if ip.To4() != nil {
		ip = ip.To4()
		ones = 8 * net.IPv4len
	}
	network := net.IPNet{IP: ip, Mask: net.CIDRMask(ones, ones)}
	if err := r.ranger.Insert(cidranger.NewBasicRangerEntry(network)); err != nil {
		return err
	}
	r.count++
	return nil
}

// Contains reports whether host falls inside the exclusion set. Unparseable
// input is never contained.
func (r *IPRanger) Contains(host string) bool {
	if r.count == 0 {
		return false
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	contains, err := r.ranger.Contains(ip)
	return err == nil && contains
}

// Len returns the number of entries in the exclusion set.
func (r *IPRanger) Len() int {
	return r.count
}
