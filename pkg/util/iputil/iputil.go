package iputil

import (
	"net"

	"github.com/asaskevich/govalidator"
)

// IsIP reports whether s is a valid IP address literal.
func IsIP(s string) bool {
	return net.ParseIP(s) != nil
}

// IsIPv4 reports whether s is a valid dotted-decimal IPv4 literal.
func IsIPv4(s string) bool {
	return govalidator.IsIPv4(s)
}

// IsCIDR reports whether s is a valid CIDR spec.
func IsCIDR(s string) bool {
	return govalidator.IsCIDR(s)
}

// ToCidr widens a bare IPv4 literal to its single-address block. Anything
// else is returned unchanged.
func ToCidr(s string) string {
	if IsIPv4(s) {
		return s + "/32"
	}
	return s
}
