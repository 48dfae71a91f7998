package expander

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"net"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrInvalidAddress      = errors.New("invalid ipv4 address")
	ErrInvalidPrefixLength = errors.New("invalid prefix length")
	ErrInvalidBinaryString = errors.New("invalid binary string")
)

// addrValue parses a dotted-decimal IPv4 literal into the 32-bit scalar all
// address math runs on. Octet-by-octet parsing builds a little-endian scalar
// (first octet in the low byte); the byte order is reversed here so binary
// digit conversion sees the address in network order. Dotted-decimal parsing
// and integer-to-binary conversion disagree on endianness, so every caller
// must go through this function and formatAddr rather than hand-rolling the
// conversion.
func addrValue(addr string) (uint32, error) {
	octets := strings.Split(addr, ".")
	if len(octets) != 4 {
		return 0, errors.Wrap(ErrInvalidAddress, addr)
	}

	var le uint32
	for i, octet := range octets {
		n, err := strconv.ParseUint(octet, 10, 8)
		if err != nil {
			return 0, errors.Wrap(ErrInvalidAddress, addr)
		}
		le |= uint32(n) << (8 * uint(i))
	}

	return bits.ReverseBytes32(le), nil
}

func formatAddr(value uint32) string {
	ip := make(net.IP, 4)
	binary.BigEndian.PutUint32(ip, value)
	return ip.String()
}

// ToBinaryString converts a dotted-decimal IPv4 address to its binary digit
// representation. Leading zero bits are dropped, so the result is only 32
// characters long for addresses at or above 128.0.0.0; callers that slice by
// prefix length must use ToPaddedBinaryString instead.
func ToBinaryString(addr string) (string, error) {
	value, err := addrValue(addr)
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(uint64(value), 2), nil
}

// ToPaddedBinaryString is the fixed-width variant of ToBinaryString, always
// 32 characters.
func ToPaddedBinaryString(addr string) (string, error) {
	value, err := addrValue(addr)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%032b", value), nil
}

// ToIpAddress parses a binary digit string as an unsigned 32-bit value and
// formats it as a dotted-decimal IPv4 address. Inverse of ToBinaryString;
// strings shorter than 32 characters are treated as having leading zeros.
func ToIpAddress(bin string) (string, error) {
	if len(bin) == 0 {
		return "", errors.Wrap(ErrInvalidBinaryString, "empty")
	}
	value, err := strconv.ParseUint(bin, 2, 32)
	if err != nil {
		return "", errors.Wrap(ErrInvalidBinaryString, bin)
	}
	return formatAddr(uint32(value)), nil
}
