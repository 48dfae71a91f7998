package expander

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinaryString(t *testing.T) {
	cases := []struct {
		addr string
		bin  string
	}{
		{"192.168.2.0", "11000000101010000000001000000000"},
		{"255.255.255.255", "11111111111111111111111111111111"},
		{"172.16.5.9", "10101100000100000000010100001001"},
		// leading zero bits are dropped
		{"127.0.0.1", "1111111000000000000000000000001"},
		{"10.0.0.0", "1010000000000000000000000000"},
		{"1.2.3.4", "1000000100000001100000100"},
		{"0.255.0.255", "111111110000000011111111"},
		{"0.0.0.1", "1"},
		{"0.0.0.0", "0"},
	}

	for _, c := range cases {
		bin, err := ToBinaryString(c.addr)
		require.NoError(t, err, c.addr)
		assert.Equal(t, c.bin, bin, c.addr)
	}
}

func TestToBinaryStringInvalid(t *testing.T) {
	for _, addr := range []string{"", "1.2.3", "1.2.3.4.5", "256.0.0.1", "a.b.c.d", "1..2.3", "-1.0.0.0"} {
		_, err := ToBinaryString(addr)
		assert.ErrorIs(t, err, ErrInvalidAddress, addr)
	}
}

func TestToPaddedBinaryString(t *testing.T) {
	bin, err := ToPaddedBinaryString("10.0.0.0")
	require.NoError(t, err)
	assert.Equal(t, "00001010000000000000000000000000", bin)
	assert.Len(t, bin, 32)

	bin, err = ToPaddedBinaryString("192.168.2.0")
	require.NoError(t, err)
	assert.Equal(t, "11000000101010000000001000000000", bin)
}

func TestToIpAddress(t *testing.T) {
	cases := []struct {
		bin  string
		addr string
	}{
		{"11000000101010000000001000000000", "192.168.2.0"},
		{"1", "0.0.0.1"},
		{"0", "0.0.0.0"},
		// short strings carry implied leading zeros
		{"1010000000000000000000000000", "10.0.0.0"},
		{"00001010000000000000000000000000", "10.0.0.0"},
	}

	for _, c := range cases {
		addr, err := ToIpAddress(c.bin)
		require.NoError(t, err, c.bin)
		assert.Equal(t, c.addr, addr, c.bin)
	}
}

func TestToIpAddressInvalid(t *testing.T) {
	for _, bin := range []string{"", "2", "10102", "one", "1 0", "1" + strings.Repeat("0", 32)} {
		_, err := ToIpAddress(bin)
		assert.ErrorIs(t, err, ErrInvalidBinaryString, bin)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	for _, addr := range []string{
		"0.0.0.0", "0.0.0.1", "10.0.0.0", "127.0.0.1",
		"172.16.5.9", "192.168.2.3", "255.255.255.255",
	} {
		bin, err := ToBinaryString(addr)
		require.NoError(t, err)
		back, err := ToIpAddress(bin)
		require.NoError(t, err)
		assert.Equal(t, addr, back)
	}
}
