package netaddr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAddressIPv4(t *testing.T) {
	addr, err := GetAddress("130.56.197.2", "89", Unspec)
	require.NoError(t, err)
	require.Equal(t, IPv4, addr.Family())
	require.Equal(t, "130.56.197.2", addr.String())
	require.False(t, addr.IsMulticast())
	require.Equal(t, "::ffff:130.56.197.2", addr.(*IPv4Address).Mapped())

	m, err := GetAddress("235.34.32.11", "", IPv4)
	require.NoError(t, err)
	require.True(t, m.IsMulticast())
}

func TestGetAddressIPv6(t *testing.T) {
	tests := []struct {
		host      string
		out       string
		multicast bool
		mapped    bool
		scope     Scope
	}{
		{"ff02::1234:5678", "ff02::1234:5678", true, false, LinkLocal},
		{"ff05::1", "ff05::1", true, false, SiteLocal},
		{"::ffff:235.34.32.11", "::ffff:235.34.32.11", true, true, Global},
		{"::ffff:130.206.1.2", "::ffff:130.206.1.2", false, true, Global},
		{"fe80::1%eth0", "fe80::1%eth0", false, false, LinkLocal},
		{"2001:db8::1%eth0", "2001:db8::1", false, false, Global},
		{"::1", "::1", false, false, LinkLocal},
		{"::", "::", false, false, InvScope},
		{"2001:db8::1", "2001:db8::1", false, false, Global},
	}
	for _, tc := range tests {
		addr, err := GetAddress(tc.host, "", IPv6)
		require.NoError(t, err, tc.host)
		require.Equal(t, IPv6, addr.Family(), tc.host)
		v6 := addr.(*IPv6Address)
		require.Equal(t, tc.out, v6.String(), tc.host)
		require.Equal(t, tc.multicast, v6.IsMulticast(), tc.host)
		require.Equal(t, tc.mapped, v6.IsV4Mapped(), tc.host)
		require.Equal(t, tc.scope, v6.Scope(), tc.host)
	}
}

func TestGetAddressMAC(t *testing.T) {
	good := []struct{ in, out string }{
		{"f:0:12:3:56:8", "0f:00:12:03:56:08"},
		{"aa.bb.cc.dd.ee.ff", "aa:bb:cc:dd:ee:ff"},
		{"AA:BB:CC:DD:EE:FF", "aa:bb:cc:dd:ee:ff"},
		{"1|2|3|4|5|6", "01:02:03:04:05:06"},
	}
	for _, tc := range good {
		addr, err := GetAddress(tc.in, "", MAC)
		require.NoError(t, err, tc.in)
		require.Equal(t, MAC, addr.Family())
		require.Equal(t, tc.out, addr.String(), tc.in)
	}

	bad := []string{
		"aa:bb.cc:dd:ee:ff",    // mixed separators
		"aaa:bb:cc:dd:ee:ff",   // field too wide
		"aa:bb:cc:dd:ee",       // too few groups
		"aa:bb:cc:dd:ee:ff:11", // trailing groups
		"aa:bb:cc:dd:ee:",      // dangling separator
		"aa bb cc dd ee ff",    // invalid separator
	}
	for _, in := range bad {
		_, err := GetAddress(in, "", MAC)
		require.Error(t, err, in)
	}

	m, err := GetMACAddress("01:00:5e:00:00:01")
	require.NoError(t, err)
	require.True(t, m.IsMulticast())
	u, err := GetMACAddress("02:00:5e:00:00:01")
	require.NoError(t, err)
	require.False(t, u.IsMulticast())
}

func TestGetAddressDefaults(t *testing.T) {
	a4, err := GetAddress("", "", IPv4)
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0", a4.String())

	a6, err := GetAddress("", "", IPv6)
	require.NoError(t, err)
	require.Equal(t, "::", a6.String())

	_, err = GetAddress("", "", MAC)
	require.ErrorIs(t, err, ErrNullMAC)

	_, err = GetAddress("", "", Unspec)
	require.ErrorIs(t, err, ErrAmbiguous)
}

func TestGetAddressLimits(t *testing.T) {
	_, err := GetAddress(strings.Repeat("1", MaxHostLen+1), "", Unspec)
	require.ErrorIs(t, err, ErrTooLong)

	_, err = GetAddress("not-an-address", "", Unspec)
	require.Error(t, err)

	_, err = GetAddress("127.0.0.1", "", Family(42))
	require.Error(t, err)
}

func TestServiceValidation(t *testing.T) {
	_, err := GetIPAddress("127.0.0.1", "89")
	require.NoError(t, err)

	_, err = GetIPAddress("127.0.0.1", "no-such-service-zzz")
	require.Error(t, err)
}

func TestEqual(t *testing.T) {
	a, err := GetAddress("10.0.0.1", "", IPv4)
	require.NoError(t, err)
	b, err := GetAddress("10.0.0.1", "", IPv4)
	require.NoError(t, err)
	c, err := GetAddress("10.0.0.2", "", IPv4)
	require.NoError(t, err)
	require.True(t, Equal(a, b))
	require.False(t, Equal(a, c))

	z1, err := GetAddress("fe80::1%eth0", "", IPv6)
	require.NoError(t, err)
	z2, err := GetAddress("fe80::1%eth1", "", IPv6)
	require.NoError(t, err)
	require.True(t, Equal(z1, z2)) // zones do not take part in identity

	m1, err := GetAddress("aa:bb:cc:dd:ee:ff", "", MAC)
	require.NoError(t, err)
	require.False(t, Equal(a, m1))
	require.False(t, Equal(a, nil))
}
