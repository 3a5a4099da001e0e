// Package netaddr parses textual network addresses — IPv4, IPv6
// (with zone handling) and link layer — into a common Address view.
// It is a thin wrapper over the platform address types and a client
// of the logging facility.
package netaddr

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/joigmaga/go-mcast/errorutil"
	"github.com/joigmaga/go-mcast/logging"
)

// logging instance for this module
var logger, _ = logging.GetLogger("ADDRESS", logging.Warning, logging.Stdlog)

// Family identifies the address family of an Address.
type Family int

const (
	Unspec Family = iota
	IPv4
	IPv6
	MAC
)

var family2s = map[Family]string{
	Unspec: "unspecified",
	IPv4:   "IPv4",
	IPv6:   "IPv6",
	MAC:    "link layer",
}

func (f Family) String() string {
	if s, ok := family2s[f]; ok {
		return s
	}
	return "unknown"
}

// Scope classifies IPv6 addresses.
type Scope uint8

const (
	InvScope  Scope = 0x0
	NodeLocal Scope = 0x1
	LinkLocal Scope = 0x2
	SiteLocal Scope = 0x5
	OrgLocal  Scope = 0x8
	Global    Scope = 0xe

	// ScopeUnspec requests no scope filtering.
	ScopeUnspec Scope = 0xff
)

// MaxHostLen bounds the textual form of an address.
const MaxHostLen = 32

// macSeparators are the characters accepted between link layer
// address groups. An address must use one of them consistently.
const macSeparators = ":.|;"

var (
	ErrNullMAC   = errorutil.String("netaddr: invalid NULL MAC address")
	ErrAmbiguous = errorutil.String("netaddr: ambiguous NULL address, specify '0.0.0.0' or '::' for IPv6")
	ErrTooLong   = errorutil.String("netaddr: maximum address length exceeded")
)

// Address is the common view of a parsed network address.
type Address interface {
	String() string
	Family() Family
	IsMulticast() bool
}

// IPv4Address is a parsed IPv4 address.
type IPv4Address struct {
	addr netip.Addr
	host string
}

func newIPv4Address(a netip.Addr) *IPv4Address {
	return &IPv4Address{addr: a, host: a.String()}
}

func (a *IPv4Address) String() string    { return a.host }
func (a *IPv4Address) Family() Family    { return IPv4 }
func (a *IPv4Address) IsMulticast() bool { return a.addr.IsMulticast() }

// Mapped returns the v4-in-v6 mapped textual form of the address.
func (a *IPv4Address) Mapped() string { return "::ffff:" + a.host }

// IPv6Address is a parsed IPv6 address, possibly carrying a zone.
type IPv6Address struct {
	addr netip.Addr
}

func newIPv6Address(a netip.Addr) *IPv6Address { return &IPv6Address{addr: a} }

func (a *IPv6Address) Family() Family { return IPv6 }

// IsV4Mapped reports whether this is an IPv4-mapped IPv6 address.
func (a *IPv6Address) IsV4Mapped() bool { return a.addr.Is4In6() }

// IsMulticast checks the embedded IPv4 address for v4-mapped
// addresses, the IPv6 multicast prefix otherwise.
func (a *IPv6Address) IsMulticast() bool {
	if a.addr.Is4In6() {
		return a.addr.Unmap().IsMulticast()
	}
	return a.addr.IsMulticast()
}

// Scope classifies the address from its raw bytes: the unspecified
// address has no scope, loopback and link-local unicast are link
// local, multicast scope is the low nibble of the second byte, and
// everything else, v4-mapped addresses included, is global.
func (a *IPv6Address) Scope() Scope {
	u := a.addr.WithZone("")
	b := u.As16()
	switch {
	case u == netip.IPv6Unspecified():
		return InvScope
	case u == netip.IPv6Loopback():
		return LinkLocal
	case b[0] == 0xfe && b[1]&0xc0 == 0x80:
		return LinkLocal
	case b[0] == 0xff:
		return Scope(b[1] & 0x0f)
	}
	return Global
}

// String prints the address, attaching the zone only for scoped
// addresses (not unspecified, not loopback, not global scope).
func (a *IPv6Address) String() string {
	host := a.addr.WithZone("").String()
	if a.addr.Zone() == "" {
		return host
	}
	u := a.addr.WithZone("")
	if u.IsUnspecified() || u.IsLoopback() || a.Scope() == Global {
		return host
	}
	return host + "%" + a.addr.Zone()
}

// MACAddress is a parsed link layer address.
type MACAddress struct {
	hw   [6]byte
	host string
}

func newMACAddress(hw [6]byte) *MACAddress {
	return &MACAddress{
		hw: hw,
		host: fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
			hw[0], hw[1], hw[2], hw[3], hw[4], hw[5]),
	}
}

func (a *MACAddress) String() string { return a.host }
func (a *MACAddress) Family() Family { return MAC }

// IsMulticast reports whether the group bit of the first octet is set.
func (a *MACAddress) IsMulticast() bool { return a.hw[0]&1 != 0 }

func hexVal(c byte) (v byte, ok bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return
}

// parseMAC converts textual link layer addresses of the form
// 'nhSnhSnhSnhSnhSnh', where S is a consistent separator from
// macSeparators and nh is a group of 0, 1 or 2 hex characters.
func parseMAC(host string) (hw [6]byte, ok bool) {
	var sep byte
	s := host
	pos := 0
	for pos < 6 && len(s) > 0 {
		n := 0
		var v uint16
		for n < len(s) && n <= 2 {
			d, isx := hexVal(s[n])
			if !isx {
				break
			}
			v = v<<4 | uint16(d)
			n++
		}
		if n > 2 {
			// field occupies more than two hex chars
			return
		}
		s = s[n:]
		if len(s) > 0 {
			c := s[0]
			if !strings.ContainsRune(macSeparators, rune(c)) {
				return
			}
			if sep != 0 && c != sep {
				// multiple separator characters used
				return
			}
			sep = c
		}
		hw[pos] = byte(v)
		pos++
		if pos < 6 && len(s) > 0 {
			s = s[1:]
		}
	}
	ok = pos == 6 && len(s) == 0
	return
}

// NewIPAddress wraps an already-parsed address in the matching
// Address implementation. IPv4-mapped addresses stay in their v6
// form.
func NewIPAddress(a netip.Addr) Address {
	if a.Is4() {
		return newIPv4Address(a)
	}
	return newIPv6Address(a)
}

// GetIPAddress parses a numeric host into an IPv4 or IPv6 address.
// IPv6 hosts may carry a zone ("fe80::1%eth0"). A non-empty service
// is resolved for validation only; addresses carry no port.
func GetIPAddress(host, service string) (addr Address, err error) {
	if service != "" {
		if _, err = net.LookupPort("udp", service); err != nil {
			logger.Error("resolving service %q: %v", service, err)
			return
		}
	}
	a, err := netip.ParseAddr(host)
	if err != nil {
		logger.Error("parsing address %q: %v", host, err)
		return
	}
	addr = NewIPAddress(a)
	return
}

// GetMACAddress parses a textual link layer address.
func GetMACAddress(host string) (addr Address, err error) {
	hw, ok := parseMAC(host)
	if !ok {
		logger.Error("wrong link layer address syntax: %s", host)
		err = fmt.Errorf("netaddr: wrong link layer address syntax: %q", host)
		return
	}
	addr = newMACAddress(hw)
	return
}

// GetAddress builds an Address from its textual representation. An
// empty host selects the unspecified address of the requested family;
// the family of the result follows the parsed text, as parsing is
// numeric-only and self-describing.
func GetAddress(host, service string, family Family) (addr Address, err error) {
	if host == "" {
		switch family {
		case IPv4:
			host = "0.0.0.0"
		case IPv6:
			host = "::"
		case MAC:
			logger.Error("invalid NULL MAC address")
			err = ErrNullMAC
			return
		default:
			logger.Error("ambiguous NULL address, specify '0.0.0.0' or '::' for IPv6")
			err = ErrAmbiguous
			return
		}
	}
	if len(host) > MaxHostLen {
		logger.Error("maximum address length exceeded")
		err = ErrTooLong
		return
	}
	switch family {
	case MAC:
		addr, err = GetMACAddress(host)
	case Unspec, IPv4, IPv6:
		addr, err = GetIPAddress(host, service)
	default:
		logger.Error("invalid address family: %d", int(family))
		err = fmt.Errorf("netaddr: invalid address family: %d", int(family))
	}
	return
}

// Equal reports whether two addresses are the same binary address in
// the same family. Zones are ignored for IPv6.
func Equal(x, y Address) bool {
	if x == nil || y == nil || x.Family() != y.Family() {
		return false
	}
	switch a := x.(type) {
	case *IPv4Address:
		b, ok := y.(*IPv4Address)
		return ok && a.addr == b.addr
	case *IPv6Address:
		b, ok := y.(*IPv6Address)
		return ok && a.addr.WithZone("") == b.addr.WithZone("")
	case *MACAddress:
		b, ok := y.(*MACAddress)
		return ok && a.hw == b.hw
	}
	return false
}
