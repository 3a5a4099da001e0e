// Package ifaces enumerates the system network interfaces and their
// addresses. It is a thin wrapper over the platform interface listing
// and a client of the logging facility.
package ifaces

import (
	"net"
	"net/netip"

	"github.com/joigmaga/go-mcast/logging"
	"github.com/joigmaga/go-mcast/netaddr"
)

// logging instance for this module
var logger, _ = logging.GetLogger("GETIFADD", logging.Warning, logging.Stdlog)

// NetworkInterface describes one link and the addresses attached to
// it that matched the caller's filters.
type NetworkInterface struct {
	Name  string
	Index int
	Flags net.Flags
	Addrs []netaddr.Address
}

// Interfaces enumerates the network interfaces, keeping only those
// matching name (when non-empty) and, per address, the family and
// scope filters. Scope selection applies to IPv6 addresses only:
// requesting a scope drops every non-IPv6 address.
func Interfaces(name string, family netaddr.Family, scope netaddr.Scope) (nis []*NetworkInterface, err error) {
	list, err := net.Interfaces()
	if err != nil {
		logger.Error("listing interfaces: %v", err)
		return
	}
	for i := range list {
		ifc := &list[i]
		logger.Debug("name: %s, flags: 0x%x, index: %d", ifc.Name, uint(ifc.Flags), ifc.Index)
		if name != "" && ifc.Name != name {
			continue
		}
		ni := &NetworkInterface{Name: ifc.Name, Index: ifc.Index, Flags: ifc.Flags}

		if hw := ifc.HardwareAddr; len(hw) == 6 &&
			(family == netaddr.Unspec || family == netaddr.MAC) && scope == netaddr.ScopeUnspec {
			if a, err2 := netaddr.GetMACAddress(hw.String()); err2 == nil {
				ni.Addrs = append(ni.Addrs, a)
				logger.Debug("  created address: %s", a)
			}
		}

		addrs, aerr := ifc.Addrs()
		if aerr != nil {
			logger.Error("listing addresses for %s: %v", ifc.Name, aerr)
			continue
		}
		for _, ia := range addrs {
			ipn, ok := ia.(*net.IPNet)
			if !ok {
				continue
			}
			a, ok := netip.AddrFromSlice(ipn.IP)
			if !ok {
				logger.Debug("  *** unusable address on %s", ifc.Name)
				continue
			}
			a = a.Unmap()
			logger.Debug("  family: %v, address: %s", familyOf(a), a)

			if a.Is4() {
				if family != netaddr.Unspec && family != netaddr.IPv4 {
					continue
				}
				if scope != netaddr.ScopeUnspec {
					continue
				}
			} else {
				if family != netaddr.Unspec && family != netaddr.IPv6 {
					continue
				}
				if a.IsLinkLocalUnicast() {
					a = a.WithZone(ifc.Name)
				}
			}
			ad := netaddr.NewIPAddress(a)
			if scope != netaddr.ScopeUnspec {
				v6, ok := ad.(*netaddr.IPv6Address)
				if !ok || v6.Scope() != scope {
					continue
				}
			}
			ni.Addrs = append(ni.Addrs, ad)
			logger.Debug("  created address: %s", ad)
		}
		nis = append(nis, ni)
	}
	return
}

func familyOf(a netip.Addr) netaddr.Family {
	if a.Is4() {
		return netaddr.IPv4
	}
	return netaddr.IPv6
}

// FindInterface returns the interface with the given name, or nil.
func FindInterface(name string, nis []*NetworkInterface) *NetworkInterface {
	for _, ni := range nis {
		if ni.Name == name {
			return ni
		}
	}
	return nil
}

// FindInterfaceByIndex returns the interface with the given index, or
// nil.
func FindInterfaceByIndex(index int, nis []*NetworkInterface) *NetworkInterface {
	for _, ni := range nis {
		if ni.Index == index {
			return ni
		}
	}
	return nil
}

// FindInterfaceAddress returns the interface carrying the given
// textual address, or nil when no interface matches.
func FindInterfaceAddress(address string) (ni *NetworkInterface, err error) {
	addr, err := netaddr.GetAddress(address, "", netaddr.Unspec)
	if err != nil {
		return
	}
	nis, err := Interfaces("", netaddr.Unspec, netaddr.ScopeUnspec)
	if err != nil {
		return
	}
	for _, n := range nis {
		for _, ad := range n.Addrs {
			logger.Debug("---> comparing %s to %s", ad, addr)
			if netaddr.Equal(ad, addr) {
				logger.Info("match for %s in %s", ad, n.Name)
				return n, nil
			}
		}
	}
	return nil, nil
}
