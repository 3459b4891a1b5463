package mem

import "github.com/3p1phany/myDRAMsim/sim/modeling"

// AddressToPortMapper tells a DRAM system which channel port owns a given
// system address.
type AddressToPortMapper interface {
	Find(address uint64) modeling.RemotePort
}

// InterleavedAddressPortMapper distributes addresses round-robin across a
// set of channel ports at a fixed interleaving granularity.
type InterleavedAddressPortMapper struct {
	InterleavingSize uint64
	Channels         []modeling.RemotePort
}

// NewInterleavedAddressPortMapper creates a mapper that interleaves
// addresses across channels at interleavingSize granularity.
func NewInterleavedAddressPortMapper(interleavingSize uint64) *InterleavedAddressPortMapper {
	return &InterleavedAddressPortMapper{InterleavingSize: interleavingSize}
}

// Find returns the channel port that owns address.
func (m *InterleavedAddressPortMapper) Find(address uint64) modeling.RemotePort {
	index := address / m.InterleavingSize % uint64(len(m.Channels))
	return m.Channels[index]
}
