package addressmapping

import "math/bits"

// Mapper decodes a flat byte address into a DRAM Location and back.
type Mapper interface {
	Map(addr uint64) Location
	Unmap(loc Location) uint64
}

// field identifies one bitfield sliced out of the address, in order from
// least-significant bit.
type field struct {
	bits int
	set  func(loc *Location, v int)
	get  func(loc Location) int
}

// BitFieldMapper decodes addresses the way JEDEC DRAM address maps
// typically do: the address is treated as a sequence of fixed-width
// bitfields, one per addressing dimension, packed from the low bits up.
// The default order (column, bank, bank group, rank, row) keeps
// consecutive cache lines in the same row so that streaming access
// patterns produce row hits.
type BitFieldMapper struct {
	ColumnBits    int
	BankBits      int
	BankGroupBits int
	RankBits      int
	RowBits       int
	BusBits       int // low-order bits consumed by the burst/beat offset

	fields []field
	built  bool
}

func (m *BitFieldMapper) build() {
	if m.built {
		return
	}

	m.fields = []field{
		{bits: m.BusBits, set: func(*Location, int) {}, get: func(Location) int { return 0 }},
		{
			bits: m.ColumnBits,
			set:  func(loc *Location, v int) { loc.Column = v },
			get:  func(loc Location) int { return loc.Column },
		},
		{
			bits: m.BankBits,
			set:  func(loc *Location, v int) { loc.Bank = v },
			get:  func(loc Location) int { return loc.Bank },
		},
		{
			bits: m.BankGroupBits,
			set:  func(loc *Location, v int) { loc.BankGroup = v },
			get:  func(loc Location) int { return loc.BankGroup },
		},
		{
			bits: m.RankBits,
			set:  func(loc *Location, v int) { loc.Rank = v },
			get:  func(loc Location) int { return loc.Rank },
		},
		{
			bits: m.RowBits,
			set:  func(loc *Location, v int) { loc.Row = v },
			get:  func(loc Location) int { return loc.Row },
		},
	}

	m.built = true
}

// Map decodes addr into a Location. Channel selection happens upstream of
// the mapper (by whichever mem.AddressToPortMapper routed the request
// here), so Location.Channel is always left at zero.
func (m *BitFieldMapper) Map(addr uint64) Location {
	m.build()

	var loc Location

	shift := uint(0)

	for _, f := range m.fields {
		if f.bits == 0 {
			continue
		}

		mask := uint64(1)<<uint(f.bits) - 1
		v := int((addr >> shift) & mask)
		f.set(&loc, v)
		shift += uint(f.bits)
	}

	return loc
}

// Unmap is the inverse of Map, reassembling a byte address from a Location.
func (m *BitFieldMapper) Unmap(loc Location) uint64 {
	m.build()

	var addr uint64

	shift := uint(0)

	for _, f := range m.fields {
		if f.bits == 0 {
			continue
		}

		v := uint64(f.get(loc)) & (uint64(1)<<uint(f.bits) - 1)
		addr |= v << shift
		shift += uint(f.bits)
	}

	return addr
}

// MapperBuilder configures and builds BitFieldMappers from device geometry
// rather than raw bit widths, matching the way a DRAM Builder is configured
// in terms of ranks/banks/rows/columns.
type MapperBuilder struct {
	burstLengthBytes int
	columns          int
	banks            int
	bankGroups       int
	ranks            int
	rows             int
}

// MakeBuilder creates a MapperBuilder with all geometry fields at zero.
func MakeBuilder() MapperBuilder {
	return MapperBuilder{}
}

// WithBurstLengthBytes sets the burst size in bytes. Build turns it into
// the number of low-order address bits the burst/beat offset consumes.
func (b MapperBuilder) WithBurstLengthBytes(n int) MapperBuilder {
	b.burstLengthBytes = n
	return b
}

// WithColumns sets the number of columns per row.
func (b MapperBuilder) WithColumns(n int) MapperBuilder {
	b.columns = n
	return b
}

// WithBanks sets the number of banks per bank group.
func (b MapperBuilder) WithBanks(n int) MapperBuilder {
	b.banks = n
	return b
}

// WithBankGroups sets the number of bank groups per rank.
func (b MapperBuilder) WithBankGroups(n int) MapperBuilder {
	b.bankGroups = n
	return b
}

// WithRanks sets the number of ranks on the channel.
func (b MapperBuilder) WithRanks(n int) MapperBuilder {
	b.ranks = n
	return b
}

// WithRows sets the number of rows per bank.
func (b MapperBuilder) WithRows(n int) MapperBuilder {
	b.rows = n
	return b
}

// Build derives bitfield widths from the device geometry via log2 and
// returns a ready-to-use Mapper.
func (b MapperBuilder) Build() Mapper {
	return &BitFieldMapper{
		BusBits:       log2(b.burstLengthBytes),
		ColumnBits:    log2(b.columns),
		BankBits:      log2(b.banks),
		BankGroupBits: log2(b.bankGroups),
		RankBits:      log2(b.ranks),
		RowBits:       log2(b.rows),
	}
}

func log2(n int) int {
	if n <= 1 {
		return 0
	}

	return bits.Len(uint(n - 1))
}
