package dram

// Protocol identifies the DDR-family protocol a memory controller
// implements. Most timing derivations are protocol-independent; a
// handful (burst-cycle division, GDDR/HBM activate-to-read/write timing,
// precharge-to-precharge spacing) branch on it explicitly.
type Protocol int

// The protocols this controller can be configured for.
const (
	DDR3 Protocol = iota
	DDR4
	DDR5
	LPDDR3
	LPDDR4
	GDDR5
	GDDR5X
	GDDR6
	HBM
	HBM2
)

func (p Protocol) isGDDR() bool {
	return p == GDDR5 || p == GDDR5X || p == GDDR6
}

func (p Protocol) isHBM() bool {
	return p == HBM || p == HBM2
}

func (p Protocol) String() string {
	switch p {
	case DDR3:
		return "DDR3"
	case DDR4:
		return "DDR4"
	case DDR5:
		return "DDR5"
	case LPDDR3:
		return "LPDDR3"
	case LPDDR4:
		return "LPDDR4"
	case GDDR5:
		return "GDDR5"
	case GDDR5X:
		return "GDDR5X"
	case GDDR6:
		return "GDDR6"
	case HBM:
		return "HBM"
	case HBM2:
		return "HBM2"
	default:
		return "UNKNOWN"
	}
}
