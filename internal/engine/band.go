package engine

// PriceBand classifies a price for presentation. The renderer maps a band to
// a color; the engine never deals with colors.
type PriceBand int

// Price bands, cheapest first.
const (
	BandLow PriceBand = iota
	BandMid
	BandHigh
)

// Band thresholds, inclusive upper bounds.
const (
	LowBandMax = 1000.0
	MidBandMax = 1500.0
)

// BandOf returns the band of price: up to 1000 is low, above that up to
// and including 1500 is mid, anything higher is high.
func BandOf(price float64) PriceBand {
	switch {
	case price <= LowBandMax:
		return BandLow
	case price <= MidBandMax:
		return BandMid
	default:
		return BandHigh
	}
}

// String returns "low", "mid" or "high".
func (b PriceBand) String() string {
	switch b {
	case BandLow:
		return "low"
	case BandMid:
		return "mid"
	case BandHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MarshalText encodes the band by name.
func (b PriceBand) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
