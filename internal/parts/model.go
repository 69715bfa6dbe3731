package parts

// Part is a catalog entry keyed by part number.
type Part struct {
	PartNumber         string  `json:"partNumber"`
	Description        string  `json:"description"`
	MRP                float64 `json:"mrp"`
	BasicDiscount      float64 `json:"basicDiscount"`
	SchemeDiscount     float64 `json:"schemeDiscount"`
	AdditionalDiscount float64 `json:"additionalDiscount"`
	MinQuantity        float64 `json:"minQuantity"`
	MaxQuantity        float64 `json:"maxQuantity"`
	Category           string  `json:"category"`
	FocusGroup         string  `json:"focusGroup"`
	GuruPoints         int64   `json:"guruPoints"`
	ChampionPoints     int64   `json:"championPoints"`
}

// NetPrice applies the three discount percentages multiplicatively
// off MRP.
func (p Part) NetPrice() float64 {
	net := p.MRP
	for _, pct := range []float64{p.BasicDiscount, p.SchemeDiscount, p.AdditionalDiscount} {
		net *= 1 - pct/100
	}
	return net
}

// LineTotal prices a quantity of the part.
func (p Part) LineTotal(qty float64) float64 {
	return p.NetPrice() * qty
}

// StockBand is the display banding derived from the min/max thresholds.
// The client does not own authoritative stock counts; the band is
// computed from whatever on-hand figure the backend reports.
type StockBand string

const (
	BandLow       StockBand = "low"
	BandNormal    StockBand = "normal"
	BandOverstock StockBand = "overstock"
)

// Band classifies an on-hand quantity against the part's thresholds.
func (p Part) Band(onHand float64) StockBand {
	switch {
	case onHand < p.MinQuantity:
		return BandLow
	case p.MaxQuantity > 0 && onHand > p.MaxQuantity:
		return BandOverstock
	default:
		return BandNormal
	}
}

// ItemStatus is one branch-scoped stock record.
type ItemStatus struct {
	BranchCode   string  `json:"branchCode"`
	PartNumber   string  `json:"partNumber"`
	OnHand       float64 `json:"onHand"`
	RackLocation string  `json:"rackLocation"`
}
