package parts

import "github.com/chiruit2077/partslink/internal/platform/wirefmt"

type partWire struct {
	PartNumber       string        `json:"partNumber"`
	LegacyPartNumber string        `json:"Part_Number"`
	Description      string        `json:"description"`
	LegacyDesc       string        `json:"Part_Description"`
	MRP              wirefmt.Float `json:"mrp"`
	BasicDiscount    wirefmt.Float `json:"basicDiscount"`
	LegacyBasic      wirefmt.Float `json:"Basic_Discount"`
	SchemeDiscount   wirefmt.Float `json:"schemeDiscount"`
	LegacyScheme     wirefmt.Float `json:"Scheme_Discount"`
	AddlDiscount     wirefmt.Float `json:"additionalDiscount"`
	LegacyAddl       wirefmt.Float `json:"Additional_Discount"`
	MinQuantity      wirefmt.Float `json:"minQuantity"`
	LegacyMin        wirefmt.Float `json:"Min_Qty"`
	MaxQuantity      wirefmt.Float `json:"maxQuantity"`
	LegacyMax        wirefmt.Float `json:"Max_Qty"`
	Category         string        `json:"category"`
	FocusGroup       string        `json:"focusGroup"`
	LegacyFocus      string        `json:"Focus_Group"`
	GuruPoints       wirefmt.Int   `json:"guruPoints"`
	LegacyGuru       wirefmt.Int   `json:"Guru_Points"`
	ChampionPoints   wirefmt.Int   `json:"championPoints"`
	LegacyChampion   wirefmt.Int   `json:"Champion_Points"`
}

// normalizePart projects a wire part onto the canonical Part. Missing
// fields degrade to zero values; it never fails.
func normalizePart(w partWire) Part {
	return Part{
		PartNumber:         wirefmt.FirstString(w.PartNumber, w.LegacyPartNumber),
		Description:        wirefmt.FirstString(w.Description, w.LegacyDesc),
		MRP:                w.MRP.Or(0),
		BasicDiscount:      w.BasicDiscount.Or(w.LegacyBasic.Or(0)),
		SchemeDiscount:     w.SchemeDiscount.Or(w.LegacyScheme.Or(0)),
		AdditionalDiscount: w.AddlDiscount.Or(w.LegacyAddl.Or(0)),
		MinQuantity:        w.MinQuantity.Or(w.LegacyMin.Or(0)),
		MaxQuantity:        w.MaxQuantity.Or(w.LegacyMax.Or(0)),
		Category:           w.Category,
		FocusGroup:         wirefmt.FirstString(w.FocusGroup, w.LegacyFocus),
		GuruPoints:         w.GuruPoints.Or(w.LegacyGuru.Or(0)),
		ChampionPoints:     w.ChampionPoints.Or(w.LegacyChampion.Or(0)),
	}
}

type itemStatusWire struct {
	BranchCode   string        `json:"branchCode"`
	LegacyBranch string        `json:"Branch_Code"`
	PartNumber   string        `json:"partNumber"`
	LegacyPart   string        `json:"Part_Number"`
	OnHand       wirefmt.Float `json:"onHand"`
	LegacyOnHand wirefmt.Float `json:"Stock_Qty"`
	RackLocation string        `json:"rackLocation"`
	LegacyRack   string        `json:"Rack_Location"`
}

func normalizeItemStatus(w itemStatusWire, racks rackLocator) ItemStatus {
	status := ItemStatus{
		BranchCode:   wirefmt.FirstString(w.BranchCode, w.LegacyBranch),
		PartNumber:   wirefmt.FirstString(w.PartNumber, w.LegacyPart),
		OnHand:       w.OnHand.Or(w.LegacyOnHand.Or(0)),
		RackLocation: wirefmt.FirstString(w.RackLocation, w.LegacyRack),
	}
	if status.RackLocation == "" && racks != nil {
		status.RackLocation = racks.Rack(status.PartNumber)
	}
	return status
}
