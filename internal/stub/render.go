package stub

import "time"

// Renderers for the legacy wire shapes. Dates go out as epoch
// milliseconds, flags as 0/1 integers, field names underscore-cased —
// exactly what the production backend's older endpoints emit.

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func epochMillis(t time.Time) int64 { return t.UnixMilli() }

func renderUser(u userRecord) map[string]any {
	return map[string]any{
		"User_Id":     u.ID,
		"email":       u.Email,
		"User_Name":   u.Name,
		"User_Role":   u.Role,
		"Branch_Code": u.BranchCode,
	}
}

func renderOrderItem(item orderItemRecord) map[string]any {
	return map[string]any{
		"Item_Id":             item.ID,
		"Part_Number":         item.PartNumber,
		"Item_Description":    item.Description,
		"Order_Qty":           item.Quantity,
		"Picked_Qty":          item.PickedQuantity,
		"mrp":                 item.MRP,
		"Basic_Discount":      item.BasicDiscount,
		"Scheme_Discount":     item.SchemeDiscount,
		"Additional_Discount": item.AdditionalDiscount,
		"Picked_Status":       flag(item.Picked),
	}
}

func renderHistory(entries []historyRecord) []map[string]any {
	out := make([]map[string]any, 0, len(entries))
	for _, h := range entries {
		out = append(out, map[string]any{
			"Order_Status": h.Status,
			"Status_Date":  epochMillis(h.At),
			"Updated_By":   h.Actor,
			"notes":        h.Notes,
		})
	}
	return out
}

func renderOrder(o *orderRecord) map[string]any {
	items := make([]map[string]any, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, renderOrderItem(item))
	}
	return map[string]any{
		"Order_Id":      o.ID,
		"CRMOrderId":    o.OrderNumber,
		"Order_Status":  o.Status,
		"Retailer_Id":   o.RetailerID,
		"Retailer_Name": o.RetailerName,
		"Branch_Code":   o.BranchCode,
		"PO_Number":     o.PONumber,
		"Urgent_Status": flag(o.Urgent),
		"IsSync":        1,
		"notes":         o.Notes,
		"Order_Date":    epochMillis(o.OrderDate),
		"items":         items,
		"statusHistory": renderHistory(o.History),
	}
}

func renderPart(p partRecord) map[string]any {
	return map[string]any{
		"Part_Number":         p.PartNumber,
		"Part_Description":    p.Description,
		"mrp":                 p.MRP,
		"Basic_Discount":      p.BasicDiscount,
		"Scheme_Discount":     p.SchemeDiscount,
		"Additional_Discount": p.AdditionalDiscount,
		"Min_Qty":             p.MinQuantity,
		"Max_Qty":             p.MaxQuantity,
		"category":            p.Category,
		"Focus_Group":         p.FocusGroup,
		"Guru_Points":         p.GuruPoints,
		"Champion_Points":     p.ChampionPoints,
	}
}

func renderItemStatus(s itemStatusRecord) map[string]any {
	return map[string]any{
		"Branch_Code":   s.BranchCode,
		"Part_Number":   s.PartNumber,
		"Stock_Qty":     s.OnHand,
		"Rack_Location": s.RackLocation,
	}
}

func renderRetailer(r retailerRecord) map[string]any {
	return map[string]any{
		"Retailer_Id":    r.ID,
		"Retailer_Name":  r.BusinessName,
		"Contact_Person": r.ContactName,
		"Mobile_Number":  r.Phone,
		"email":          r.Email,
		"Credit_Limit":   r.CreditLimit,
		"Branch_Code":    r.BranchCode,
		"active":         flag(r.Active),
		"Confirm":        flag(r.Confirmed),
		"pending":        flag(r.Pending),
	}
}
