package stub

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/chiruit2077/partslink/internal/orders"
	"github.com/chiruit2077/partslink/internal/platform/httpx"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body loginBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "email and password are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[body.Email]
	if !ok || user.Password != body.Password {
		httpx.Fail(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	access, refresh := s.issueTokens(user.Email)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token":        access,
		"refreshToken": refresh,
		"expiresIn":    3600,
		"user":         renderUser(user),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil || body.RefreshToken == "" {
		httpx.Fail(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	email, ok := s.refreshTokens[body.RefreshToken]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: invalid refresh token", httpx.ErrUnauthorized))
		return
	}
	delete(s.refreshTokens, body.RefreshToken)
	access, refresh := s.issueTokens(email)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"token":        access,
		"refreshToken": refresh,
		"expiresIn":    3600,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("Authorization")
	if len(token) > 7 {
		s.mu.Lock()
		delete(s.tokens, token[7:])
		s.mu.Unlock()
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := s.currentUser(r)
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "invalid token")
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": renderUser(user)})
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required"`
		NewPassword     string `json:"newPassword" validate:"required,min=8"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "new password must be at least 8 characters")
		return
	}
	user, ok := s.currentUser(r)
	if !ok || user.Password != body.CurrentPassword {
		httpx.Fail(w, http.StatusBadRequest, "current password is incorrect")
		return
	}
	s.mu.Lock()
	user.Password = body.NewPassword
	s.users[user.Email] = user
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.orders))
	for _, o := range s.orders {
		if statusFilter != "" && !strings.EqualFold(o.Status, statusFilter) {
			continue
		}
		out = append(out, renderOrder(o))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"orders": out})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: order %d", httpx.ErrNotFound, id))
		return
	}
	httpx.JSON(w, http.StatusOK, renderOrder(order))
}

type createOrderBody struct {
	RetailerID int64  `json:"retailer_id" validate:"required,gt=0"`
	BranchCode string `json:"branch_code" validate:"required"`
	PONumber   string `json:"po_number"`
	Urgent     int    `json:"urgent"`
	Notes      string `json:"notes"`
	Items      []struct {
		PartNumber         string  `json:"part_number" validate:"required"`
		Quantity           float64 `json:"quantity" validate:"required,gt=0"`
		MRP                float64 `json:"mrp"`
		BasicDiscount      float64 `json:"basic_discount"`
		SchemeDiscount     float64 `json:"scheme_discount"`
		AdditionalDiscount float64 `json:"additional_discount"`
	} `json:"items" validate:"required,min=1,dive"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var body createOrderBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: order is missing required fields", httpx.ErrValidation))
		return
	}
	user, _ := s.currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	retailer, ok := s.retailers[body.RetailerID]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: retailer %d", httpx.ErrNotFound, body.RetailerID))
		return
	}

	s.nextOrderID++
	now := s.now()
	order := &orderRecord{
		ID:           s.nextOrderID,
		OrderNumber:  fmt.Sprintf("ORD-%d-%d", now.Year(), s.nextOrderID),
		Status:       "New",
		RetailerID:   retailer.ID,
		RetailerName: retailer.BusinessName,
		BranchCode:   body.BranchCode,
		PONumber:     body.PONumber,
		Urgent:       body.Urgent != 0,
		Notes:        body.Notes,
		OrderDate:    now,
		History: []historyRecord{
			{Status: "New", At: now, Actor: user.Name},
		},
	}
	for _, item := range body.Items {
		s.nextItemID++
		order.Items = append(order.Items, orderItemRecord{
			ID:                 s.nextItemID,
			PartNumber:         item.PartNumber,
			Quantity:           item.Quantity,
			MRP:                item.MRP,
			BasicDiscount:      item.BasicDiscount,
			SchemeDiscount:     item.SchemeDiscount,
			AdditionalDiscount: item.AdditionalDiscount,
		})
	}
	s.orders[order.ID] = order
	httpx.JSON(w, http.StatusCreated, renderOrder(order))
}

func (s *Server) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var body struct {
		Status string `json:"status" validate:"required"`
		Notes  string `json:"notes"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "status is required")
		return
	}
	user, _ := s.currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: order %d", httpx.ErrNotFound, id))
		return
	}
	if !orders.CanTransition(order.Status, body.Status) {
		httpx.Fail(w, http.StatusBadRequest,
			fmt.Sprintf("cannot move order from %s to %s", order.Status, body.Status))
		return
	}
	target, _ := orders.ParseStatus(body.Status)
	order.Status = string(target)
	order.History = append(order.History, historyRecord{
		Status: string(target),
		At:     s.now(),
		Actor:  user.Name,
		Notes:  body.Notes,
	})
	httpx.JSON(w, http.StatusOK, renderOrder(order))
}

func (s *Server) handleOrderStats(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byStatus := make(map[string]int64)
	today := int64(0)
	cutoff := s.now().Add(-24 * time.Hour)
	for _, o := range s.orders {
		byStatus[o.Status]++
		if o.OrderDate.After(cutoff) {
			today++
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"totalOrders": len(s.orders),
		"todayOrders": today,
		"byStatus":    byStatus,
	})
}

func (s *Server) handleListParts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.parts))
	for _, p := range s.parts {
		if search != "" && !containsFold(p.PartNumber, search) && !containsFold(p.Description, search) {
			continue
		}
		out = append(out, renderPart(p))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"parts": out})
}

func (s *Server) handleGetPart(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parts[partNumber]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: part %s", httpx.ErrNotFound, partNumber))
		return
	}
	httpx.JSON(w, http.StatusOK, renderPart(p))
}

func (s *Server) handleUpdatePartStock(w http.ResponseWriter, r *http.Request) {
	partNumber := chi.URLParam(r, "partNumber")
	var body struct {
		Quantity float64 `json:"quantity" validate:"gte=0"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}
	if user, ok := s.currentUser(r); ok && !canAdjustStock(user.Role) {
		httpx.RespondError(w, fmt.Errorf("%w: role %s may not adjust stock", httpx.ErrForbidden, user.Role))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.parts[partNumber]; !ok {
		httpx.RespondError(w, fmt.Errorf("%w: part %s", httpx.ErrNotFound, partNumber))
		return
	}
	for i := range s.itemStatus {
		if s.itemStatus[i].PartNumber == partNumber {
			s.itemStatus[i].OnHand = body.Quantity
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLowStock(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0)
	for _, status := range s.itemStatus {
		part, ok := s.parts[status.PartNumber]
		if ok && status.OnHand < part.MinQuantity {
			out = append(out, renderItemStatus(status))
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"alerts": out})
}

func (s *Server) handleListItemStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.itemStatus))
	for _, status := range s.itemStatus {
		out = append(out, renderItemStatus(status))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": out})
}

func (s *Server) findItemStatus(branch, partNumber string) int {
	for i := range s.itemStatus {
		if s.itemStatus[i].BranchCode == branch && s.itemStatus[i].PartNumber == partNumber {
			return i
		}
	}
	return -1
}

func (s *Server) handleUpdateItemStock(w http.ResponseWriter, r *http.Request) {
	branch := chi.URLParam(r, "branch")
	partNumber := chi.URLParam(r, "partNumber")
	var body struct {
		Quantity float64 `json:"quantity" validate:"gte=0"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}
	if user, ok := s.currentUser(r); ok && !canAdjustStock(user.Role) {
		httpx.RespondError(w, fmt.Errorf("%w: role %s may not adjust stock", httpx.ErrForbidden, user.Role))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findItemStatus(branch, partNumber)
	if idx < 0 {
		httpx.RespondError(w, fmt.Errorf("%w: %s/%s", httpx.ErrNotFound, branch, partNumber))
		return
	}
	s.itemStatus[idx].OnHand = body.Quantity
	httpx.JSON(w, http.StatusOK, renderItemStatus(s.itemStatus[idx]))
}

func (s *Server) handleUpdateItemRack(w http.ResponseWriter, r *http.Request) {
	branch := chi.URLParam(r, "branch")
	partNumber := chi.URLParam(r, "partNumber")
	var body struct {
		RackLocation string `json:"rack_location" validate:"required"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "rack_location is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.findItemStatus(branch, partNumber)
	if idx < 0 {
		httpx.RespondError(w, fmt.Errorf("%w: %s/%s", httpx.ErrNotFound, branch, partNumber))
		return
	}
	s.itemStatus[idx].RackLocation = body.RackLocation
	httpx.JSON(w, http.StatusOK, renderItemStatus(s.itemStatus[idx]))
}

func (s *Server) handleListRetailers(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "1"
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, 0, len(s.retailers))
	for _, retailer := range s.retailers {
		if activeOnly && !retailer.Active {
			continue
		}
		out = append(out, renderRetailer(retailer))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"retailers": out})
}

func (s *Server) handleGetRetailer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid retailer id")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	retailer, ok := s.retailers[id]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: retailer %d", httpx.ErrNotFound, id))
		return
	}
	httpx.JSON(w, http.StatusOK, renderRetailer(retailer))
}

type retailerBody struct {
	BusinessName string  `json:"business_name" validate:"required"`
	ContactName  string  `json:"contact_name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email" validate:"omitempty,email"`
	CreditLimit  float64 `json:"credit_limit" validate:"gte=0"`
	BranchCode   string  `json:"branch_code" validate:"required"`
}

func (s *Server) handleCreateRetailer(w http.ResponseWriter, r *http.Request) {
	var body retailerBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: retailer is missing required fields", httpx.ErrValidation))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.retailers {
		if strings.EqualFold(existing.BusinessName, body.BusinessName) {
			httpx.RespondError(w, fmt.Errorf("%w: retailer %q", httpx.ErrDuplicate, body.BusinessName))
			return
		}
	}
	s.nextRetailerID++
	retailer := retailerRecord{
		ID:           s.nextRetailerID,
		BusinessName: body.BusinessName,
		ContactName:  body.ContactName,
		Phone:        body.Phone,
		Email:        body.Email,
		CreditLimit:  body.CreditLimit,
		BranchCode:   body.BranchCode,
		Active:       true,
		Pending:      true,
	}
	s.retailers[retailer.ID] = retailer
	httpx.JSON(w, http.StatusCreated, renderRetailer(retailer))
}

func (s *Server) handleUpdateRetailer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "invalid retailer id")
		return
	}
	var body retailerBody
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if err := s.validate.Struct(body); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: retailer is missing required fields", httpx.ErrValidation))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	retailer, ok := s.retailers[id]
	if !ok {
		httpx.RespondError(w, fmt.Errorf("%w: retailer %d", httpx.ErrNotFound, id))
		return
	}
	retailer.BusinessName = body.BusinessName
	retailer.ContactName = body.ContactName
	retailer.Phone = body.Phone
	retailer.Email = body.Email
	retailer.CreditLimit = body.CreditLimit
	retailer.BranchCode = body.BranchCode
	s.retailers[id] = retailer
	httpx.JSON(w, http.StatusOK, renderRetailer(retailer))
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func canAdjustStock(role string) bool {
	switch strings.ToLower(role) {
	case "storeman", "manager", "admin":
		return true
	}
	return false
}
