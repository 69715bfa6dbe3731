package auth

import (
	"time"

	"github.com/chiruit2077/partslink/internal/platform/wirefmt"
)

// userWire mirrors the user payload shapes the backend emits. Older
// endpoints use underscore-cased names, newer ones camelCase; both are
// decoded here and nowhere else.
type userWire struct {
	ID         wirefmt.Int `json:"id"`
	LegacyID   wirefmt.Int `json:"User_Id"`
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	LegacyName string      `json:"User_Name"`
	Role       string      `json:"role"`
	LegacyRole string      `json:"User_Role"`
	CompanyID  wirefmt.Int `json:"Company_Id"`
	BranchCode string      `json:"branchCode"`
	LegacyBr   string      `json:"Branch_Code"`
}

// NormalizeUser projects a wire user onto the canonical User. Missing
// fields degrade to zero values; it never fails.
func NormalizeUser(w userWire) User {
	return User{
		ID:         w.ID.Or(w.LegacyID.Or(0)),
		Email:      w.Email,
		Name:       wirefmt.FirstString(w.Name, w.LegacyName),
		Role:       ParseRole(wirefmt.FirstString(w.Role, w.LegacyRole)),
		CompanyID:  w.CompanyID.Or(0),
		BranchCode: wirefmt.FirstString(w.BranchCode, w.LegacyBr),
	}
}

type loginWire struct {
	Token        string       `json:"token"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	LegacyRT     string       `json:"refresh_token"`
	ExpiresAt    wirefmt.Time `json:"expiresAt"`
	ExpiresIn    wirefmt.Int  `json:"expiresIn"`
	User         userWire     `json:"user"`
}

func normalizeSession(w loginWire, now time.Time) *Session {
	expires := w.ExpiresAt.Or(time.Time{})
	if expires.IsZero() {
		if secs := w.ExpiresIn.Or(0); secs > 0 {
			expires = now.Add(time.Duration(secs) * time.Second)
		}
	}
	return &Session{
		Token:        wirefmt.FirstString(w.Token, w.AccessToken),
		RefreshToken: wirefmt.FirstString(w.RefreshToken, w.LegacyRT),
		ExpiresAt:    expires,
		User:         NormalizeUser(w.User),
	}
}

type refreshWire struct {
	Token        string      `json:"token"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	ExpiresIn    wirefmt.Int `json:"expiresIn"`
}
