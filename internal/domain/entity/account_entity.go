package entity

import (
	"time"
)

// Account is the aggregate root for the user directory.
// Password holds the bcrypt hash and is empty whenever the account was loaded
// without its credentials.
type Account struct {
	ID         string
	Username   string
	Password   string
	Email      string
	FullName   string
	ProfilePic string
	Batch      string
	IsAdmin    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountView is the only outward representation of an Account. It has no secret field.
type AccountView struct {
	ID         string    `json:"_id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullName"`
	ProfilePic string    `json:"profilePic"`
	Batch      string    `json:"batch"`
	IsAdmin    bool      `json:"isAdmin"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// View strips the secret.
func (a *Account) View() AccountView {
	return AccountView{
		ID:         a.ID,
		Username:   a.Username,
		Email:      a.Email,
		FullName:   a.FullName,
		ProfilePic: a.ProfilePic,
		Batch:      a.Batch,
		IsAdmin:    a.IsAdmin,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// Views maps a slice of accounts to their outward representation.
func Views(accounts []*Account) []AccountView {
	out := make([]AccountView, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.View())
	}
	return out
}
