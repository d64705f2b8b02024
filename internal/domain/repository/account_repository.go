package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/event-portal/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no row matches the given identifier.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateUsername is returned when a write would collide with another account's username.
	ErrDuplicateUsername = errors.New("username already exists")
)

// AccountPatch is the explicit set of columns a mutation may touch.
// A nil field is left unchanged.
type AccountPatch struct {
	Username     *string
	FullName     *string
	Email        *string
	Batch        *string
	IsAdmin      *bool
	ProfilePic   *string
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.Username == nil && p.FullName == nil && p.Email == nil && p.Batch == nil &&
		p.IsAdmin == nil && p.ProfilePic == nil && p.PasswordHash == nil
}

// AccountFilter selects a page of the directory.
type AccountFilter struct {
	Search string // case-insensitive substring of username
	Batch  string // exact match; empty means any
	Offset int
	Limit  int
}

// AccountRepository defines the persistence operations on accounts.
// Every read except GetCredentials leaves Account.Password empty.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetCredentials(ctx context.Context, username string) (*entity.Account, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id string, p AccountPatch) (*entity.Account, error)
	Delete(ctx context.Context, id string) (*entity.Account, error)
	List(ctx context.Context, f AccountFilter) ([]*entity.Account, int, error)
}
