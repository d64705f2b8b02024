// Package memory holds map-backed repositories for tests and local runs
// without Postgres. They honor the same contracts as the postgres package.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	"github.com/oksasatya/event-portal/internal/domain/repository"
)

type AccountRepository struct {
	mu   sync.RWMutex
	rows map[string]entity.Account
	now  func() time.Time
}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{rows: map[string]entity.Account{}, now: time.Now}
}

func public(a entity.Account) *entity.Account {
	a.Password = ""
	return &a
}

func (r *AccountRepository) Create(_ context.Context, a *entity.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Username == a.Username {
			return repository.ErrDuplicateUsername
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = r.now()
	a.UpdatedAt = a.CreatedAt
	r.rows[a.ID] = *a
	return nil
}

func (r *AccountRepository) GetByID(_ context.Context, id string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return public(a), nil
}

func (r *AccountRepository) GetCredentials(_ context.Context, username string) (*entity.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.rows {
		if a.Username == username {
			cp := a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AccountRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.rows {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *AccountRepository) Update(_ context.Context, id string, p repository.AccountPatch) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if p.Empty() {
		return public(a), nil
	}
	if p.Username != nil {
		for _, row := range r.rows {
			if row.ID != id && row.Username == *p.Username {
				return nil, repository.ErrDuplicateUsername
			}
		}
		a.Username = *p.Username
	}
	if p.FullName != nil {
		a.FullName = *p.FullName
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Batch != nil {
		a.Batch = *p.Batch
	}
	if p.IsAdmin != nil {
		a.IsAdmin = *p.IsAdmin
	}
	if p.ProfilePic != nil {
		a.ProfilePic = *p.ProfilePic
	}
	if p.PasswordHash != nil {
		a.Password = *p.PasswordHash
	}
	a.UpdatedAt = r.now()
	r.rows[id] = a
	return public(a), nil
}

func (r *AccountRepository) Delete(_ context.Context, id string) (*entity.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.rows, id)
	return public(a), nil
}

// List orders by creation time, newest first; ties fall back to id for a stable page order.
func (r *AccountRepository) List(_ context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(f.Search)
	var match []*entity.Account
	for _, a := range r.rows {
		if !strings.Contains(strings.ToLower(a.Username), needle) {
			continue
		}
		if f.Batch != "" && a.Batch != f.Batch {
			continue
		}
		match = append(match, public(a))
	}
	sort.Slice(match, func(i, j int) bool {
		if match[i].CreatedAt.Equal(match[j].CreatedAt) {
			return match[i].ID > match[j].ID
		}
		return match[i].CreatedAt.After(match[j].CreatedAt)
	})
	return page(match, f.Offset, f.Limit), len(match), nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if limit <= 0 || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
