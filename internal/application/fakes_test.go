package application

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

var errStoreDown = errors.New("connection refused")

// memAccounts is an in-memory AccountRepository.
type memAccounts struct {
	mu      sync.Mutex
	rows    map[string]*entity.Account
	clock   time.Time
	fail    error
	updates int
}

func newMemAccounts() *memAccounts {
	return &memAccounts{rows: map[string]*entity.Account{}, clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memAccounts) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memAccounts) public(a *entity.Account) *entity.Account {
	cp := *a
	cp.Password = ""
	return &cp
}

// seed inserts an account with a real bcrypt hash of password.
func (m *memAccounts) seed(username, password string, admin bool) *entity.Account {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		panic(err)
	}
	a := &entity.Account{Username: username, Password: hash, Email: username + "@example.com", IsAdmin: admin}
	if err := m.Create(context.Background(), a); err != nil {
		panic(err)
	}
	return m.public(a)
}

func (m *memAccounts) hash(id string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; ok {
		return a.Password
	}
	return ""
}

func (m *memAccounts) Create(_ context.Context, a *entity.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, r := range m.rows {
		if r.Username == a.Username {
			return repo.ErrDuplicateUsername
		}
	}
	a.ID = uuid.NewString()
	a.CreatedAt = m.tick()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.rows[a.ID] = &cp
	return nil
}

func (m *memAccounts) GetByID(_ context.Context, id string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return m.public(a), nil
}

func (m *memAccounts) GetCredentials(_ context.Context, username string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, a := range m.rows {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memAccounts) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return false, m.fail
	}
	for _, a := range m.rows {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccounts) Update(_ context.Context, id string, p repo.AccountPatch) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Empty() {
		return m.public(a), nil
	}
	if p.Username != nil {
		for _, r := range m.rows {
			if r.ID != id && r.Username == *p.Username {
				return nil, repo.ErrDuplicateUsername
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
	a.UpdatedAt = m.tick()
	m.updates++
	return m.public(a), nil
}

func (m *memAccounts) Delete(_ context.Context, id string) (*entity.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	a, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(m.rows, id)
	return m.public(a), nil
}

func (m *memAccounts) List(_ context.Context, f repo.AccountFilter) ([]*entity.Account, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, 0, m.fail
	}
	var match []*entity.Account
	for _, a := range m.rows {
		if !strings.Contains(strings.ToLower(a.Username), strings.ToLower(f.Search)) {
			continue
		}
		if f.Batch != "" && a.Batch != f.Batch {
			continue
		}
		match = append(match, m.public(a))
	}
	sort.Slice(match, func(i, j int) bool { return match[i].CreatedAt.After(match[j].CreatedAt) })
	total := len(match)
	if f.Offset >= total {
		return []*entity.Account{}, total, nil
	}
	end := f.Offset + f.Limit
	if end > total {
		end = total
	}
	return match[f.Offset:end], total, nil
}

// memEvents is an in-memory EventRepository.
type memEvents struct {
	mu       sync.Mutex
	rows     map[string]*entity.Event
	upcoming int
}

func newMemEvents() *memEvents { return &memEvents{rows: map[string]*entity.Event{}} }

func (m *memEvents) Create(_ context.Context, e *entity.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = uuid.NewString()
	cp := *e
	m.rows[e.ID] = &cp
	return nil
}

func (m *memEvents) Update(_ context.Context, id string, p repo.EventPatch) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Layout != nil {
		e.Layout = *p.Layout
	}
	cp := *e
	return &cp, nil
}

func (m *memEvents) Delete(_ context.Context, id string) (*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.rows[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	delete(m.rows, id)
	return e, nil
}

func (m *memEvents) sorted() []*entity.Event {
	out := make([]*entity.Event, 0, len(m.rows))
	for _, e := range m.rows {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *memEvents) Upcoming(_ context.Context, now time.Time) ([]*entity.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upcoming++
	out := []*entity.Event{}
	for _, e := range m.sorted() {
		if e.Date.After(now) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEvents) List(_ context.Context, offset, limit int) ([]*entity.Event, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := m.sorted()
	if offset >= len(all) {
		return []*entity.Event{}, len(all), nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], len(all), nil
}

// memCache implements the subset of redis.Cmdable the event cache uses.
type memCache struct {
	redis.Cmdable
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache { return &memCache{data: map[string]string{}} }

func (c *memCache) Get(_ context.Context, key string) *redis.StringCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (c *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		c.data[key] = string(v)
	case string:
		c.data[key] = v
	}
	return redis.NewStatusResult("OK", nil)
}

func (c *memCache) Del(_ context.Context, keys ...string) *redis.IntCmd {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.data[k]; ok {
			delete(c.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

// recordingPublisher captures published jobs.
type recordingPublisher struct {
	mu   sync.Mutex
	jobs []any
}

func (p *recordingPublisher) PublishJSON(_ context.Context, body any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, body)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

// seedFast inserts an account without hashing, for tests that never log in.
func (m *memAccounts) seedFast(username, batch string) *entity.Account {
	a := &entity.Account{Username: username, Password: "x", Email: username + "@example.com", Batch: batch}
	if err := m.Create(context.Background(), a); err != nil {
		panic(err)
	}
	return m.public(a)
}
