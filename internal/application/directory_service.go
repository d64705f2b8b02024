package application

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/helpers"
	"github.com/oksasatya/event-portal/pkg/validation"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
	// AllBatches disables the cohort filter.
	AllBatches = "all"
)

// DirectoryService is the privileged view over the account directory.
type DirectoryService struct {
	Repo     repo.AccountRepository
	Indexer  *AccountIndexer
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewDirectoryService(r repo.AccountRepository, indexer *AccountIndexer, notifier *Notifier, logger *logrus.Logger) *DirectoryService {
	return &DirectoryService{Repo: r, Indexer: indexer, Notifier: notifier, Logger: logger}
}

type CreateAccountInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Batch    string
}

// Create registers a new, non-privileged account. There is no public sign-up;
// callers reach this only through the privileged gate.
func (s *DirectoryService) Create(ctx context.Context, in CreateAccountInput) (entity.AccountView, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Password == "" || in.Email == "" {
		return entity.AccountView{}, Validation("All fields are required")
	}
	if len(in.Password) < validation.MinPasswordLength {
		return entity.AccountView{}, Validation("Password must be at least 6 characters")
	}
	exists, err := s.Repo.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return entity.AccountView{}, s.dependency("check username failed", err, in.Username)
	}
	if exists {
		return entity.AccountView{}, ErrUsernameTaken
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return entity.AccountView{}, s.dependency("hash password failed", err, in.Username)
	}
	a := &entity.Account{
		Username: in.Username,
		Password: hash,
		Email:    in.Email,
		FullName: in.FullName,
		Batch:    in.Batch,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return entity.AccountView{}, ErrUsernameTaken
		}
		return entity.AccountView{}, s.dependency("create account failed", err, in.Username)
	}
	accountsCreated.Add(1)

	view := a.View()
	s.Indexer.IndexAccount(ctx, view)
	s.Notifier.AccountCreated(ctx, a)
	return view, nil
}

type ListQuery struct {
	Search string
	Batch  string
	Page   int
	Limit  int
}

type AccountPage struct {
	Users      []entity.AccountView `json:"users"`
	TotalPages int                  `json:"totalPages"`
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}

// Normalize applies defaults: page 1, limit 8 (capped at 100), "all" batches.
// Page is clamped from above so the offset cannot overflow.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageSize
	}
	if q.Limit > MaxPageSize {
		q.Limit = MaxPageSize
	}
	if q.Page > math.MaxInt/q.Limit {
		q.Page = math.MaxInt / q.Limit
	}
	if strings.EqualFold(q.Batch, AllBatches) {
		q.Batch = ""
	}
	return q
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// List returns one page of accounts whose username contains Search, newest first.
func (s *DirectoryService) List(ctx context.Context, q ListQuery) (AccountPage, error) {
	q = q.Normalize()
	accounts, total, err := s.Repo.List(ctx, repo.AccountFilter{
		Search: q.Search,
		Batch:  q.Batch,
		Offset: (q.Page - 1) * q.Limit,
		Limit:  q.Limit,
	})
	if err != nil {
		return AccountPage{}, s.dependency("list accounts failed", err, q.Search)
	}
	return AccountPage{
		Users:      entity.Views(accounts),
		TotalPages: TotalPages(total, q.Limit),
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
	}, nil
}

func (s *DirectoryService) Get(ctx context.Context, id string) (entity.AccountView, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.AccountView{}, ErrUserNotFound
		}
		return entity.AccountView{}, s.dependency("get account failed", err, id)
	}
	return a.View(), nil
}

// Delete removes the account permanently and returns what was removed.
func (s *DirectoryService) Delete(ctx context.Context, id string) (entity.AccountView, error) {
	a, err := s.Repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.AccountView{}, ErrUserNotFound
		}
		return entity.AccountView{}, s.dependency("delete account failed", err, id)
	}
	accountsDeleted.Add(1)
	s.Indexer.DeleteAccount(ctx, a.ID)
	return a.View(), nil
}

func (s *DirectoryService) dependency(msg string, err error, subject string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Error(msg)
	}
	return Dependency("internal server error", err)
}

// EnsureAdmin creates the bootstrap administrator unless username is already taken.
// It reports whether an account was created.
func (s *DirectoryService) EnsureAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if strings.TrimSpace(username) == "" || len(password) < validation.MinPasswordLength {
		return false, Validation("admin username and a password of at least 6 characters are required")
	}
	exists, err := s.Repo.ExistsByUsername(ctx, username)
	if err != nil {
		return false, s.dependency("check admin failed", err, username)
	}
	if exists {
		return false, nil
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return false, s.dependency("hash password failed", err, username)
	}
	a := &entity.Account{Username: username, Password: hash, Email: email, FullName: "Administrator", IsAdmin: true}
	if err := s.Repo.Create(ctx, a); err != nil {
		if errors.Is(err, repo.ErrDuplicateUsername) {
			return false, nil
		}
		return false, s.dependency("create admin failed", err, username)
	}
	accountsCreated.Add(1)
	s.Indexer.IndexAccount(ctx, a.View())
	return true, nil
}
