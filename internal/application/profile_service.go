package application

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/helpers"
	"github.com/oksasatya/event-portal/pkg/validation"
)

// ProfileService decides which account fields a caller may change.
// Every mutation is translated into an explicit repository.AccountPatch; nothing
// from the request body reaches the store by name.
type ProfileService struct {
	Repo     repo.AccountRepository
	Auth     *AuthService
	Indexer  *AccountIndexer
	Notifier *Notifier
	Logger   *logrus.Logger
}

func NewProfileService(r repo.AccountRepository, auth *AuthService, indexer *AccountIndexer, notifier *Notifier, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Repo: r, Auth: auth, Indexer: indexer, Notifier: notifier, Logger: logger}
}

// AdminProfileInput is what an administrator may set on another account.
// It has no secret field: administrators never set someone else's password.
type AdminProfileInput struct {
	Username *string
	FullName *string
	Email    *string
	Batch    *string
	IsAdmin  *bool
}

// SelfProfileInput is what a caller submits for their own account.
// Which fields are honored depends on the caller's role.
type SelfProfileInput struct {
	Username   *string
	FullName   *string
	Email      *string
	Batch      *string
	ProfilePic *string
	IsAdmin    *bool
	Password   string
}

// AdminUpdate edits targetID using only the administrative allow-list.
func (s *ProfileService) AdminUpdate(ctx context.Context, targetID string, in AdminProfileInput) (entity.AccountView, error) {
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return entity.AccountView{}, Validation("username cannot be empty")
	}
	patch := repo.AccountPatch{
		Username: trimmed(in.Username),
		FullName: in.FullName,
		Email:    in.Email,
		Batch:    in.Batch,
		IsAdmin:  in.IsAdmin,
	}
	a, err := s.apply(ctx, targetID, patch)
	if err != nil {
		return entity.AccountView{}, err
	}
	return a.View(), nil
}

// SelfUpdate edits the caller's own account. Administrators may change their
// descriptive fields and role; everyone else may only change their avatar.
// A non-empty password is rehashed and a new session token is returned for the
// caller to bind; the token is nil otherwise.
func (s *ProfileService) SelfUpdate(ctx context.Context, caller *entity.Account, in SelfProfileInput) (entity.AccountView, *helpers.SessionToken, error) {
	if caller == nil {
		return entity.AccountView{}, nil, Authentication(MsgNoToken)
	}

	patch := repo.AccountPatch{ProfilePic: in.ProfilePic}
	if caller.IsAdmin {
		if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
			return entity.AccountView{}, nil, Validation("username cannot be empty")
		}
		patch.Username = trimmed(in.Username)
		patch.FullName = in.FullName
		patch.Email = in.Email
		patch.Batch = in.Batch
		patch.IsAdmin = in.IsAdmin
	}

	if in.Password != "" {
		if len(in.Password) < validation.MinPasswordLength {
			return entity.AccountView{}, nil, Validation("Password must be at least 6 characters")
		}
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			return entity.AccountView{}, nil, s.dependency("hash password failed", err, caller.ID)
		}
		patch.PasswordHash = &hash
	}

	a, err := s.apply(ctx, caller.ID, patch)
	if err != nil {
		return entity.AccountView{}, nil, err
	}

	if patch.PasswordHash == nil {
		return a.View(), nil, nil
	}
	s.Notifier.PasswordChanged(ctx, a)
	tok, err := s.Auth.IssueToken(a.ID)
	if err != nil {
		return entity.AccountView{}, nil, err
	}
	return a.View(), &tok, nil
}

func (s *ProfileService) apply(ctx context.Context, id string, patch repo.AccountPatch) (*entity.Account, error) {
	a, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		}
		return nil, s.dependency("update account failed", err, id)
	}
	a.Password = ""
	if !patch.Empty() {
		s.Indexer.IndexAccount(ctx, a.View())
	}
	return a, nil
}

func (s *ProfileService) dependency(msg string, err error, subject string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Error(msg)
	}
	return Dependency("internal server error", err)
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
