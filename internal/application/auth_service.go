package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/internal/domain/entity"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

// Messages returned by the authorization gate.
const (
	MsgNoToken      = "Unauthorized - No Token Provided"
	MsgInvalidToken = "Unauthorized - Invalid Token"
	MsgNotPrivilege = "Unauthorized to perform this operation"
)

// AuthService verifies credentials, issues session tokens and resolves the
// account behind a token.
type AuthService struct {
	Repo     repo.AccountRepository
	Sessions *helpers.SessionManager
	Logger   *logrus.Logger
}

func NewAuthService(r repo.AccountRepository, sessions *helpers.SessionManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Sessions: sessions, Logger: logger}
}

// Login checks username/password and issues a session token for the account.
// Unknown usernames and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (entity.AccountView, helpers.SessionToken, error) {
	u, err := s.Repo.GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			loginFailed.Add(1)
			return entity.AccountView{}, helpers.SessionToken{}, ErrInvalidCredentials
		}
		return entity.AccountView{}, helpers.SessionToken{}, s.dependency("load credentials failed", err, username)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		loginFailed.Add(1)
		return entity.AccountView{}, helpers.SessionToken{}, ErrInvalidCredentials
	}
	tok, err := s.IssueToken(u.ID)
	if err != nil {
		return entity.AccountView{}, helpers.SessionToken{}, err
	}
	loginSucceeded.Add(1)
	return u.View(), tok, nil
}

// IssueToken signs a fresh session token for accountID.
func (s *AuthService) IssueToken(accountID string) (helpers.SessionToken, error) {
	tok, err := s.Sessions.Issue(accountID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", accountID).Error("issue session token failed")
		}
		return helpers.SessionToken{}, Dependency("internal server error", err)
	}
	tokensIssued.Add(1)
	return tok, nil
}

// Resolve loads the account a token refers to, without its secret.
func (s *AuthService) Resolve(ctx context.Context, id string) (*entity.Account, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, s.dependency("resolve account failed", err, id)
	}
	u.Password = ""
	return u, nil
}

// Authenticate verifies token and resolves its subject.
// An unverifiable token is an authentication failure; a vanished subject is not found.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entity.Account, error) {
	if token == "" {
		gateRejected.Add(1)
		return nil, Authentication(MsgNoToken)
	}
	uid, err := s.Sessions.Verify(token)
	if err != nil {
		gateRejected.Add(1)
		return nil, Authentication(MsgInvalidToken)
	}
	u, err := s.Resolve(ctx, uid)
	if err != nil {
		gateRejected.Add(1)
		return nil, err
	}
	return u, nil
}

// Authorize is Authenticate plus the elevated-role requirement.
func (s *AuthService) Authorize(ctx context.Context, token string) (*entity.Account, error) {
	u, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin {
		gateRejected.Add(1)
		return nil, Forbidden(MsgNotPrivilege)
	}
	return u, nil
}

func (s *AuthService) dependency(msg string, err error, subject string) error {
	if s.Logger != nil {
		s.Logger.WithError(err).WithField("subject", subject).Error(msg)
	}
	return Dependency("internal server error", err)
}
