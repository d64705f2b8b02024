package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-portal/config"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

func newProfiles(t *testing.T) (*ProfileService, *memAccounts, *recordingPublisher) {
	t.Helper()
	accounts := newMemAccounts()
	pub := &recordingPublisher{}
	notifier := NewNotifier(pub, &config.Config{MailSendEnabled: true}, nil)
	auth := NewAuthService(accounts, helpers.NewSessionManager("test-secret", time.Hour), nil)
	return NewProfileService(accounts, auth, nil, notifier, nil), accounts, pub
}

func strp(s string) *string { return &s }
func boolp(b bool) *bool    { return &b }

func TestSelfUpdate_NonAdminOnlyChangesAvatar(t *testing.T) {
	svc, accounts, _ := newProfiles(t)
	bob := accounts.seed("bob", "bobpw1", false)
	hashBefore := accounts.hash(bob.ID)

	view, tok, err := svc.SelfUpdate(context.Background(), bob, SelfProfileInput{
		Username:   strp("mallory"),
		FullName:   strp("Bob B"),
		Email:      strp("evil@x.com"),
		Batch:      strp("2099"),
		IsAdmin:    boolp(true),
		ProfilePic: strp("https://img/x.png"),
	})
	require.NoError(t, err)
	assert.Nil(t, tok)

	assert.Equal(t, "bob", view.Username)
	assert.Equal(t, "bob@example.com", view.Email)
	assert.Empty(t, view.FullName)
	assert.Empty(t, view.Batch)
	assert.False(t, view.IsAdmin)
	assert.Equal(t, "https://img/x.png", view.ProfilePic)
	assert.Equal(t, hashBefore, accounts.hash(bob.ID))
}

func TestSelfUpdate_NonAdminPasswordChange(t *testing.T) {
	svc, accounts, pub := newProfiles(t)
	bob := accounts.seed("bob", "bobpw1", false)
	prior, err := svc.Auth.IssueToken(bob.ID)
	require.NoError(t, err)

	_, tok, err := svc.SelfUpdate(context.Background(), bob, SelfProfileInput{Password: "newpass"})
	require.NoError(t, err)
	require.NotNil(t, tok)
	assert.NotEqual(t, prior.Value, tok.Value)

	assert.True(t, helpers.CompareHashAndPassword(accounts.hash(bob.ID), "newpass"))
	assert.False(t, helpers.CompareHashAndPassword(accounts.hash(bob.ID), "bobpw1"))

	uid, err := svc.Auth.Sessions.Verify(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, uid)
	assert.Equal(t, 1, pub.count())
}

func TestSelfUpdate_ShortPasswordRejected(t *testing.T) {
	svc, accounts, _ := newProfiles(t)
	bob := accounts.seed("bob", "bobpw1", false)

	_, _, err := svc.SelfUpdate(context.Background(), bob, SelfProfileInput{Password: "123"})
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, 0, accounts.updates)
}

func TestSelfUpdate_AdminChangesDescriptiveFields(t *testing.T) {
	svc, accounts, pub := newProfiles(t)
	root := accounts.seed("root", "rootpw", true)
	hashBefore := accounts.hash(root.ID)

	view, tok, err := svc.SelfUpdate(context.Background(), root, SelfProfileInput{
		FullName:   strp("Root User"),
		Batch:      strp("staff"),
		ProfilePic: strp("https://img/r.png"),
	})
	require.NoError(t, err)
	assert.Nil(t, tok)

	assert.Equal(t, "Root User", view.FullName)
	assert.Equal(t, "staff", view.Batch)
	assert.Equal(t, "https://img/r.png", view.ProfilePic)
	assert.True(t, view.IsAdmin)
	assert.Equal(t, hashBefore, accounts.hash(root.ID))
	assert.Equal(t, 0, pub.count())
}

func TestAdminUpdate(t *testing.T) {
	svc, accounts, _ := newProfiles(t)
	bob := accounts.seed("bob", "bobpw1", false)
	hashBefore := accounts.hash(bob.ID)

	view, err := svc.AdminUpdate(context.Background(), bob.ID, AdminProfileInput{
		FullName: strp("Robert"),
		IsAdmin:  boolp(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Robert", view.FullName)
	assert.True(t, view.IsAdmin)
	assert.Equal(t, "bob", view.Username)
	assert.Equal(t, "bob@example.com", view.Email)
	assert.Equal(t, hashBefore, accounts.hash(bob.ID))
}

func TestAdminUpdate_MissingTarget(t *testing.T) {
	svc, accounts, _ := newProfiles(t)

	_, err := svc.AdminUpdate(context.Background(), "3f1c1a52-0000-4000-8000-000000000000", AdminProfileInput{FullName: strp("x")})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Equal(t, 0, accounts.updates)
}

func TestAdminUpdate_UsernameRules(t *testing.T) {
	svc, accounts, _ := newProfiles(t)
	accounts.seedFast("alice", "")
	bob := accounts.seedFast("bob", "")

	_, err := svc.AdminUpdate(context.Background(), bob.ID, AdminProfileInput{Username: strp("alice")})
	assert.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.AdminUpdate(context.Background(), bob.ID, AdminProfileInput{Username: strp("  ")})
	assert.Equal(t, KindValidation, KindOf(err))

	view, err := svc.AdminUpdate(context.Background(), bob.ID, AdminProfileInput{Username: strp(" robert ")})
	require.NoError(t, err)
	assert.Equal(t, "robert", view.Username)
}
