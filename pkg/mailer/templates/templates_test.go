package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/event-portal/config"
)

func TestRender_AccountCreated(t *testing.T) {
	cfg := &config.Config{CompanyName: "Acme", LoginURL: "https://acme.test/login"}
	data := NewAccountCreatedData(cfg, "alice", "a@x.com")

	subject, text, html, err := Render(AccountCreated, data)
	require.NoError(t, err)

	assert.Equal(t, "Welcome to Acme", subject)
	assert.Contains(t, text, "Hi alice,")
	assert.Contains(t, text, "https://acme.test/login")
	assert.Contains(t, html, "<strong>Username:</strong> alice")
}

func TestRender_PasswordChangedUsesDisplayName(t *testing.T) {
	at := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	data := NewPasswordChangedData(nil, "bob", "b@x.com", WithName("Bob B"), WithTime(at))

	subject, text, _, err := Render(PasswordChanged, data)
	require.NoError(t, err)

	assert.Equal(t, "Your password was changed", subject)
	assert.Contains(t, text, "Hi Bob B,")
	assert.Contains(t, text, "04 March 2026, 10:30 UTC")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, _, _, err := Render("login_otp", map[string]any{})
	assert.Error(t, err)
}
