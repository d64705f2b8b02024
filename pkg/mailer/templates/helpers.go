package templates

import (
	"time"

	"github.com/oksasatya/event-portal/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithName(name string) Option { return func(d *EmailData) { d.Name = name } }

func newData(cfg *config.Config, typ, username, email string, opts ...Option) map[string]any {
	d := EmailData{
		Username: username,
		Email:    email,
		Type:     typ,
	}
	if cfg != nil {
		d.CompanyName = cfg.CompanyName
		d.AppName = cfg.AppName
		d.LoginURL = cfg.LoginURL
	}
	for _, o := range opts {
		o(&d)
	}
	return ToMap(d)
}

// NewAccountCreatedData builds data for the welcome mail sent after an admin creates an account.
func NewAccountCreatedData(cfg *config.Config, username, email string, opts ...Option) map[string]any {
	return newData(cfg, AccountCreated, username, email, opts...)
}

// NewPasswordChangedData builds data for the notice sent after a self-service password change.
func NewPasswordChangedData(cfg *config.Config, username, email string, opts ...Option) map[string]any {
	return newData(cfg, PasswordChanged, username, email, opts...)
}
