package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/event-portal/config"
	"github.com/oksasatya/event-portal/internal/domain/entity"
	"github.com/oksasatya/event-portal/pkg/mailer"
	tpl "github.com/oksasatya/event-portal/pkg/mailer/templates"
)

// JobPublisher is satisfied by *helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier enqueues notification mail. Failures are logged and never reach the caller.
type Notifier struct {
	Pub    JobPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: logger}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.Pub != nil && n.Cfg != nil && n.Cfg.MailSendEnabled
}

func (n *Notifier) publish(ctx context.Context, job mailer.EmailJob) {
	if job.To == "" {
		return
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := n.Pub.PublishJSON(c, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("template", job.Template).Warn("failed to publish email job")
	}
}

// AccountCreated sends the welcome mail for a newly created account.
func (n *Notifier) AccountCreated(ctx context.Context, a *entity.Account) {
	if !n.enabled() {
		return
	}
	data := tpl.NewAccountCreatedData(n.Cfg, a.Username, a.Email, tpl.WithName(a.FullName), tpl.WithTime(time.Now()))
	n.publish(ctx, mailer.EmailJob{To: a.Email, Template: tpl.AccountCreated, Data: data})
}

// PasswordChanged tells the owner their secret was replaced.
func (n *Notifier) PasswordChanged(ctx context.Context, a *entity.Account) {
	if !n.enabled() {
		return
	}
	data := tpl.NewPasswordChangedData(n.Cfg, a.Username, a.Email, tpl.WithName(a.FullName), tpl.WithTime(time.Now()))
	n.publish(ctx, mailer.EmailJob{To: a.Email, Template: tpl.PasswordChanged, Data: data})
}
