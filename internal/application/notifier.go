package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/date-app-backend/pkg/mailer/templates"
)

// Notifier queues outgoing mail. Sending happens in the notify worker.
type Notifier interface {
	Enqueue(ctx context.Context, job mailer.EmailJob) error
}

// Mail builds and queues the account notifications. A nil Notifier turns
// every call into a no-op.
type Mail struct {
	Notifier   Notifier
	AppName    string
	SupportURL string
	Logger     *logrus.Logger
}

func (m *Mail) enqueue(ctx context.Context, to, template string, opts ...mailtpl.Option) {
	if m == nil || m.Notifier == nil {
		return
	}
	data := mailtpl.NewBaseEmailData(m.AppName, m.SupportURL, to, opts...)
	if err := m.Notifier.Enqueue(ctx, mailer.NewTemplateJob(to, template, data)); err != nil && m.Logger != nil {
		m.Logger.WithError(err).WithField("template", template).Warn("enqueue notification failed")
	}
}

// Welcome is sent once, when the default profile is created.
func (m *Mail) Welcome(ctx context.Context, email string) {
	m.enqueue(ctx, email, mailtpl.Welcome, mailtpl.WithTime(time.Now()))
}

// AccountDeleted is sent after a cascade, listing steps still pending.
func (m *Mail) AccountDeleted(ctx context.Context, email string, pending []string) {
	m.enqueue(ctx, email, mailtpl.AccountDeleted, mailtpl.WithTime(time.Now()), mailtpl.WithPendingSteps(pending))
}
