package mailer

import (
	"context"
	"errors"
	"fmt"

	mailtpl "github.com/oksasatya/date-app-backend/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template+Data or Subject+Text/HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "account_deleted"
	Data     map[string]any `json:"data,omitempty"`
}

// ErrPermanent marks jobs that will never succeed and must not be requeued.
var ErrPermanent = errors.New("permanent mail failure")

// Sender delivers one rendered message.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// NewTemplateJob builds a job for one of the embedded templates.
func NewTemplateJob(to, template string, data mailtpl.EmailData) EmailJob {
	return EmailJob{To: to, Template: template, Data: mailtpl.ToMap(data)}
}

// Deliver renders job if it names a template and hands it to s. Render and
// validation problems are wrapped in ErrPermanent.
func Deliver(ctx context.Context, s Sender, job EmailJob) error {
	if job.To == "" {
		return fmt.Errorf("%w: missing recipient", ErrPermanent)
	}
	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
			job.Data["Email"] = job.To
		}
		var err error
		subject, text, html, err = mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrPermanent, err)
		}
	}
	return s.Send(ctx, job.To, subject, text, html)
}
