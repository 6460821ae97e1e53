package templates

import (
	"time"
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

func WithPendingSteps(steps []string) Option {
	return func(d *EmailData) { d.PendingSteps = steps }
}

// NewBaseEmailData fills the fields every template uses, then applies opts.
func NewBaseEmailData(appName, supportURL, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Email:          recipient,
		RecipientEmail: recipient,
		AppName:        appName,
		SupportURL:     supportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
