package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/internal/domain/entity"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/metrics"
)

// Step names one unit of the account deletion cascade.
type Step string

const (
	StepProfile       Step = "profile"
	StepProfileImage  Step = "profile_image"
	StepChatRooms     Step = "chat_rooms"
	StepOwnChatList   Step = "own_chat_list"
	StepPeerChatLists Step = "peer_chat_lists"
	StepSearchIndex   Step = "search_index"
	StepSession       Step = "session"
	StepAuthRecord    Step = "auth_record"
)

// StepResult is the outcome of one step. Affected counts removed items
// where the step can count them.
type StepResult struct {
	Step     Step          `json:"step"`
	Affected int           `json:"affected"`
	Skipped  bool          `json:"skipped,omitempty"`
	Err      error         `json:"-"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// CascadeReport records every step of one DeleteAccount run, in order.
type CascadeReport struct {
	Email     string       `json:"email"`
	UserID    string       `json:"userId"`
	StartedAt time.Time    `json:"startedAt"`
	Steps     []StepResult `json:"steps"`
}

// Failed returns the steps that ended with an error.
func (r *CascadeReport) Failed() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Err != nil {
			out = append(out, s)
		}
	}
	return out
}

// Err is nil when every step succeeded, otherwise a *PartialCascadeFailure.
func (r *CascadeReport) Err() error {
	failed := r.Failed()
	if len(failed) == 0 {
		return nil
	}
	return &PartialCascadeFailure{UserID: r.UserID, Failed: failed}
}

// Orchestrator deletes everything an account owns. Only identity resolution
// can abort a run; every later step is attempted whatever happened before,
// and each is safe to repeat.
type Orchestrator struct {
	Directory *IdentityDirectory
	Profiles  repository.ProfileRepository
	Chats     repository.ChatIndex
	// Optional collaborators; nil skips their step.
	Images   repository.ImageStore
	Index    repository.ProfileIndex
	Sessions repository.SessionStore
	Mail     *Mail
	Logger   *logrus.Logger
	Now      func() time.Time
}

func (o *Orchestrator) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// DeleteAccount runs the cascade for email. The returned error is non-nil
// only when the identity cannot be resolved; step failures are in
// report.Err().
func (o *Orchestrator) DeleteAccount(ctx context.Context, email string) (*CascadeReport, error) {
	email = entity.CanonicalEmail(email)
	uid, err := o.Directory.ResolveForDeletion(ctx, email)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			metrics.RecordCascadeRun("not_found")
		}
		return nil, err
	}

	report := &CascadeReport{Email: email, UserID: uid, StartedAt: o.now()}
	log := loggerOr(o.Logger).WithField("user_id", uid)

	if ts := o.Directory.Tombstones; ts != nil {
		if err := ts.Record(ctx, email, uid, report.StartedAt); err != nil {
			log.WithError(err).Warn("tombstone write failed")
		}
	}

	id := entity.SanitizeID(email)

	o.run(ctx, report, log, StepProfile, true, func(ctx context.Context) (int, error) {
		return 0, o.Profiles.Delete(ctx, uid)
	})
	o.run(ctx, report, log, StepProfileImage, o.Images != nil, func(ctx context.Context) (int, error) {
		return o.Images.DeleteProfileImages(ctx, uid)
	})
	o.run(ctx, report, log, StepChatRooms, true, func(ctx context.Context) (int, error) {
		return o.Chats.DeleteRoomsOf(ctx, id)
	})
	o.run(ctx, report, log, StepOwnChatList, true, func(ctx context.Context) (int, error) {
		return 0, o.Chats.DeleteOwnList(ctx, id)
	})
	o.run(ctx, report, log, StepPeerChatLists, true, func(ctx context.Context) (int, error) {
		return o.Chats.DeleteFromOtherLists(ctx, id, email)
	})
	o.run(ctx, report, log, StepSearchIndex, o.Index != nil, func(ctx context.Context) (int, error) {
		return 0, o.Index.Delete(ctx, uid)
	})
	o.run(ctx, report, log, StepSession, o.Sessions != nil, func(ctx context.Context) (int, error) {
		return 0, o.Sessions.Revoke(ctx, uid)
	})
	o.run(ctx, report, log, StepAuthRecord, true, func(ctx context.Context) (int, error) {
		return 0, o.Directory.Auth.DeleteAccount(ctx, uid)
	})

	failed := report.Failed()
	pending := make([]string, 0, len(failed))
	for _, s := range failed {
		pending = append(pending, string(s.Step))
	}
	if len(failed) == 0 {
		metrics.RecordCascadeRun("complete")
		log.Info("account deleted")
	} else {
		metrics.RecordCascadeRun("partial")
		log.WithField("pending", pending).Warn("account deleted with pending steps")
	}
	o.Mail.AccountDeleted(ctx, email, pending)
	return report, nil
}

func (o *Orchestrator) run(ctx context.Context, report *CascadeReport, log *logrus.Entry, step Step, enabled bool, fn func(context.Context) (int, error)) {
	if !enabled {
		report.Steps = append(report.Steps, StepResult{Step: step, Skipped: true})
		return
	}
	start := time.Now()
	affected, err := fn(ctx)
	res := StepResult{Step: step, Affected: affected, Err: err, Duration: time.Since(start)}
	if err != nil {
		res.Error = err.Error()
	}
	report.Steps = append(report.Steps, res)
	metrics.RecordCascadeStep(string(step), res.Duration, err)

	entry := log.WithFields(logrus.Fields{
		"step":     step,
		"affected": affected,
		"duration": res.Duration,
	})
	if err != nil {
		entry.WithError(err).Warn("cascade step failed")
		return
	}
	entry.Debug("cascade step done")
}
