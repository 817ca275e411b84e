// Package wizard implements the five-step quote request flow as a
// client-side state machine: strictly linear steps, per-step validation
// gates, a persisted draft aggregate, and image upload with compression.
// The UI layer renders whatever state this package reports; all flow
// rules live here.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/hearthside/hearthside-api/internal/validation"
	"github.com/hearthside/hearthside-api/pkg/logger"
	"go.uber.org/zap"
)

// Step is a wizard position, 1 through 5.
type Step int

const (
	StepServiceSelection Step = iota + 1
	StepProjectDetails
	StepImagesDescription
	StepContactSchedule
	StepReviewSubmit
)

// Flow errors the UI branches on.
var (
	ErrSubmitInFlight    = errors.New("a submission is already in progress")
	ErrAlreadyAtReview   = errors.New("already at the review step")
	ErrTermsNotAccepted  = errors.New("terms must be accepted before submitting")
	ErrNotOnReviewStep   = errors.New("submission is only available from the review step")
	ErrResetNotConfirmed = errors.New("start over requires explicit confirmation")
	ErrUploadsInFlight   = errors.New("photos are still uploading")
)

// StepError reports a failed validation gate. The step index does not
// change when a gate fails.
type StepError struct {
	Step     Step
	Messages []string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, strings.Join(e.Messages, "; "))
}

// SubmissionError carries the server's itemized rejection of a submit
// attempt. The draft is preserved so the user can fix and retry.
type SubmissionError struct {
	Messages []string
}

func (e *SubmissionError) Error() string {
	if len(e.Messages) == 0 {
		return "submission failed"
	}
	return strings.Join(e.Messages, "; ")
}

// Wizard is one quote-request session.
type Wizard struct {
	mu sync.Mutex

	step          Step
	draft         Draft
	termsAccepted bool
	submitting    bool

	store     DraftStore
	images    *ImageManager
	submitter Submitter
}

// New creates a wizard session, restoring a previously saved draft when
// one exists. Restored sessions resume at the first incomplete step;
// uploaded images are never restored.
func New(store DraftStore, images *ImageManager, submitter Submitter) (*Wizard, error) {
	w := &Wizard{
		step:      StepServiceSelection,
		store:     store,
		images:    images,
		submitter: submitter,
	}

	saved, err := store.Load()
	if err != nil {
		return nil, err
	}
	if saved != nil {
		w.draft = *saved
		w.step = firstIncompleteStep(saved.Completed)
		logger.Debug("Wizard draft restored",
			zap.Int("resume_step", int(w.step)),
			zap.Time("saved_at", saved.SavedAt),
		)
	}

	return w, nil
}

func firstIncompleteStep(completed StepMask) Step {
	for s := StepServiceSelection; s < StepReviewSubmit; s++ {
		if !completed.Has(s) {
			return s
		}
	}
	return StepReviewSubmit
}

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a snapshot of the current draft.
func (w *Wizard) Draft() Draft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// SetService records the step 1 fields.
func (w *Wizard) SetService(s ServiceSelection) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Service = s
}

// SetDetails records the step 2 fields.
func (w *Wizard) SetDetails(d ProjectDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Details = d
}

// SetDescription records the step 3 description text.
func (w *Wizard) SetDescription(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Description = text
}

// SetContact records the step 4 fields.
func (w *Wizard) SetContact(c ContactDetails) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft.Contact = c
}

// AcceptTerms toggles the step 5 terms checkbox.
func (w *Wizard) AcceptTerms(accepted bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.termsAccepted = accepted
}

// Continue validates the current step and, on pass, persists the draft
// and advances by exactly one. A failed gate returns *StepError and
// leaves the step unchanged.
func (w *Wizard) Continue() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= StepReviewSubmit {
		return ErrAlreadyAtReview
	}

	if msgs := w.gate(w.step); len(msgs) > 0 {
		return &StepError{Step: w.step, Messages: msgs}
	}

	w.draft.Completed.Mark(w.step)
	if err := w.store.Save(&w.draft); err != nil {
		return err
	}

	w.step++
	return nil
}

// Back moves one step backwards without discarding entered data.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepServiceSelection {
		w.step--
	}
}

// SaveDraft persists the current fields without advancing.
func (w *Wizard) SaveDraft() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.store.Save(&w.draft)
}

// StartOver clears the stored draft and resets to step 1. The UI must
// pass the user's explicit confirmation.
func (w *Wizard) StartOver(confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.store.Clear(); err != nil {
		return err
	}

	w.draft = Draft{}
	w.termsAccepted = false
	w.step = StepServiceSelection
	w.images.Reset()
	return nil
}

// gate returns the current step's validation messages; empty means pass.
// Rules mirror the server's, which re-validates everything on submit.
func (w *Wizard) gate(s Step) []string {
	var msgs []string

	switch s {
	case StepServiceSelection:
		if strings.TrimSpace(w.draft.Service.Service) == "" {
			msgs = append(msgs, "Select a service to continue")
		}
	case StepProjectDetails:
		if strings.TrimSpace(w.draft.Details.ProjectSize) == "" {
			msgs = append(msgs, "Select a project size to continue")
		}
		if len(w.draft.Details.PropertyCity) > validation.MaxCityLen {
			msgs = append(msgs, fmt.Sprintf("City must not exceed %d characters", validation.MaxCityLen))
		}
		if len(w.draft.Details.PropertyState) > validation.MaxStateLen {
			msgs = append(msgs, fmt.Sprintf("State must not exceed %d characters", validation.MaxStateLen))
		}
	case StepImagesDescription:
		// Photos and description are both optional; nothing gates here.
		if len(w.draft.Description) > validation.MaxMessageLen {
			msgs = append(msgs, fmt.Sprintf("Description must not exceed %d characters", validation.MaxMessageLen))
		}
	case StepContactSchedule:
		if strings.TrimSpace(w.draft.Contact.Name) == "" {
			msgs = append(msgs, "Name is required")
		} else if len(w.draft.Contact.Name) > validation.MaxNameLen {
			msgs = append(msgs, fmt.Sprintf("Name must not exceed %d characters", validation.MaxNameLen))
		}
		if !validation.ValidateEmail(strings.TrimSpace(w.draft.Contact.Email)) {
			msgs = append(msgs, "Enter a valid email address")
		}
		if !validation.ValidatePhone(w.draft.Contact.Phone) {
			msgs = append(msgs, "Phone number must have 10 digits")
		}
	}

	return msgs
}

// Summary is the read-only step 5 view of everything entered so far.
type Summary struct {
	Service     ServiceSelection
	Details     ProjectDetails
	Description string
	Contact     ContactDetails
	PhotoCount  int
}

// Summary assembles the review screen's data.
func (w *Wizard) Summary() Summary {
	w.mu.Lock()
	defer w.mu.Unlock()

	return Summary{
		Service:     w.draft.Service,
		Details:     w.draft.Details,
		Description: w.draft.Description,
		Contact:     w.draft.Contact,
		PhotoCount:  len(w.images.URLs()),
	}
}

// Submitting reports whether a submission is in flight; the UI disables
// the submit control while true.
func (w *Wizard) Submitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

// Submit posts the assembled quote request. Only one submission can be
// in flight; on success the draft is cleared and the new record's id
// returned so the confirmation view can re-fetch it. On any failure the
// draft is preserved for retry.
func (w *Wizard) Submit(ctx context.Context) (string, error) {
	w.mu.Lock()
	if w.step != StepReviewSubmit {
		w.mu.Unlock()
		return "", ErrNotOnReviewStep
	}
	if !w.termsAccepted {
		w.mu.Unlock()
		return "", ErrTermsNotAccepted
	}
	if w.submitting {
		w.mu.Unlock()
		return "", ErrSubmitInFlight
	}
	if w.images.InFlight() {
		w.mu.Unlock()
		return "", ErrUploadsInFlight
	}

	w.submitting = true
	req := &models.SubmitQuoteRequest{
		CustomerName:     w.draft.Contact.Name,
		Email:            w.draft.Contact.Email,
		Phone:            w.draft.Contact.Phone,
		ServiceRequested: w.draft.Service.Service,
		PropertyCity:     w.draft.Details.PropertyCity,
		PropertyState:    w.draft.Details.PropertyState,
		Message:          w.draft.Description,
		ImageURLs:        w.images.URLs(),
	}
	w.mu.Unlock()

	resp, err := w.submitter.SubmitQuote(ctx, req)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.submitting = false

	if err != nil {
		return "", err
	}
	if !resp.Success {
		return "", &SubmissionError{Messages: resp.Errors}
	}

	// Clearing only happens on confirmed success; a failed clear is
	// logged but does not undo the submission.
	if clearErr := w.store.Clear(); clearErr != nil {
		logger.Warn("Failed to clear draft after submission", zap.Error(clearErr))
	}
	w.draft = Draft{}
	w.termsAccepted = false
	w.images.Reset()

	logger.Info("Quote request submitted", zap.String("quote_id", resp.ID))
	return resp.ID, nil
}
