package wizard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hearthside/hearthside-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubmitter scripts the API's response to Submit.
type fakeSubmitter struct {
	mu      sync.Mutex
	resp    *models.SubmitQuoteResponse
	err     error
	block   chan struct{}
	calls   int
	lastReq *models.SubmitQuoteRequest
}

func (f *fakeSubmitter) SubmitQuote(ctx context.Context, req *models.SubmitQuoteRequest) (*models.SubmitQuoteResponse, error) {
	f.mu.Lock()
	f.calls++
	f.lastReq = req
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	return f.resp, f.err
}

func newTestWizard(t *testing.T, store DraftStore, submitter Submitter) *Wizard {
	t.Helper()
	images := NewImageManager(&fakeUploader{url: "https://bucket.example/q.jpg"}, nil)
	w, err := New(store, images, submitter)
	require.NoError(t, err)
	return w
}

func completeThroughContact(t *testing.T, w *Wizard) {
	t.Helper()
	w.SetService(ServiceSelection{Service: "Kitchen Remodeling", Urgency: "soon"})
	require.NoError(t, w.Continue())
	w.SetDetails(ProjectDetails{ProjectSize: "large", PropertyCity: "Portland", PropertyState: "OR"})
	require.NoError(t, w.Continue())
	w.SetDescription("Full gut renovation")
	require.NoError(t, w.Continue())
	w.SetContact(ContactDetails{Name: "Jane Doe", Email: "jane@example.com", Phone: "(503) 555-0147"})
	require.NoError(t, w.Continue())
	require.Equal(t, StepReviewSubmit, w.Step())
}

func TestWizard_StartsAtStepOne(t *testing.T) {
	w := newTestWizard(t, NewMemoryDraftStore(), &fakeSubmitter{})
	assert.Equal(t, StepServiceSelection, w.Step())
}

// A failed gate never moves the step index.
func TestWizard_GateBlocksAdvance(t *testing.T) {
	w := newTestWizard(t, NewMemoryDraftStore(), &fakeSubmitter{})

	err := w.Continue()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepServiceSelection, stepErr.Step)
	assert.NotEmpty(t, stepErr.Messages)
	assert.Equal(t, StepServiceSelection, w.Step())

	// Still blocked after unrelated edits
	w.SetDescription("text for a later step")
	require.Error(t, w.Continue())
	assert.Equal(t, StepServiceSelection, w.Step())
}

func TestWizard_ContactGate(t *testing.T) {
	w := newTestWizard(t, NewMemoryDraftStore(), &fakeSubmitter{})
	w.SetService(ServiceSelection{Service: "Decks"})
	require.NoError(t, w.Continue())
	w.SetDetails(ProjectDetails{ProjectSize: "small"})
	require.NoError(t, w.Continue())
	require.NoError(t, w.Continue()) // step 3 has no required fields

	w.SetContact(ContactDetails{Name: "Jane", Email: "bad-email", Phone: "123"})
	err := w.Continue()
	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Contains(t, stepErr.Messages, "Enter a valid email address")
	assert.Contains(t, stepErr.Messages, "Phone number must have 10 digits")
	assert.Equal(t, StepContactSchedule, w.Step())
}

func TestWizard_BackKeepsData(t *testing.T) {
	w := newTestWizard(t, NewMemoryDraftStore(), &fakeSubmitter{})
	w.SetService(ServiceSelection{Service: "Decks"})
	require.NoError(t, w.Continue())

	w.Back()
	assert.Equal(t, StepServiceSelection, w.Step())
	assert.Equal(t, "Decks", w.Draft().Service.Service)

	// Back at step 1 stays at step 1
	w.Back()
	assert.Equal(t, StepServiceSelection, w.Step())
}

func TestWizard_SaveDraftDoesNotAdvance(t *testing.T) {
	store := NewMemoryDraftStore()
	w := newTestWizard(t, store, &fakeSubmitter{})

	w.SetService(ServiceSelection{Service: "Decks"})
	require.NoError(t, w.SaveDraft())
	assert.Equal(t, StepServiceSelection, w.Step())

	saved, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Decks", saved.Service.Service)
}

// Completing steps 1 and 2 and reopening the wizard restores their
// fields and resumes at step 3. Images are never restored.
func TestWizard_DraftRestoredAcrossSessions(t *testing.T) {
	store := NewMemoryDraftStore()

	w := newTestWizard(t, store, &fakeSubmitter{})
	w.SetService(ServiceSelection{Service: "Kitchen Remodeling"})
	require.NoError(t, w.Continue())
	w.SetDetails(ProjectDetails{ProjectSize: "large", PropertyCity: "Portland"})
	require.NoError(t, w.Continue())

	reopened := newTestWizard(t, store, &fakeSubmitter{})
	assert.Equal(t, StepImagesDescription, reopened.Step())
	assert.Equal(t, "Kitchen Remodeling", reopened.Draft().Service.Service)
	assert.Equal(t, "Portland", reopened.Draft().Details.PropertyCity)
	assert.Empty(t, reopened.Summary().PhotoCount)
}

func TestWizard_StartOver(t *testing.T) {
	store := NewMemoryDraftStore()
	w := newTestWizard(t, store, &fakeSubmitter{})
	w.SetService(ServiceSelection{Service: "Decks"})
	require.NoError(t, w.Continue())

	// Without confirmation nothing happens
	assert.ErrorIs(t, w.StartOver(false), ErrResetNotConfirmed)
	assert.Equal(t, StepProjectDetails, w.Step())

	require.NoError(t, w.StartOver(true))
	assert.Equal(t, StepServiceSelection, w.Step())
	assert.Equal(t, Draft{}, w.Draft())

	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
}

func TestWizard_SubmitRequiresReviewStepAndTerms(t *testing.T) {
	w := newTestWizard(t, NewMemoryDraftStore(), &fakeSubmitter{})

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotOnReviewStep)

	completeThroughContact(t, w)

	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrTermsNotAccepted)
}

func TestWizard_Submit(t *testing.T) {
	store := NewMemoryDraftStore()
	submitter := &fakeSubmitter{resp: &models.SubmitQuoteResponse{Success: true, ID: "abc-123"}}
	w := newTestWizard(t, store, submitter)

	completeThroughContact(t, w)
	w.AcceptTerms(true)

	id, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc-123", id)

	// Submitted payload carries the draft's fields
	assert.Equal(t, "Jane Doe", submitter.lastReq.CustomerName)
	assert.Equal(t, "Kitchen Remodeling", submitter.lastReq.ServiceRequested)
	assert.Equal(t, "Full gut renovation", submitter.lastReq.Message)

	// Draft cleared only on success
	saved, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, saved)
	assert.Equal(t, Draft{}, w.Draft())
}

func TestWizard_SubmitFailureKeepsDraft(t *testing.T) {
	store := NewMemoryDraftStore()
	submitter := &fakeSubmitter{resp: &models.SubmitQuoteResponse{
		Success: false,
		Errors:  []string{"Invalid email format"},
	}}
	w := newTestWizard(t, store, submitter)

	completeThroughContact(t, w)
	w.AcceptTerms(true)

	_, err := w.Submit(context.Background())
	var subErr *SubmissionError
	require.ErrorAs(t, err, &subErr)
	assert.Contains(t, subErr.Messages, "Invalid email format")

	// Entered data survives the failed attempt for retry
	saved, loadErr := store.Load()
	require.NoError(t, loadErr)
	require.NotNil(t, saved)
	assert.Equal(t, "Jane Doe", saved.Contact.Name)
	assert.False(t, w.Submitting())
}

func TestWizard_SubmitTransportErrorKeepsDraft(t *testing.T) {
	store := NewMemoryDraftStore()
	submitter := &fakeSubmitter{err: errors.New("connection refused")}
	w := newTestWizard(t, store, submitter)

	completeThroughContact(t, w)
	w.AcceptTerms(true)

	_, err := w.Submit(context.Background())
	assert.Error(t, err)

	saved, loadErr := store.Load()
	require.NoError(t, loadErr)
	assert.NotNil(t, saved)
}

// A second submit while one is in flight is refused rather than queued,
// so duplicate submissions are impossible.
func TestWizard_SubmitGuardsAgainstDoubleSubmit(t *testing.T) {
	block := make(chan struct{})
	submitter := &fakeSubmitter{
		resp:  &models.SubmitQuoteResponse{Success: true, ID: "abc-123"},
		block: block,
	}
	w := newTestWizard(t, NewMemoryDraftStore(), submitter)

	completeThroughContact(t, w)
	w.AcceptTerms(true)

	firstDone := make(chan struct{})
	go func() {
		defer close(firstDone)
		_, _ = w.Submit(context.Background())
	}()

	// Wait for the first submission to be in flight
	assert.Eventually(t, w.Submitting, waitFor, tick)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(block)
	<-firstDone

	submitter.mu.Lock()
	assert.Equal(t, 1, submitter.calls)
	submitter.mu.Unlock()
}
