package wizard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// draftVersion is bumped whenever the draft layout changes; a stored
// draft with a different version is discarded rather than migrated.
const draftVersion = 1

// StepMask is a bitmap of completed steps.
type StepMask uint8

// Mark records a step as completed.
func (m *StepMask) Mark(s Step) {
	*m |= 1 << uint(s)
}

// Has reports whether a step has been completed.
func (m StepMask) Has(s Step) bool {
	return m&(1<<uint(s)) != 0
}

// Draft is the single persisted aggregate of an in-progress quote
// wizard session. One versioned object with a step-completion bitmap;
// every save writes the whole thing, so the stored state can never be
// a mix of old and new steps.
//
// Images are deliberately absent: uploads are ephemeral and a restored
// session starts step 3 with an empty queue.
type Draft struct {
	Version   int       `json:"version"`
	Completed StepMask  `json:"completed"`
	SavedAt   time.Time `json:"saved_at"`

	Service     ServiceSelection `json:"service"`
	Details     ProjectDetails   `json:"details"`
	Description string           `json:"description"`
	Contact     ContactDetails   `json:"contact"`
}

// ServiceSelection holds the step 1 fields.
type ServiceSelection struct {
	Service string `json:"service"`
	Urgency string `json:"urgency"`
}

// ProjectDetails holds the step 2 fields.
type ProjectDetails struct {
	ScopeTags     []string `json:"scope_tags"`
	ProjectSize   string   `json:"project_size"`
	PropertyCity  string   `json:"property_city"`
	PropertyState string   `json:"property_state"`
	Timeline      string   `json:"timeline"`
}

// ContactDetails holds the step 4 fields.
type ContactDetails struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	PreferredContact string `json:"preferred_contact"`
	PreferredTime    string `json:"preferred_time"`
}

// DraftStore persists one draft. Load returns (nil, nil) when no draft
// exists or the stored one is from an incompatible version.
type DraftStore interface {
	Load() (*Draft, error)
	Save(d *Draft) error
	Clear() error
}

// FileDraftStore keeps the draft as a JSON file, surviving restarts the
// way browser local storage survives reloads.
type FileDraftStore struct {
	path string
	mu   sync.Mutex
}

// NewFileDraftStore creates a store writing to path.
func NewFileDraftStore(path string) *FileDraftStore {
	return &FileDraftStore{path: path}
}

func (s *FileDraftStore) Load() (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		// A corrupt draft is discarded, not surfaced; the user just
		// starts fresh.
		return nil, nil
	}
	if d.Version != draftVersion {
		return nil, nil
	}

	return &d, nil
}

func (s *FileDraftStore) Save(d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.Version = draftVersion
	d.SavedAt = time.Now()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create draft directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}

	return nil
}

func (s *FileDraftStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear draft: %w", err)
	}
	return nil
}

// MemoryDraftStore keeps the draft in memory. Used in tests and for
// sessions that opt out of persistence.
type MemoryDraftStore struct {
	mu    sync.Mutex
	draft *Draft
}

func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{}
}

func (s *MemoryDraftStore) Load() (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, nil
	}
	copied := *s.draft
	return &copied, nil
}

func (s *MemoryDraftStore) Save(d *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.Version = draftVersion
	d.SavedAt = time.Now()
	copied := *d
	s.draft = &copied
	return nil
}

func (s *MemoryDraftStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = nil
	return nil
}

var (
	_ DraftStore = (*FileDraftStore)(nil)
	_ DraftStore = (*MemoryDraftStore)(nil)
)
