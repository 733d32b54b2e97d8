package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	// ErrCaseNotFound is returned when no case has the requested id.
	ErrCaseNotFound = errors.New("case not found")

	// ErrStatusConflict is returned when a conditional update finds the case
	// in a different status than expected.
	ErrStatusConflict = errors.New("case status changed")
)

// ValidationError reports a missing or empty required case field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// CaseUpdate is a partial update. Nil fields are left untouched.
type CaseUpdate struct {
	Judgment *string
	Status   *CaseStatus

	// ExpectStatus, when set, makes the write conditional on the current status.
	ExpectStatus *CaseStatus
}

// CaseStore persists cases with GORM.
type CaseStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCaseStore creates a store backed by db.
func NewCaseStore(db *gorm.DB) *CaseStore {
	return &CaseStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and inserts a new case in the Submitted state.
func (s *CaseStore) Create(ctx context.Context, title, parties, description string) (*Case, error) {
	c := &Case{
		CaseTitle:       strings.TrimSpace(title),
		PartiesInvolved: strings.TrimSpace(parties),
		CaseDescription: description,
		Judgment:        PendingJudgment,
		Status:          StatusSubmitted,
		SubmittedAt:     s.now(),
	}

	if err := validateCase(c); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, fmt.Errorf("failed to insert case: %w", err)
	}

	return c, nil
}

// ListAll returns every case, newest first. Ties fall back to insertion order.
func (s *CaseStore) ListAll(ctx context.Context) ([]Case, error) {
	cases := []Case{}
	err := s.db.WithContext(ctx).
		Order("submitted_at DESC").
		Order("rowid DESC").
		Find(&cases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cases: %w", err)
	}
	return cases, nil
}

// GetByID loads a single case.
func (s *CaseStore) GetByID(ctx context.Context, id string) (*Case, error) {
	var c Case
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", id, err)
	}
	return &c, nil
}

// Update applies the judgment/status pair and returns the stored record.
func (s *CaseStore) Update(ctx context.Context, id string, upd CaseUpdate) (*Case, error) {
	fields := map[string]interface{}{}
	if upd.Judgment != nil {
		fields["judgment"] = *upd.Judgment
	}
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("unknown case status %q", string(*upd.Status))
		}
		fields["status"] = *upd.Status
	}
	if len(fields) == 0 {
		return s.GetByID(ctx, id)
	}

	tx := s.db.WithContext(ctx).Model(&Case{}).Where("id = ?", id)
	if upd.ExpectStatus != nil {
		tx = tx.Where("status = ?", *upd.ExpectStatus)
	}

	result := tx.Updates(fields)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update case %s: %w", id, result.Error)
	}

	if result.RowsAffected == 0 {
		// Either the case is gone or the precondition failed
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		if upd.ExpectStatus != nil {
			return nil, ErrStatusConflict
		}
	}

	return s.GetByID(ctx, id)
}

// Count returns the number of stored cases.
func (s *CaseStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Case{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count cases: %w", err)
	}
	return n, nil
}

func validateCase(c *Case) error {
	if c.CaseTitle == "" {
		return &ValidationError{Field: "caseTitle", Message: "Case title is required."}
	}
	if strings.TrimSpace(c.CaseDescription) == "" {
		return &ValidationError{Field: "caseDescription", Message: "Case description is required."}
	}
	if c.PartiesInvolved == "" {
		return &ValidationError{Field: "partiesInvolved", Message: "Parties involved are required."}
	}
	return nil
}
