package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CaseStore {
	t.Helper()

	db, err := OpenMemory()
	require.NoError(t, err)

	return NewCaseStore(db)
}

// steppingClock returns a clock that advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		now := next
		next = next.Add(time.Second)
		return now
	}
}

func TestCaseStoreCreate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.Create(ctx, "  Smith v. Jones ", " A, B ", "Contract dispute over delivery delay.")
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "Smith v. Jones", c.CaseTitle)
	assert.Equal(t, "A, B", c.PartiesInvolved)
	assert.Equal(t, "Contract dispute over delivery delay.", c.CaseDescription)
	assert.Equal(t, StatusSubmitted, c.Status)
	assert.Equal(t, PendingJudgment, c.Judgment)
	assert.False(t, c.SubmittedAt.IsZero())

	stored, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, stored.ID)
	assert.Equal(t, StatusSubmitted, stored.Status)
	assert.True(t, c.SubmittedAt.Equal(stored.SubmittedAt))
}

func TestCaseStoreCreateAssignsDistinctIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "One", "A", "desc")
	require.NoError(t, err)
	second, err := store.Create(ctx, "Two", "B", "desc")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestCaseStoreCreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		parties     string
		description string
		wantField   string
	}{
		{name: "missing title", parties: "A, B", description: "desc", wantField: "caseTitle"},
		{name: "blank title", title: "   ", parties: "A, B", description: "desc", wantField: "caseTitle"},
		{name: "missing parties", title: "T", description: "desc", wantField: "partiesInvolved"},
		{name: "blank parties", title: "T", parties: "\t", description: "desc", wantField: "partiesInvolved"},
		{name: "missing description", title: "T", parties: "A, B", wantField: "caseDescription"},
		{name: "blank description", title: "T", parties: "A, B", description: "  \n", wantField: "caseDescription"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t)
			ctx := context.Background()

			c, err := store.Create(ctx, tt.title, tt.parties, tt.description)
			assert.Nil(t, c)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)

			n, err := store.Count(ctx)
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestCaseStoreListAllOrdering(t *testing.T) {
	store := newTestStore(t)
	store.now = steppingClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	empty, err := store.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	titles := []string{"first", "second", "third", "fourth", "fifth"}
	for _, title := range titles {
		_, err := store.Create(ctx, title, "A, B", "desc")
		require.NoError(t, err)
	}

	cases, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cases, len(titles))

	for i, c := range cases {
		assert.Equal(t, titles[len(titles)-1-i], c.CaseTitle)
		if i > 0 {
			assert.True(t, cases[i-1].SubmittedAt.After(c.SubmittedAt), "cases must be strictly newest first")
		}
	}
}

func TestCaseStoreListAllTiesNewestInsertFirst(t *testing.T) {
	store := newTestStore(t)
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	ctx := context.Background()

	_, err := store.Create(ctx, "older", "A", "desc")
	require.NoError(t, err)
	_, err = store.Create(ctx, "newer", "A", "desc")
	require.NoError(t, err)

	cases, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, "newer", cases[0].CaseTitle)
	assert.Equal(t, "older", cases[1].CaseTitle)
}

func TestCaseStoreGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetByID(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestCaseStoreUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.Create(ctx, "T", "A, B", "desc")
	require.NoError(t, err)

	judgment := "Disclaimer: test"
	status := StatusAnalysisComplete
	updated, err := store.Update(ctx, c.ID, CaseUpdate{Judgment: &judgment, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, judgment, updated.Judgment)
	assert.Equal(t, StatusAnalysisComplete, updated.Status)
	assert.Equal(t, c.CaseTitle, updated.CaseTitle)
	assert.True(t, c.SubmittedAt.Equal(updated.SubmittedAt))
}

func TestCaseStoreUpdateStatusOnlyKeepsJudgment(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.Create(ctx, "T", "A, B", "desc")
	require.NoError(t, err)

	status := StatusError
	updated, err := store.Update(ctx, c.ID, CaseUpdate{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, StatusError, updated.Status)
	assert.Equal(t, PendingJudgment, updated.Judgment)
}

func TestCaseStoreUpdateNotFound(t *testing.T) {
	store := newTestStore(t)

	status := StatusError
	_, err := store.Update(context.Background(), "missing", CaseUpdate{Status: &status})
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestCaseStoreUpdateRejectsUnknownStatus(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.Create(ctx, "T", "A, B", "desc")
	require.NoError(t, err)

	bogus := CaseStatus("Archived")
	_, err = store.Update(ctx, c.ID, CaseUpdate{Status: &bogus})
	assert.Error(t, err)
}

func TestCaseStoreConditionalUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	c, err := store.Create(ctx, "T", "A, B", "desc")
	require.NoError(t, err)

	submitted := StatusSubmitted
	complete := StatusAnalysisComplete
	first := "first judgment"
	_, err = store.Update(ctx, c.ID, CaseUpdate{Judgment: &first, Status: &complete, ExpectStatus: &submitted})
	require.NoError(t, err)

	second := "second judgment"
	_, err = store.Update(ctx, c.ID, CaseUpdate{Judgment: &second, Status: &complete, ExpectStatus: &submitted})
	assert.ErrorIs(t, err, ErrStatusConflict)

	stored, err := store.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, first, stored.Judgment)

	_, err = store.Update(ctx, "missing", CaseUpdate{Status: &complete, ExpectStatus: &submitted})
	assert.ErrorIs(t, err, ErrCaseNotFound)
}
