package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func newAssignment(status models.AssignmentStatus) *models.Assignment {
	return &models.Assignment{
		ID:          uuid.New(),
		IncidentID:  uuid.New(),
		AuthorityID: uuid.New(),
		Status:      status,
		AssignedAt:  t0,
		UpdatedAt:   t0,
	}
}

func TestCanTransition_Graph(t *testing.T) {
	allowed := map[models.AssignmentStatus][]models.AssignmentStatus{
		models.AssignmentAssigned:   {models.AssignmentEnRoute, models.AssignmentCancelled},
		models.AssignmentEnRoute:    {models.AssignmentArrived, models.AssignmentCancelled},
		models.AssignmentArrived:    {models.AssignmentInProgress, models.AssignmentResolved, models.AssignmentCancelled},
		models.AssignmentInProgress: {models.AssignmentResolved, models.AssignmentCancelled},
		models.AssignmentResolved:   nil,
		models.AssignmentCancelled:  nil,
	}

	for _, from := range models.AssignmentStatuses {
		for _, to := range models.AssignmentStatuses {
			expected := false
			for _, a := range allowed[from] {
				if a == to {
					expected = true
				}
			}
			assert.Equal(t, expected, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestApply_WalkToResolution(t *testing.T) {
	a := newAssignment(models.AssignmentAssigned)

	steps := []models.AssignmentStatus{
		models.AssignmentEnRoute,
		models.AssignmentArrived,
		models.AssignmentInProgress,
		models.AssignmentResolved,
	}
	for i, to := range steps {
		at := t0.Add(time.Duration(i+1) * time.Minute)
		out, err := Apply(a, to, at)
		require.NoError(t, err)
		assert.True(t, out.Changed)
		assert.Equal(t, to, a.Status)
		assert.Equal(t, at, a.UpdatedAt)
	}

	require.NotNil(t, a.ArrivedAt)
	assert.Equal(t, t0.Add(2*time.Minute), *a.ArrivedAt)
	require.NotNil(t, a.ResolvedAt)
	assert.Equal(t, t0.Add(4*time.Minute), *a.ResolvedAt)
}

func TestApply_FirstResolutionOnlyOnce(t *testing.T) {
	a := newAssignment(models.AssignmentInProgress)

	out, err := Apply(a, models.AssignmentResolved, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, out.FirstResolution)
	resolvedAt := *a.ResolvedAt

	out, err = Apply(a, models.AssignmentResolved, t0.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, out.Changed)
	assert.False(t, out.FirstResolution)
	assert.Equal(t, resolvedAt, *a.ResolvedAt)
}

func TestApply_ArrivedStampIsIdempotent(t *testing.T) {
	a := newAssignment(models.AssignmentEnRoute)

	_, err := Apply(a, models.AssignmentArrived, t0.Add(time.Minute))
	require.NoError(t, err)
	_, err = Apply(a, models.AssignmentArrived, t0.Add(5*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, t0.Add(time.Minute), *a.ArrivedAt)
}

func TestApply_InvalidTransitionLeavesAssignmentUntouched(t *testing.T) {
	cases := []struct {
		from models.AssignmentStatus
		to   models.AssignmentStatus
	}{
		{models.AssignmentAssigned, models.AssignmentResolved},
		{models.AssignmentAssigned, models.AssignmentArrived},
		{models.AssignmentResolved, models.AssignmentEnRoute},
		{models.AssignmentCancelled, models.AssignmentAssigned},
		{models.AssignmentInProgress, models.AssignmentArrived},
	}
	for _, tc := range cases {
		a := newAssignment(tc.from)
		before := *a

		out, err := Apply(a, tc.to, t0.Add(time.Hour))

		require.Error(t, err)
		assert.True(t, errors.Is(err, models.ErrInvalidTransition))
		assert.False(t, out.Changed)
		assert.Equal(t, before, *a, "%s -> %s", tc.from, tc.to)
	}
}

func TestCreditResolvedReport_CapsAtOne(t *testing.T) {
	r := &models.Reporter{ID: uuid.New(), ReputationScore: decimal.RequireFromString("0.50")}

	CreditResolvedReport(r)
	assert.Equal(t, 1, r.VerifiedReports)
	assert.True(t, r.ReputationScore.Equal(decimal.RequireFromString("0.55")))

	r.ReputationScore = decimal.RequireFromString("0.98")
	CreditResolvedReport(r)
	assert.Equal(t, 2, r.VerifiedReports)
	assert.True(t, r.ReputationScore.Equal(decimal.NewFromInt(1)))

	CreditResolvedReport(r)
	assert.True(t, r.ReputationScore.Equal(decimal.NewFromInt(1)))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "Assignment status changed from en_route to arrived by Engine 7",
		StatusChangeMessage(models.AssignmentEnRoute, models.AssignmentArrived, "Engine 7"))
	assert.Equal(t, "Note added: smoke cleared", NoteMessage("smoke cleared"))
}
