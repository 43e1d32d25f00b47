package routing

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shenikar/incident_dispatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBest_PicksClosestIdleUnit(t *testing.T) {
	// Подготовка
	a := newCandidate(models.AuthorityAmbulance, 3, 0)
	b := newCandidate(models.AuthorityHospital, 45, 1)
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{b, a}}
	router := newTestRouter(repo, DefaultConfig())

	// Действие
	best, err := router.FindBest(context.Background(), newIncident(models.CategoryMedical, models.SeverityHigh))

	// Проверки
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, a.ID, best.Candidate.ID)
	assert.Equal(t, 0.94, best.Score.Total)
	require.NotNil(t, best.Score.ETAMinutes)
	assert.Equal(t, 9, *best.Score.ETAMinutes)
}

func TestFindBest_CriticalBoostedTotal(t *testing.T) {
	a := newCandidate(models.AuthorityAmbulance, 3, 0)
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{a}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryMedical, models.SeverityCritical))

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, 1.128, best.Score.Total)
}

func TestFindBest_SoleCandidateTooFar(t *testing.T) {
	far := newCandidate(models.AuthorityFire, 60, 0)
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{far}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryFire, models.SeverityCritical))

	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestFindBest_NoEligibleCandidates(t *testing.T) {
	pending := newCandidate(models.AuthorityPolice, 1, 0)
	pending.ApprovalStatus = "pending"
	inactive := newCandidate(models.AuthorityPolice, 1, 0)
	inactive.AccountActive = false
	wrongType := newCandidate(models.AuthorityFire, 1, 0)
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{pending, inactive, wrongType}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryCrime, models.SeverityHigh))

	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestFindBest_PrefersIncidentRegion(t *testing.T) {
	local := newCandidate(models.AuthorityPolice, 20, 0)
	neighbour := newCandidate(models.AuthorityPolice, 2, 0)
	neighbour.Region = "Central"
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{neighbour, local}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryCrime, models.SeverityHigh))

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, local.ID, best.Candidate.ID)
	assert.Equal(t, []string{"Greater Accra"}, repo.regions)
}

func TestFindBest_FallsBackToOtherRegions(t *testing.T) {
	neighbour := newCandidate(models.AuthorityPolice, 2, 0)
	neighbour.Region = "Central"
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{neighbour}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryCrime, models.SeverityHigh))

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, neighbour.ID, best.Candidate.ID)
	assert.Equal(t, []string{"Greater Accra", ""}, repo.regions)
}

func TestFindBest_TieBreakByDistance(t *testing.T) {
	// обе станции в полосе до 5 км, итоговые оценки равны
	farther := newCandidate(models.AuthorityFire, 4, 0)
	closer := newCandidate(models.AuthorityFire, 2, 0)
	farther.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	closer.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{farther, closer}}
	router := newTestRouter(repo, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryFire, models.SeverityHigh))

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, closer.ID, best.Candidate.ID)
}

func TestFindBest_TieBreakByIDIsStable(t *testing.T) {
	first := newCandidate(models.AuthorityFire, 3, 0)
	second := newCandidate(models.AuthorityFire, 3, 0)
	first.ID = uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	second.ID = uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	second.Station = first.Station

	incident := newIncident(models.CategoryFire, models.SeverityHigh)
	for _, order := range [][]*models.AuthorityCandidate{{first, second}, {second, first}} {
		router := newTestRouter(&fakeCandidates{candidates: order}, DefaultConfig())
		for i := 0; i < 3; i++ {
			best, err := router.FindBest(context.Background(), incident)
			require.NoError(t, err)
			require.NotNil(t, best)
			assert.Equal(t, first.ID, best.Candidate.ID)
		}
	}
}

func TestFindBest_KnownDistanceBeatsUnknownOnTie(t *testing.T) {
	unknown := newCandidate(models.AuthorityPolice, 0, 0)
	unknown.Station = nil
	unknown.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	// 25 км дают ту же оценку расстояния 0.5, что и неизвестная позиция
	known := newCandidate(models.AuthorityPolice, 25, 0)
	known.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	router := newTestRouter(&fakeCandidates{candidates: []*models.AuthorityCandidate{unknown, known}}, DefaultConfig())

	best, err := router.FindBest(context.Background(), newIncident(models.CategoryCrime, models.SeverityHigh))

	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, known.ID, best.Candidate.ID)
}

func TestFindBest_InvalidIncident(t *testing.T) {
	router := newTestRouter(&fakeCandidates{}, DefaultConfig())

	incident := newIncident("flood", models.SeverityHigh)
	_, err := router.FindBest(context.Background(), incident)
	assert.True(t, errors.Is(err, models.ErrInvalidIncident))

	_, err = router.FindBest(context.Background(), nil)
	assert.True(t, errors.Is(err, models.ErrInvalidIncident))
}

func TestFindBest_RepositoryError(t *testing.T) {
	repo := &fakeCandidates{err: errors.New("connection reset")}
	router := newTestRouter(repo, DefaultConfig())

	_, err := router.FindBest(context.Background(), newIncident(models.CategoryFire, models.SeverityHigh))

	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
}

func TestAssignMultiple_FewerCandidatesThanRequested(t *testing.T) {
	only := newCandidate(models.AuthorityFire, 5, 0)
	router := newTestRouter(&fakeCandidates{candidates: []*models.AuthorityCandidate{only}}, DefaultConfig())

	matches, err := router.AssignMultiple(context.Background(), newIncident(models.CategoryFire, models.SeverityCritical), 2)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, only.ID, matches[0].Candidate.ID)
}

func TestAssignMultiple_DistinctUnitsInScoreOrder(t *testing.T) {
	near := newCandidate(models.AuthorityFire, 2, 0)
	mid := newCandidate(models.AuthorityPolice, 12, 0)
	busy := newCandidate(models.AuthorityAmbulance, 2, 4)
	far := newCandidate(models.AuthorityFire, 70, 0)
	repo := &fakeCandidates{candidates: []*models.AuthorityCandidate{busy, far, mid, near}}
	router := newTestRouter(repo, DefaultConfig())

	matches, err := router.AssignMultiple(context.Background(), newIncident(models.CategoryDisaster, models.SeverityCritical), 5)

	require.NoError(t, err)
	require.Len(t, matches, 3)

	seen := map[uuid.UUID]bool{}
	for i, m := range matches {
		assert.False(t, seen[m.Candidate.ID], "duplicate candidate %s", m.Candidate.ID)
		seen[m.Candidate.ID] = true
		if i > 0 {
			assert.GreaterOrEqual(t, matches[i-1].Score.Total, m.Score.Total)
		}
	}
	assert.Equal(t, near.ID, matches[0].Candidate.ID)
	assert.False(t, seen[far.ID])
}

func TestAssignMultiple_RegionFallbackAfterExclusion(t *testing.T) {
	local := newCandidate(models.AuthorityPolice, 10, 0)
	neighbour := newCandidate(models.AuthorityPolice, 15, 0)
	neighbour.Region = "Central"
	router := newTestRouter(&fakeCandidates{candidates: []*models.AuthorityCandidate{neighbour, local}}, DefaultConfig())

	matches, err := router.AssignMultiple(context.Background(), newIncident(models.CategoryCrime, models.SeverityCritical), 2)

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, local.ID, matches[0].Candidate.ID)
	assert.Equal(t, neighbour.ID, matches[1].Candidate.ID)
}

func TestAssignMultiple_NonPositiveCount(t *testing.T) {
	router := newTestRouter(&fakeCandidates{candidates: []*models.AuthorityCandidate{newCandidate(models.AuthorityFire, 1, 0)}}, DefaultConfig())

	for _, count := range []int{0, -1, -100} {
		matches, err := router.AssignMultiple(context.Background(), newIncident(models.CategoryFire, models.SeverityHigh), count)

		require.NoError(t, err, "count %d", count)
		assert.NotNil(t, matches, "count %d", count)
		assert.Empty(t, matches, "count %d", count)
	}
}

func TestRank_ViableFirstThenRejected(t *testing.T) {
	far := newCandidate(models.AuthorityFire, 80, 0)
	near := newCandidate(models.AuthorityFire, 3, 0)
	mid := newCandidate(models.AuthorityFire, 18, 0)
	router := newTestRouter(&fakeCandidates{candidates: []*models.AuthorityCandidate{far, mid, near}}, DefaultConfig())

	ranked, err := router.Rank(context.Background(), newIncident(models.CategoryFire, models.SeverityHigh))

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, near.ID, ranked[0].Candidate.ID)
	assert.Equal(t, mid.ID, ranked[1].Candidate.ID)
	assert.Equal(t, far.ID, ranked[2].Candidate.ID)
	assert.Equal(t, RejectTooFar, ranked[2].Score.RejectedReason)
}
