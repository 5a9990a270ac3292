package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"ecovoiceapi/pkg/config"
	"ecovoiceapi/pkg/schemas"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func seed(t *testing.T, points int, userPoints int) (*MemoryStore, *schemas.Report, *schemas.User) {
	t.Helper()
	s := NewMemoryStore()
	user := &schemas.User{Name: "Ada", TotalPoints: userPoints, Achievements: []string{"Cleaned up: earlier"}}
	s.PutUser(user)
	report := &schemas.Report{Type: "Plastic", Description: "bottles", Points: points, Status: config.STATUS_UNATTENDED}
	require.NoError(t, s.InsertReport(context.Background(), report))
	return s, report, user
}

func TestClaimCreditsUser(t *testing.T) {
	s, report, user := seed(t, 10, 20)
	ctx := context.Background()

	res, err := s.ClaimReport(ctx, report.Id, user.Id, time.Now())
	require.NoError(t, err)
	require.False(t, res.AlreadyClaimed)
	require.Equal(t, "Cleaned up: bottles", res.Achievement)

	stored, err := s.GetReport(ctx, report.Id)
	require.NoError(t, err)
	require.Equal(t, config.STATUS_SOLVED, stored.Status)
	require.Equal(t, user.Id, *stored.CleanedBy)
	require.NotNil(t, stored.SolvedAt)

	credited, err := s.GetUser(ctx, user.Id)
	require.NoError(t, err)
	require.Equal(t, 30, credited.TotalPoints)
	require.Len(t, credited.Achievements, 2)
}

func TestClaimRetryDoesNotDoubleCredit(t *testing.T) {
	s, report, user := seed(t, 10, 20)
	ctx := context.Background()

	_, err := s.ClaimReport(ctx, report.Id, user.Id, time.Now())
	require.NoError(t, err)

	res, err := s.ClaimReport(ctx, report.Id, user.Id, time.Now())
	require.NoError(t, err)
	require.True(t, res.AlreadyClaimed)
	require.Equal(t, 30, res.User.TotalPoints)

	credited, _ := s.GetUser(ctx, user.Id)
	require.Equal(t, 30, credited.TotalPoints)
	require.Len(t, credited.Achievements, 2)
}

func TestClaimByOtherUserConflicts(t *testing.T) {
	s, report, user := seed(t, 10, 20)
	other := &schemas.User{Name: "Grace"}
	s.PutUser(other)
	ctx := context.Background()

	_, err := s.ClaimReport(ctx, report.Id, user.Id, time.Now())
	require.NoError(t, err)

	_, err = s.ClaimReport(ctx, report.Id, other.Id, time.Now())
	require.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestClaimMissingUserWritesNothing(t *testing.T) {
	s, report, _ := seed(t, 10, 20)
	ctx := context.Background()

	_, err := s.ClaimReport(ctx, report.Id, bson.NewObjectID(), time.Now())
	require.ErrorIs(t, err, ErrUserNotFound)

	stored, _ := s.GetReport(ctx, report.Id)
	require.Equal(t, config.STATUS_UNATTENDED, stored.Status)
	require.Nil(t, stored.CleanedBy)
}

func TestClaimMissingReport(t *testing.T) {
	s, _, user := seed(t, 10, 20)
	_, err := s.ClaimReport(context.Background(), bson.NewObjectID(), user.Id, time.Now())
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestConcurrentClaimsExactlyOneWins(t *testing.T) {
	s, report, _ := seed(t, 10, 0)
	ctx := context.Background()

	claimers := make([]*schemas.User, 8)
	for i := range claimers {
		claimers[i] = &schemas.User{Name: "claimer"}
		s.PutUser(claimers[i])
	}

	var wg sync.WaitGroup
	errs := make([]error, len(claimers))
	for i, u := range claimers {
		i, u := i, u
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.ClaimReport(ctx, report.Id, u.Id, time.Now())
		}()
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, ErrAlreadyClaimed)
		}
	}
	require.Equal(t, 1, wins)

	credited := 0
	for _, u := range claimers {
		stored, _ := s.GetUser(ctx, u.Id)
		if stored.TotalPoints > 0 {
			credited++
			require.Equal(t, 10, stored.TotalPoints)
			require.Len(t, stored.Achievements, 1)
		}
	}
	require.Equal(t, 1, credited)
}

func TestVoteFloorsAtZero(t *testing.T) {
	s, report, _ := seed(t, 10, 0)
	ctx := context.Background()

	votes, err := s.Vote(ctx, report.Id, false)
	require.NoError(t, err)
	require.Equal(t, 0, votes)

	for n := 0; n < 5; n++ {
		_, err = s.Vote(ctx, report.Id, true)
		require.NoError(t, err)
	}

	votes, err = s.Vote(ctx, report.Id, false)
	require.NoError(t, err)
	require.Equal(t, 4, votes)

	votes, err = s.Vote(ctx, report.Id, true)
	require.NoError(t, err)
	require.Equal(t, 5, votes)

	votes, err = s.Vote(ctx, report.Id, true)
	require.NoError(t, err)
	require.Equal(t, 6, votes)

	_, err = s.Vote(ctx, bson.NewObjectID(), true)
	require.ErrorIs(t, err, ErrReportNotFound)
}

func TestConcurrentVotesAreNotLost(t *testing.T) {
	s, report, _ := seed(t, 10, 0)
	ctx := context.Background()

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Vote(ctx, report.Id, true)
		}()
	}
	wg.Wait()

	stored, _ := s.GetReport(ctx, report.Id)
	require.Equal(t, 50, stored.Votes)
}

func TestListReportsFilter(t *testing.T) {
	s, report, user := seed(t, 10, 0)
	ctx := context.Background()
	require.NoError(t, s.InsertReport(ctx, &schemas.Report{Description: "other", Status: config.STATUS_UNATTENDED}))

	_, err := s.ClaimReport(ctx, report.Id, user.Id, time.Now())
	require.NoError(t, err)

	all, err := s.ListReports(ctx, ReportFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)

	solved, err := s.ListReports(ctx, ReportFilter{Status: config.STATUS_SOLVED, CleanedBy: &user.Id})
	require.NoError(t, err)
	require.Len(t, solved, 1)
	require.Equal(t, report.Id, solved[0].Id)

	stranger := bson.NewObjectID()
	none, err := s.ListReports(ctx, ReportFilter{CleanedBy: &stranger})
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestFindOrCreateGoogleUser(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	user, created, err := s.FindOrCreateGoogleUser(ctx, &schemas.User{GoogleId: "g-1", Name: "Ada", TotalPoints: 99})
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, 0, user.TotalPoints)
	require.Empty(t, user.Achievements)
	require.False(t, user.Id.IsZero())

	again, created, err := s.FindOrCreateGoogleUser(ctx, &schemas.User{GoogleId: "g-1", Name: "Changed"})
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, user.Id, again.Id)
	require.Equal(t, "Ada", again.Name)
}
