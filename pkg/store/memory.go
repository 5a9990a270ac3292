package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"ecovoiceapi/pkg/config"
	reportutils "ecovoiceapi/pkg/report_utils"
	"ecovoiceapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore keeps both collections in process. Every operation holds one
// mutex, so multi-document operations are atomic. Scans return documents in
// insertion order.
type MemoryStore struct {
	mu          sync.Mutex
	users       map[bson.ObjectID]*schemas.User
	userOrder   []bson.ObjectID
	reports     map[bson.ObjectID]*schemas.Report
	reportOrder []bson.ObjectID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:   make(map[bson.ObjectID]*schemas.User),
		reports: make(map[bson.ObjectID]*schemas.Report),
	}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// PutUser inserts or replaces a user document as is.
func (s *MemoryStore) PutUser(user *schemas.User) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if user.Id.IsZero() {
		user.Id = bson.NewObjectID()
	}
	if _, ok := s.users[user.Id]; !ok {
		s.userOrder = append(s.userOrder, user.Id)
	}
	s.users[user.Id] = cloneUser(user)

}

func (s *MemoryStore) GetUser(ctx context.Context, uid bson.ObjectID) (*schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[uid]
	if !ok {
		return nil, ErrUserNotFound
	}
	return cloneUser(user), nil

}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]*schemas.User, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*schemas.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil

}

func (s *MemoryStore) FindOrCreateGoogleUser(ctx context.Context, newUser *schemas.User) (*schemas.User, bool, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range s.userOrder {
		if s.users[id].GoogleId == newUser.GoogleId {
			return cloneUser(s.users[id]), false, nil
		}
	}

	user := cloneUser(newUser)
	user.Id = bson.NewObjectID()
	user.TotalPoints = 0
	user.Achievements = []string{}
	s.users[user.Id] = user
	s.userOrder = append(s.userOrder, user.Id)
	return cloneUser(user), true, nil

}

func (s *MemoryStore) GetReport(ctx context.Context, id bson.ObjectID) (*schemas.Report, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[id]
	if !ok {
		return nil, ErrReportNotFound
	}
	return cloneReport(report), nil

}

func (s *MemoryStore) ListReports(ctx context.Context, filter ReportFilter) ([]*schemas.Report, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	reports := []*schemas.Report{}
	for _, id := range s.reportOrder {
		report := s.reports[id]
		if filter.Status != "" && report.Status != filter.Status {
			continue
		}
		if filter.CleanedBy != nil && (report.CleanedBy == nil || *report.CleanedBy != *filter.CleanedBy) {
			continue
		}
		reports = append(reports, cloneReport(report))
	}
	return reports, nil

}

func (s *MemoryStore) InsertReport(ctx context.Context, report *schemas.Report) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	if report.Id.IsZero() {
		report.Id = bson.NewObjectID()
	}
	if _, ok := s.reports[report.Id]; !ok {
		s.reportOrder = append(s.reportOrder, report.Id)
	}
	s.reports[report.Id] = cloneReport(report)
	return nil

}

func (s *MemoryStore) ClaimReport(ctx context.Context, reportId bson.ObjectID, uid bson.ObjectID, now time.Time) (*ClaimResult, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report, ok := s.reports[reportId]
	if !ok {
		return nil, ErrReportNotFound
	}
	user, ok := s.users[uid]

	if report.Status != config.STATUS_UNATTENDED {
		if report.CleanedBy == nil || *report.CleanedBy != uid {
			return nil, ErrAlreadyClaimed
		}
		if !ok {
			return nil, ErrUserNotFound
		}
		return &ClaimResult{Report: cloneReport(report), User: cloneUser(user), AlreadyClaimed: true}, nil
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	solvedAt := now
	report.Status = config.STATUS_SOLVED
	report.CleanedBy = &uid
	report.SolvedAt = &solvedAt

	achievement := reportutils.NewAchievement(report)
	user.TotalPoints += report.Points
	user.Achievements = append(user.Achievements, achievement)

	return &ClaimResult{
		Report:      cloneReport(report),
		User:        cloneUser(user),
		Achievement: achievement,
	}, nil

}

func (s *MemoryStore) Vote(ctx context.Context, reportId bson.ObjectID, up bool) (int, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	report, ok := s.reports[reportId]
	if !ok {
		return 0, ErrReportNotFound
	}
	if up {
		report.Votes++
	} else if report.Votes > 0 {
		report.Votes--
	}
	return report.Votes, nil

}

func cloneUser(user *schemas.User) *schemas.User {
	c := *user
	c.Achievements = slices.Clone(user.Achievements)
	if c.Achievements == nil {
		c.Achievements = []string{}
	}
	return &c
}

func cloneReport(report *schemas.Report) *schemas.Report {
	c := *report
	if report.Location != nil {
		loc := *report.Location
		c.Location = &loc
	}
	if report.CleanedBy != nil {
		cleanedBy := *report.CleanedBy
		c.CleanedBy = &cleanedBy
	}
	if report.SolvedAt != nil {
		solvedAt := *report.SolvedAt
		c.SolvedAt = &solvedAt
	}
	return &c
}
