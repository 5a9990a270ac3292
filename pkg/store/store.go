package store

import (
	"context"
	"errors"
	"time"

	"ecovoiceapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrReportNotFound = errors.New("report not found")
	ErrAlreadyClaimed = errors.New("report already claimed by another user")
)

// ReportFilter narrows a report scan. Zero fields match everything.
type ReportFilter struct {
	Status    string
	CleanedBy *bson.ObjectID
}

type ClaimResult struct {
	Report      *schemas.Report
	User        *schemas.User
	Achievement string
	// AlreadyClaimed is set when the report was solved earlier by the same
	// user. Nothing is credited in that case.
	AlreadyClaimed bool
}

type Store interface {
	Ping(ctx context.Context) error

	GetUser(ctx context.Context, uid bson.ObjectID) (*schemas.User, error)
	ListUsers(ctx context.Context) ([]*schemas.User, error)
	// FindOrCreateGoogleUser returns the user with newUser.GoogleId, creating
	// newUser with zero points when none exists.
	FindOrCreateGoogleUser(ctx context.Context, newUser *schemas.User) (*schemas.User, bool, error)

	GetReport(ctx context.Context, id bson.ObjectID) (*schemas.Report, error)
	ListReports(ctx context.Context, filter ReportFilter) ([]*schemas.Report, error)
	InsertReport(ctx context.Context, report *schemas.Report) error

	// ClaimReport marks an unattended report solved by uid and credits uid
	// with its points and one achievement, all or nothing.
	ClaimReport(ctx context.Context, reportId bson.ObjectID, uid bson.ObjectID, now time.Time) (*ClaimResult, error)
	// Vote adds one vote (up) or removes one without going below zero, and
	// returns the resulting count.
	Vote(ctx context.Context, reportId bson.ObjectID, up bool) (int, error)
}

var (
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
