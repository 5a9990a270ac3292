package store

import (
	"context"
	"errors"
	"time"

	"ecovoiceapi/pkg/config"
	reportutils "ecovoiceapi/pkg/report_utils"
	"ecovoiceapi/pkg/schemas"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readconcern"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/mongo/writeconcern"
)

// MongoStore needs a replica set (or Atlas) deployment, claims run in a
// multi-document transaction.
type MongoStore struct {
	DB *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{DB: db}
}

func (s *MongoStore) users() *mongo.Collection {
	return s.DB.Collection(config.USERS_COLLECTION)
}

func (s *MongoStore) reports() *mongo.Collection {
	return s.DB.Collection(config.REPORTS_COLLECTION)
}

func (s *MongoStore) EnsureIndexes(ctx context.Context) error {

	_, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "googleId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.reports().Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "cleaned_by", Value: 1}}},
	})
	return err

}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.DB.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) GetUser(ctx context.Context, uid bson.ObjectID) (*schemas.User, error) {

	var user schemas.User
	err := s.users().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return &user, nil

}

func (s *MongoStore) ListUsers(ctx context.Context) ([]*schemas.User, error) {

	cursor, err := s.users().Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := []*schemas.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil

}

func (s *MongoStore) FindOrCreateGoogleUser(ctx context.Context, newUser *schemas.User) (*schemas.User, bool, error) {

	var user schemas.User
	err := s.users().FindOne(ctx, bson.M{"googleId": newUser.GoogleId}).Decode(&user)
	if err == nil {
		return &user, false, nil
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, err
	}

	user = *newUser
	user.Id = bson.ObjectID{}
	user.TotalPoints = 0
	user.Achievements = []string{}

	res, err := s.users().InsertOne(ctx, &user)
	if mongo.IsDuplicateKeyError(err) {
		// lost a race with a concurrent first login
		if err := s.users().FindOne(ctx, bson.M{"googleId": newUser.GoogleId}).Decode(&user); err != nil {
			return nil, false, err
		}
		return &user, false, nil
	} else if err != nil {
		return nil, false, err
	}

	user.Id = res.InsertedID.(bson.ObjectID)
	return &user, true, nil

}

func (s *MongoStore) GetReport(ctx context.Context, id bson.ObjectID) (*schemas.Report, error) {

	var report schemas.Report
	err := s.reports().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReportNotFound
	} else if err != nil {
		return nil, err
	}
	return &report, nil

}

func (s *MongoStore) ListReports(ctx context.Context, filter ReportFilter) ([]*schemas.Report, error) {

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.CleanedBy != nil {
		query["cleaned_by"] = *filter.CleanedBy
	}

	cursor, err := s.reports().Find(ctx, query)
	if err != nil {
		return nil, err
	}
	reports := []*schemas.Report{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}
	return reports, nil

}

func (s *MongoStore) InsertReport(ctx context.Context, report *schemas.Report) error {

	res, err := s.reports().InsertOne(ctx, report)
	if err != nil {
		return err
	}
	report.Id = res.InsertedID.(bson.ObjectID)
	return nil

}

func (s *MongoStore) ClaimReport(ctx context.Context, reportId bson.ObjectID, uid bson.ObjectID, now time.Time) (*ClaimResult, error) {

	txSession, err := s.DB.Client().StartSession()
	if err != nil {
		return nil, err
	}
	defer txSession.EndSession(ctx)
	txOpts := options.Transaction().SetReadConcern(readconcern.Snapshot()).SetWriteConcern(writeconcern.Majority())

	res, err := txSession.WithTransaction(ctx, func(txCtx context.Context) (any, error) {

		// only an unattended report can be solved
		var report schemas.Report
		err := s.reports().FindOneAndUpdate(txCtx,
			bson.M{
				"_id":    reportId,
				"status": config.STATUS_UNATTENDED,
			},
			bson.M{
				"$set": bson.M{
					"status":     config.STATUS_SOLVED,
					"cleaned_by": uid,
					"solvedAt":   now,
				},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&report)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return s.priorClaim(txCtx, reportId, uid)
		} else if err != nil {
			return nil, err
		}

		// credit user
		achievement := reportutils.NewAchievement(&report)
		var user schemas.User
		err = s.users().FindOneAndUpdate(txCtx,
			bson.M{"_id": uid},
			bson.M{
				"$inc":  bson.M{"total_points": report.Points},
				"$push": bson.M{"achievements": achievement},
			},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&user)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		} else if err != nil {
			return nil, err
		}

		return &ClaimResult{Report: &report, User: &user, Achievement: achievement}, nil

	}, txOpts)
	if err != nil {
		return nil, err
	}

	return res.(*ClaimResult), nil

}

// priorClaim explains why the conditional update matched nothing.
func (s *MongoStore) priorClaim(ctx context.Context, reportId bson.ObjectID, uid bson.ObjectID) (*ClaimResult, error) {

	var report schemas.Report
	err := s.reports().FindOne(ctx, bson.M{"_id": reportId}).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrReportNotFound
	} else if err != nil {
		return nil, err
	}

	if report.CleanedBy == nil || *report.CleanedBy != uid {
		return nil, ErrAlreadyClaimed
	}

	var user schemas.User
	err = s.users().FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	return &ClaimResult{Report: &report, User: &user, AlreadyClaimed: true}, nil

}

func (s *MongoStore) Vote(ctx context.Context, reportId bson.ObjectID, up bool) (int, error) {

	filter := bson.M{"_id": reportId}
	delta := 1
	if !up {
		filter["votes"] = bson.M{"$gt": 0}
		delta = -1
	}

	var report schemas.Report
	err := s.reports().FindOneAndUpdate(ctx,
		filter,
		bson.M{"$inc": bson.M{"votes": delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&report)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// either missing or already at zero
		current, err := s.GetReport(ctx, reportId)
		if err != nil {
			return 0, err
		}
		return current.Votes, nil
	} else if err != nil {
		return 0, err
	}

	return report.Votes, nil

}
