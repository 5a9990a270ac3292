package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Location struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

type Report struct {
	Id          bson.ObjectID  `bson:"_id,omitempty" json:"id"`
	Ctime       time.Time      `bson:"ctime" json:"ctime"`
	Type        string         `bson:"type" json:"type"`
	Amount      string         `bson:"amount,omitempty" json:"amount,omitempty"`
	Description string         `bson:"description" json:"description"`
	ImageUrl    string         `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Location    *Location      `bson:"location,omitempty" json:"location,omitempty"`
	Points      int            `bson:"points" json:"points"`
	Votes       int            `bson:"votes" json:"votes"`
	Status      string         `bson:"status" json:"status"`
	ReportedBy  string         `bson:"reported_by,omitempty" json:"reportedBy,omitempty"`
	CleanedBy   *bson.ObjectID `bson:"cleaned_by,omitempty" json:"cleanedBy,omitempty"`
	SolvedAt    *time.Time     `bson:"solvedAt,omitempty" json:"solvedAt,omitempty"`
}
