package schemas

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	Id           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Ctime        time.Time     `bson:"ctime" json:"-"`
	GoogleId     string        `bson:"googleId" json:"-"`
	Name         string        `bson:"name" json:"name"`
	Email        string        `bson:"email" json:"email"`
	TotalPoints  int           `bson:"total_points" json:"totalPoints"`
	Achievements []string      `bson:"achievements" json:"achievements"`
}
