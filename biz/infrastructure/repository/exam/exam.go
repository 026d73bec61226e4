package exam

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Exam struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID    string             `bson:"class_id" json:"classId"`
	Name       string             `bson:"name" json:"name"`
	Date       time.Time          `bson:"date" json:"date"`
	MaxScore   float64            `bson:"max_score" json:"maxScore"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}
