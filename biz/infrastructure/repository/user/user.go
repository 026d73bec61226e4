package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 教师账号
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName   string             `bson:"full_name" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	Role       string             `bson:"role" json:"role"` // teacher
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}
