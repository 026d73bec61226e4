package student

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Student MSSV为人工分配的学号, 全局唯一
type Student struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MSSV       string             `bson:"mssv" json:"mssv"`
	FullName   string             `bson:"full_name" json:"fullName"`
	Email      string             `bson:"email" json:"email"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime time.Time          `bson:"update_time" json:"updateTime"`
}
