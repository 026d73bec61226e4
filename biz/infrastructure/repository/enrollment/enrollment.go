package enrollment

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Enrollment 班级-学生关联
type Enrollment struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ClassID    string             `bson:"class_id" json:"classId"`
	StudentID  string             `bson:"student_id" json:"studentId"`
	JoinTime   time.Time          `bson:"join_time" json:"joinTime"`
	CreateTime time.Time          `bson:"create_time" json:"createTime"`
}
