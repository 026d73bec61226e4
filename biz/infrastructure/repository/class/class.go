package class

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Class struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Semester     string             `bson:"semester" json:"semester"`
	TeacherID    string             `bson:"teacher_id" json:"teacherId"`
	StudentCount int64              `bson:"student_count" json:"studentCount"`
	ExamCount    int64              `bson:"exam_count" json:"examCount"`
	CreateTime   time.Time          `bson:"create_time" json:"createTime"`
	UpdateTime   time.Time          `bson:"update_time" json:"updateTime"`
}
