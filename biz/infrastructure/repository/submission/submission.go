package submission

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Submission 一次考试中一名学生的持久化成绩记录
// 同一 (student, exam) 可能存在多条记录, 由读取方自行选择策略
type Submission struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExamID         string             `bson:"exam_id" json:"examId"`
	ClassID        string             `bson:"class_id" json:"classId"`
	StudentID      string             `bson:"student_id" json:"studentId"`
	FullName       string             `bson:"full_name" json:"fullName"`
	Score          float64            `bson:"score" json:"score"`
	ContentSummary string             `bson:"content_summary" json:"contentSummary"`
	Verified       bool               `bson:"verified" json:"verified"`
	Status         string             `bson:"status" json:"status"` // pending/verified/exported
	Source         string             `bson:"source,omitempty" json:"source,omitempty"`
	ExtractedAt    time.Time          `bson:"extracted_at" json:"extractedAt"`
	UpdateTime     time.Time          `bson:"update_time" json:"updateTime"`
}
