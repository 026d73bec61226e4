package submission

import (
	"context"
	"errors"
	"score-entry/biz/infrastructure/config"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixSubmissionCacheKey = "cache:submission"
	SubmissionCollectionName = "submissions"
)

type Filter struct {
	ExamID    string
	ClassID   string
	StudentID string
	Status    string
	Verified  *bool
}

type IMongoMapper interface {
	Insert(ctx context.Context, submission *Submission) error
	Update(ctx context.Context, submission *Submission) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Submission, error)
	FindMany(ctx context.Context, filter *Filter) ([]*Submission, error)
	FindOneByStudentAndExam(ctx context.Context, studentID, examID string) (*Submission, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewSubmissionMongoMapper collection: %s", SubmissionCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, SubmissionCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, submission *Submission) error {
	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	if submission.ExtractedAt.IsZero() {
		submission.ExtractedAt = time.Now()
	}
	submission.UpdateTime = time.Now()
	_, err := m.conn.InsertOneNoCache(ctx, submission)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, submission *Submission) error {
	submission.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, submission.ID, bson.M{"$set": submission})
	return err
}

func (m *MongoMapper) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.DeleteOneNoCache(ctx, bson.M{consts.ID: oid})
	return err
}

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Submission, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var s Submission
	err = m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &s, nil
}

func (m *MongoMapper) FindMany(ctx context.Context, filter *Filter) ([]*Submission, error) {
	query := bson.M{}
	if filter != nil {
		if filter.ExamID != "" {
			query[consts.ExamId] = filter.ExamID
		}
		if filter.ClassID != "" {
			query[consts.ClassId] = filter.ClassID
		}
		if filter.StudentID != "" {
			query[consts.StudentId] = filter.StudentID
		}
		if filter.Status != "" {
			query[consts.Status] = filter.Status
		}
		if filter.Verified != nil {
			query[consts.Verified] = *filter.Verified
		}
	}

	var submissions []*Submission
	err := m.conn.Find(ctx, &submissions, query, &options.FindOptions{
		Sort: bson.M{consts.ExtractedAt: -1},
	})
	if err != nil {
		return nil, err
	}
	return submissions, nil
}

func (m *MongoMapper) FindOneByStudentAndExam(ctx context.Context, studentID, examID string) (*Submission, error) {
	var s Submission
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.StudentId: studentID,
		consts.ExamId:    examID,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, monc.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
