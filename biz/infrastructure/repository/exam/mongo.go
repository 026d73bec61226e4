package exam

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
	prefixExamCacheKey = "cache:exam"
	ExamCollectionName = "exams"
)

type IMongoMapper interface {
	Insert(ctx context.Context, exam *Exam) error
	Update(ctx context.Context, exam *Exam) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Exam, error)
	FindByClassID(ctx context.Context, classID string) ([]*Exam, error)
	FindOneByClassAndName(ctx context.Context, classID, name string) (*Exam, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewExamMongoMapper collection: %s", ExamCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ExamCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, exam *Exam) error {
	if exam.ID.IsZero() {
		exam.ID = primitive.NewObjectID()
	}
	exam.UpdateTime = time.Now()
	_, err := m.conn.InsertOneNoCache(ctx, exam)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, exam *Exam) error {
	exam.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, exam.ID, bson.M{"$set": exam})
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

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Exam, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var e Exam
	err = m.conn.FindOneNoCache(ctx, &e, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &e, nil
}

func (m *MongoMapper) FindByClassID(ctx context.Context, classID string) ([]*Exam, error) {
	var exams []*Exam
	err := m.conn.Find(ctx, &exams, bson.M{consts.ClassId: classID}, &options.FindOptions{
		Sort: bson.M{consts.Date: -1},
	})
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (m *MongoMapper) FindOneByClassAndName(ctx context.Context, classID, name string) (*Exam, error) {
	var e Exam
	err := m.conn.FindOneNoCache(ctx, &e, bson.M{
		consts.ClassId: classID,
		consts.Name:    name,
	})
	switch {
	case err == nil:
		return &e, nil
	case errors.Is(err, monc.ErrNotFound), errors.Is(err, mongo.ErrNoDocuments):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}
