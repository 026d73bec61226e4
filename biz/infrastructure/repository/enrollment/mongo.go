package enrollment

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
	prefixEnrollmentCacheKey = "cache:enrollment"
	EnrollmentCollectionName = "enrollments"
)

type IMongoMapper interface {
	Insert(ctx context.Context, enrollment *Enrollment) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Enrollment, error)
	FindByClassID(ctx context.Context, classID string) ([]*Enrollment, error)
	FindByStudentID(ctx context.Context, studentID string) ([]*Enrollment, error)
	FindByClassAndStudent(ctx context.Context, classID, studentID string) (*Enrollment, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewEnrollmentMongoMapper collection: %s", EnrollmentCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, EnrollmentCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, enrollment *Enrollment) error {
	if enrollment.ID.IsZero() {
		enrollment.ID = primitive.NewObjectID()
		enrollment.CreateTime = time.Now()
	}
	if enrollment.JoinTime.IsZero() {
		enrollment.JoinTime = enrollment.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, enrollment)
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

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Enrollment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var e Enrollment
	err = m.conn.FindOneNoCache(ctx, &e, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &e, nil
}

func (m *MongoMapper) FindByClassID(ctx context.Context, classID string) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	err := m.conn.Find(ctx, &enrollments, bson.M{consts.ClassId: classID}, &options.FindOptions{
		Sort: bson.M{"join_time": -1},
	})
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (m *MongoMapper) FindByStudentID(ctx context.Context, studentID string) ([]*Enrollment, error) {
	var enrollments []*Enrollment
	err := m.conn.Find(ctx, &enrollments, bson.M{consts.StudentId: studentID}, &options.FindOptions{
		Sort: bson.M{"join_time": -1},
	})
	if err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (m *MongoMapper) FindByClassAndStudent(ctx context.Context, classID, studentID string) (*Enrollment, error) {
	var e Enrollment
	err := m.conn.FindOneNoCache(ctx, &e, bson.M{
		consts.ClassId:   classID,
		consts.StudentId: studentID,
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
