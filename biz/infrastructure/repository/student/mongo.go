package student

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
	prefixStudentCacheKey = "cache:student"
	StudentCollectionName = "students"
)

type IMongoMapper interface {
	Insert(ctx context.Context, student *Student) error
	Update(ctx context.Context, student *Student) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Student, error)
	FindOneByMSSV(ctx context.Context, mssv string) (*Student, error)
	FindOneByFullName(ctx context.Context, fullName string) (*Student, error)
	FindPage(ctx context.Context, limit int64) ([]*Student, error)
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewStudentMongoMapper collection: %s", StudentCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, StudentCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, student *Student) error {
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
		student.CreateTime = time.Now()
		student.UpdateTime = student.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, student)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, student *Student) error {
	student.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, student.ID, bson.M{"$set": student})
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

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Student, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var s Student
	err = m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &s, nil
}

func (m *MongoMapper) FindOneByMSSV(ctx context.Context, mssv string) (*Student, error) {
	var s Student
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.MSSV: mssv,
	})
	switch {
	case err == nil:
		return &s, nil
	case errors.Is(err, monc.ErrNotFound):
		return nil, consts.ErrNotFound
	default:
		return nil, err
	}
}

func (m *MongoMapper) FindOneByFullName(ctx context.Context, fullName string) (*Student, error) {
	var s Student
	err := m.conn.FindOneNoCache(ctx, &s, bson.M{
		consts.FullName: fullName,
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

// FindPage 按姓名排序取一页学生
func (m *MongoMapper) FindPage(ctx context.Context, limit int64) ([]*Student, error) {
	var students []*Student
	err := m.conn.Find(ctx, &students, bson.M{}, &options.FindOptions{
		Limit: &limit,
		Sort:  bson.M{consts.FullName: 1},
	})
	if err != nil {
		return nil, err
	}
	return students, nil
}
