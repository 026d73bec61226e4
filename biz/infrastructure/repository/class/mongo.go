package class

import (
	"context"
	"score-entry/biz/infrastructure/config"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/util/log"
	"time"

	"github.com/zeromicro/go-zero/core/stores/monc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	prefixClassCacheKey = "cache:class"
	ClassCollectionName = "classes"
)

type Filter struct {
	TeacherID string
	Semester  string
}

type IMongoMapper interface {
	Insert(ctx context.Context, class *Class) error
	Update(ctx context.Context, class *Class) error
	Delete(ctx context.Context, id string) error
	FindOne(ctx context.Context, id string) (*Class, error)
	FindMany(ctx context.Context, filter *Filter) ([]*Class, error)
	IncStudentCount(ctx context.Context, id string, delta int64) error
	IncExamCount(ctx context.Context, id string, delta int64) error
}

type MongoMapper struct {
	conn *monc.Model
}

func NewMongoMapper(config *config.Config) *MongoMapper {
	log.Info("NewClassMongoMapper collection: %s", ClassCollectionName)
	conn := monc.MustNewModel(config.Mongo.URL, config.Mongo.DB, ClassCollectionName, config.Cache)
	return &MongoMapper{
		conn: conn,
	}
}

func (m *MongoMapper) Insert(ctx context.Context, class *Class) error {
	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
		class.CreateTime = time.Now()
		class.UpdateTime = class.CreateTime
	}
	_, err := m.conn.InsertOneNoCache(ctx, class)
	return err
}

func (m *MongoMapper) Update(ctx context.Context, class *Class) error {
	class.UpdateTime = time.Now()
	_, err := m.conn.UpdateByIDNoCache(ctx, class.ID, bson.M{"$set": class})
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

func (m *MongoMapper) FindOne(ctx context.Context, id string) (*Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, consts.ErrInvalidObjectId
	}
	var c Class
	err = m.conn.FindOneNoCache(ctx, &c, bson.M{
		consts.ID: oid,
	})
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return &c, nil
}

func (m *MongoMapper) FindMany(ctx context.Context, filter *Filter) ([]*Class, error) {
	query := bson.M{}
	if filter != nil {
		if filter.TeacherID != "" {
			query[consts.TeacherId] = filter.TeacherID
		}
		if filter.Semester != "" {
			query[consts.Semester] = filter.Semester
		}
	}

	var classes []*Class
	err := m.conn.Find(ctx, &classes, query, &options.FindOptions{
		Sort: bson.M{consts.CreateTime: -1},
	})
	if err != nil {
		return nil, err
	}
	return classes, nil
}

// IncStudentCount 原子增减班级学生数, 计数只允许通过该入口修改
func (m *MongoMapper) IncStudentCount(ctx context.Context, id string, delta int64) error {
	return m.inc(ctx, id, "student_count", delta)
}

// IncExamCount 原子增减班级考试数
func (m *MongoMapper) IncExamCount(ctx context.Context, id string, delta int64) error {
	return m.inc(ctx, id, "exam_count", delta)
}

func (m *MongoMapper) inc(ctx context.Context, id, field string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return consts.ErrInvalidObjectId
	}
	_, err = m.conn.UpdateByIDNoCache(ctx, oid, bson.M{
		"$inc": bson.M{
			field: delta,
		},
		"$set": bson.M{
			"update_time": time.Now(),
		},
	})
	return err
}
