package service

import (
	"context"
	"errors"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/util/log"
	"strings"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
)

type IClassService interface {
	CreateClass(ctx context.Context, req *score.CreateClassReq) (*score.CreateClassResp, error)
	ListClasses(ctx context.Context, req *score.ListClassesReq) (*score.ListClassesResp, error)
	GetClass(ctx context.Context, id string) (*score.ClassInfo, error)
	UpdateClass(ctx context.Context, req *score.UpdateClassReq) error
	DeleteClass(ctx context.Context, id string) error
}

type ClassService struct {
	ClassMapper class.IMongoMapper
}

var ClassServiceSet = wire.NewSet(
	wire.Struct(new(ClassService), "*"),
	wire.Bind(new(IClassService), new(*ClassService)),
)

func (s *ClassService) CreateClass(ctx context.Context, req *score.CreateClassReq) (*score.CreateClassResp, error) {
	name := strings.TrimSpace(req.Name)
	semester := strings.TrimSpace(req.Semester)
	if name == "" || semester == "" {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Vui lòng nhập đầy đủ tên lớp và học kỳ"))
	}
	// 未显式指定归属教师时, 依次回退到登录身份和默认账号
	teacherId := req.TeacherId
	if teacherId == "" {
		teacherId = adaptor.ExtractUserMeta(ctx).GetUserId()
	}
	if teacherId == "" {
		teacherId = consts.DefaultTeacherId
	}
	c := &class.Class{
		Name:      name,
		Semester:  semester,
		TeacherID: teacherId,
	}
	if err := s.ClassMapper.Insert(ctx, c); err != nil {
		log.CtxError(ctx, "创建班级失败: %v", err)
		return nil, consts.ErrCreateClass
	}
	return &score.CreateClassResp{ClassId: c.ID.Hex()}, nil
}

func (s *ClassService) ListClasses(ctx context.Context, req *score.ListClassesReq) (*score.ListClassesResp, error) {
	classes, err := s.ClassMapper.FindMany(ctx, &class.Filter{
		TeacherID: req.TeacherId,
		Semester:  req.Semester,
	})
	if err != nil {
		log.CtxError(ctx, "查询班级列表失败: %v", err)
		return nil, consts.ErrGetClassList
	}
	infos := lo.Map(classes, func(c *class.Class, _ int) *score.ClassInfo {
		return toClassInfo(c)
	})
	return &score.ListClassesResp{Classes: infos, Total: int64(len(infos))}, nil
}

func (s *ClassService) GetClass(ctx context.Context, id string) (*score.ClassInfo, error) {
	c, err := s.ClassMapper.FindOne(ctx, id)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return toClassInfo(c), nil
}

func (s *ClassService) UpdateClass(ctx context.Context, req *score.UpdateClassReq) error {
	c, err := s.ClassMapper.FindOne(ctx, req.Id)
	if err != nil {
		return consts.ErrNotFound
	}
	if err = copier.CopyWithOption(c, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return consts.ErrInvalidParams
	}
	if err = s.ClassMapper.Update(ctx, c); err != nil {
		log.CtxError(ctx, "更新班级失败, id=%s: %v", req.Id, err)
		return consts.ErrUpdate
	}
	return nil
}

func (s *ClassService) DeleteClass(ctx context.Context, id string) error {
	if err := s.ClassMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除班级失败, id=%s: %v", id, err)
		return consts.ErrUpdate
	}
	return nil
}

func toClassInfo(c *class.Class) *score.ClassInfo {
	return &score.ClassInfo{
		Id:           c.ID.Hex(),
		Name:         c.Name,
		Semester:     c.Semester,
		TeacherId:    c.TeacherID,
		StudentCount: c.StudentCount,
		ExamCount:    c.ExamCount,
		CreateTime:   c.CreateTime.UnixMilli(),
	}
}
