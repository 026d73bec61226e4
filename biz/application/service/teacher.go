package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/user"
	"score-entry/biz/infrastructure/util/log"
	"strings"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
)

type ITeacherService interface {
	CreateTeacher(ctx context.Context, req *score.CreateTeacherReq) (*score.CreateTeacherResp, error)
	ListTeachers(ctx context.Context) (*score.ListTeachersResp, error)
	UpdateTeacher(ctx context.Context, req *score.UpdateTeacherReq) error
	DeleteTeacher(ctx context.Context, id string) error
}

type TeacherService struct {
	UserMapper user.IMongoMapper
}

var TeacherServiceSet = wire.NewSet(
	wire.Struct(new(TeacherService), "*"),
	wire.Bind(new(ITeacherService), new(*TeacherService)),
)

func (s *TeacherService) CreateTeacher(ctx context.Context, req *score.CreateTeacherReq) (*score.CreateTeacherResp, error) {
	fullName := strings.TrimSpace(req.FullName)
	email := strings.TrimSpace(req.Email)
	if fullName == "" || email == "" {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Vui lòng nhập đầy đủ họ tên và email"))
	}
	u := &user.User{
		FullName: fullName,
		Email:    email,
		Role:     consts.RoleTeacher,
	}
	if err := s.UserMapper.Insert(ctx, u); err != nil {
		log.CtxError(ctx, "创建教师失败: %v", err)
		return nil, consts.ErrCreateTeacher
	}
	return &score.CreateTeacherResp{TeacherId: u.ID.Hex()}, nil
}

func (s *TeacherService) ListTeachers(ctx context.Context) (*score.ListTeachersResp, error) {
	users, err := s.UserMapper.FindByRole(ctx, consts.RoleTeacher)
	if err != nil {
		log.CtxError(ctx, "查询教师列表失败: %v", err)
		return nil, consts.ErrNotFound
	}
	teachers := lo.Map(users, func(u *user.User, _ int) *score.TeacherInfo {
		return &score.TeacherInfo{
			Id:       u.ID.Hex(),
			FullName: u.FullName,
			Email:    u.Email,
			Role:     u.Role,
		}
	})
	return &score.ListTeachersResp{Teachers: teachers}, nil
}

func (s *TeacherService) UpdateTeacher(ctx context.Context, req *score.UpdateTeacherReq) error {
	u, err := s.UserMapper.FindOne(ctx, req.Id)
	if err != nil {
		return consts.ErrNotFound
	}
	if err = copier.CopyWithOption(u, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return consts.ErrInvalidParams
	}
	if err = s.UserMapper.Update(ctx, u); err != nil {
		log.CtxError(ctx, "更新教师失败, id=%s: %v", req.Id, err)
		return consts.ErrUpdate
	}
	return nil
}

func (s *TeacherService) DeleteTeacher(ctx context.Context, id string) error {
	if err := s.UserMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除教师失败, id=%s: %v", id, err)
		return consts.ErrUpdate
	}
	return nil
}
