package service

import (
	"context"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/util/log"
	"time"

	"github.com/google/wire"
	"github.com/samber/lo"
)

type IEnrollmentService interface {
	CreateEnrollment(ctx context.Context, req *score.CreateEnrollmentReq) (*score.CreateEnrollmentResp, error)
	ListEnrollments(ctx context.Context, req *score.ListEnrollmentsReq) (*score.ListEnrollmentsResp, error)
	DeleteEnrollment(ctx context.Context, id string) error
}

type EnrollmentService struct {
	EnrollmentMapper enrollment.IMongoMapper
	ClassMapper      class.IMongoMapper
	StudentMapper    student.IMongoMapper
}

var EnrollmentServiceSet = wire.NewSet(
	wire.Struct(new(EnrollmentService), "*"),
	wire.Bind(new(IEnrollmentService), new(*EnrollmentService)),
)

func (s *EnrollmentService) CreateEnrollment(ctx context.Context, req *score.CreateEnrollmentReq) (*score.CreateEnrollmentResp, error) {
	if req.ClassId == "" || req.StudentId == "" {
		return nil, consts.ErrInvalidParams
	}
	if _, err := s.ClassMapper.FindOne(ctx, req.ClassId); err != nil {
		return nil, consts.ErrNotFound
	}
	if _, err := s.StudentMapper.FindOne(ctx, req.StudentId); err != nil {
		return nil, consts.ErrNotFound
	}
	// 先查后插, 重复选课直接拒绝
	if _, err := s.EnrollmentMapper.FindByClassAndStudent(ctx, req.ClassId, req.StudentId); err == nil {
		return nil, consts.ErrDuplicateEnroll
	}
	e := &enrollment.Enrollment{
		ClassID:   req.ClassId,
		StudentID: req.StudentId,
		JoinTime:  time.Now(),
	}
	if err := s.EnrollmentMapper.Insert(ctx, e); err != nil {
		log.CtxError(ctx, "创建选课失败, class=%s student=%s: %v", req.ClassId, req.StudentId, err)
		return nil, consts.ErrCreateEnrollment
	}
	// 人数统计失败不影响选课结果, 只记日志
	if err := s.ClassMapper.IncStudentCount(ctx, req.ClassId, 1); err != nil {
		log.CtxError(ctx, "班级人数累加失败, class=%s: %v", req.ClassId, err)
	}
	return &score.CreateEnrollmentResp{EnrollmentId: e.ID.Hex()}, nil
}

func (s *EnrollmentService) ListEnrollments(ctx context.Context, req *score.ListEnrollmentsReq) (*score.ListEnrollmentsResp, error) {
	var (
		enrollments []*enrollment.Enrollment
		err         error
	)
	switch {
	case req.ClassId != "":
		enrollments, err = s.EnrollmentMapper.FindByClassID(ctx, req.ClassId)
	case req.StudentId != "":
		enrollments, err = s.EnrollmentMapper.FindByStudentID(ctx, req.StudentId)
	default:
		return nil, consts.ErrInvalidParams
	}
	if err != nil {
		log.CtxError(ctx, "查询选课列表失败: %v", err)
		return nil, consts.ErrNotFound
	}
	infos := lo.Map(enrollments, func(e *enrollment.Enrollment, _ int) *score.EnrollmentInfo {
		return &score.EnrollmentInfo{
			Id:        e.ID.Hex(),
			ClassId:   e.ClassID,
			StudentId: e.StudentID,
			JoinTime:  e.JoinTime.UnixMilli(),
		}
	})
	return &score.ListEnrollmentsResp{Enrollments: infos, Total: int64(len(infos))}, nil
}

func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id string) error {
	e, err := s.EnrollmentMapper.FindOne(ctx, id)
	if err != nil {
		return consts.ErrNotFound
	}
	if err = s.EnrollmentMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除选课失败, id=%s: %v", id, err)
		return consts.ErrUpdate
	}
	if err = s.ClassMapper.IncStudentCount(ctx, e.ClassID, -1); err != nil {
		log.CtxError(ctx, "班级人数回调失败, class=%s: %v", e.ClassID, err)
	}
	return nil
}
