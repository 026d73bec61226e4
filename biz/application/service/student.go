package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/enrollment"
	"score-entry/biz/infrastructure/repository/student"
	"score-entry/biz/infrastructure/repository/submission"
	"score-entry/biz/infrastructure/util/log"
	"strings"

	"github.com/google/wire"
	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
)

type IStudentService interface {
	CreateStudent(ctx context.Context, req *score.CreateStudentReq) (*score.CreateStudentResp, error)
	ListStudents(ctx context.Context) (*score.ListStudentsResp, error)
	GetStudent(ctx context.Context, id string) (*score.StudentInfo, error)
	UpdateStudent(ctx context.Context, req *score.UpdateStudentReq) error
	DeleteStudent(ctx context.Context, id string) error
}

type StudentService struct {
	StudentMapper    student.IMongoMapper
	EnrollmentMapper enrollment.IMongoMapper
	SubmissionMapper submission.IMongoMapper
	ClassMapper      class.IMongoMapper
}

var StudentServiceSet = wire.NewSet(
	wire.Struct(new(StudentService), "*"),
	wire.Bind(new(IStudentService), new(*StudentService)),
)

func (s *StudentService) CreateStudent(ctx context.Context, req *score.CreateStudentReq) (*score.CreateStudentResp, error) {
	mssv := strings.TrimSpace(req.MSSV)
	fullName := strings.TrimSpace(req.FullName)
	if mssv == "" || fullName == "" {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Vui lòng nhập đầy đủ họ tên và MSSV"))
	}
	if len([]rune(mssv)) > consts.MaxMSSVLength {
		return nil, consts.ErrMSSVTooLong
	}
	if _, err := s.StudentMapper.FindOneByMSSV(ctx, mssv); err == nil {
		return nil, consts.ErrDuplicateMSSV
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = mssv + consts.StudentEmailDomain
	}
	stu := &student.Student{
		MSSV:     mssv,
		FullName: fullName,
		Email:    email,
	}
	if err := s.StudentMapper.Insert(ctx, stu); err != nil {
		log.CtxError(ctx, "创建学生失败, mssv=%s: %v", mssv, err)
		return nil, consts.ErrCreateStudent
	}
	return &score.CreateStudentResp{StudentId: stu.ID.Hex()}, nil
}

func (s *StudentService) ListStudents(ctx context.Context) (*score.ListStudentsResp, error) {
	students, err := s.StudentMapper.FindPage(ctx, 0)
	if err != nil {
		log.CtxError(ctx, "查询学生列表失败: %v", err)
		return nil, consts.ErrNotFound
	}
	infos := lo.Map(students, func(stu *student.Student, _ int) *score.StudentInfo {
		return toStudentInfo(stu)
	})
	return &score.ListStudentsResp{Students: infos, Total: int64(len(infos))}, nil
}

func (s *StudentService) GetStudent(ctx context.Context, id string) (*score.StudentInfo, error) {
	stu, err := s.StudentMapper.FindOne(ctx, id)
	if err != nil {
		return nil, consts.ErrNotFound
	}
	return toStudentInfo(stu), nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, req *score.UpdateStudentReq) error {
	stu, err := s.StudentMapper.FindOne(ctx, req.Id)
	if err != nil {
		return consts.ErrNotFound
	}
	// 只覆盖请求里带的字段
	if err = copier.CopyWithOption(stu, req, copier.Option{IgnoreEmpty: true}); err != nil {
		return consts.ErrInvalidParams
	}
	if err = s.StudentMapper.Update(ctx, stu); err != nil {
		log.CtxError(ctx, "更新学生失败, id=%s: %v", req.Id, err)
		return consts.ErrUpdate
	}
	return nil
}

// DeleteStudent 级联清理: 先成绩, 再选课关系并回调班级人数, 最后学生本体
// 任何一步失败立即终止, 已删除的部分不回滚
func (s *StudentService) DeleteStudent(ctx context.Context, id string) error {
	subs, err := s.SubmissionMapper.FindMany(ctx, &submission.Filter{StudentID: id})
	if err != nil {
		log.CtxError(ctx, "查询学生成绩失败, id=%s: %v", id, err)
		return consts.ErrDeleteStudent
	}
	for _, sub := range subs {
		if err = s.SubmissionMapper.Delete(ctx, sub.ID.Hex()); err != nil {
			log.CtxError(ctx, "删除学生成绩失败, submission=%s: %v", sub.ID.Hex(), err)
			return consts.ErrDeleteStudent
		}
	}

	enrollments, err := s.EnrollmentMapper.FindByStudentID(ctx, id)
	if err != nil {
		log.CtxError(ctx, "查询学生选课失败, id=%s: %v", id, err)
		return consts.ErrDeleteStudent
	}
	for _, e := range enrollments {
		if err = s.EnrollmentMapper.Delete(ctx, e.ID.Hex()); err != nil {
			log.CtxError(ctx, "删除选课失败, enrollment=%s: %v", e.ID.Hex(), err)
			return consts.ErrDeleteStudent
		}
		if err = s.ClassMapper.IncStudentCount(ctx, e.ClassID, -1); err != nil {
			log.CtxError(ctx, "班级人数回调失败, class=%s: %v", e.ClassID, err)
		}
	}

	if err = s.StudentMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除学生失败, id=%s: %v", id, err)
		return consts.ErrDeleteStudent
	}
	return nil
}

func toStudentInfo(stu *student.Student) *score.StudentInfo {
	return &score.StudentInfo{
		Id:         stu.ID.Hex(),
		MSSV:       stu.MSSV,
		FullName:   stu.FullName,
		Email:      stu.Email,
		CreateTime: stu.CreateTime.UnixMilli(),
	}
}
