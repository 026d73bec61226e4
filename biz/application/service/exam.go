package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/class"
	"score-entry/biz/infrastructure/repository/exam"
	"score-entry/biz/infrastructure/util/log"
	"strings"
	"time"

	"github.com/google/wire"
	"github.com/samber/lo"
	"github.com/spf13/cast"
	"google.golang.org/grpc/codes"
)

type IExamService interface {
	CreateExam(ctx context.Context, req *score.CreateExamReq) (*score.CreateExamResp, error)
	ListExams(ctx context.Context, req *score.ListExamsReq) (*score.ListExamsResp, error)
	UpdateExam(ctx context.Context, req *score.UpdateExamReq) error
	DeleteExam(ctx context.Context, id string) error
}

type ExamService struct {
	ExamMapper  exam.IMongoMapper
	ClassMapper class.IMongoMapper
}

var ExamServiceSet = wire.NewSet(
	wire.Struct(new(ExamService), "*"),
	wire.Bind(new(IExamService), new(*ExamService)),
)

func (s *ExamService) CreateExam(ctx context.Context, req *score.CreateExamReq) (*score.CreateExamResp, error) {
	name := strings.TrimSpace(req.Name)
	if req.ClassId == "" || name == "" {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Vui lòng nhập tên bài kiểm tra"))
	}
	if _, err := s.ClassMapper.FindOne(ctx, req.ClassId); err != nil {
		return nil, consts.ErrNotFound
	}
	date, err := parseExamDate(req.Date)
	if err != nil {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Ngày kiểm tra không hợp lệ"))
	}
	maxScore := req.MaxScore
	if maxScore == 0 {
		maxScore = consts.DefaultMaxScore
	}
	e := &exam.Exam{
		ClassID:  req.ClassId,
		Name:     name,
		Date:     date,
		MaxScore: maxScore,
	}
	if err = s.ExamMapper.Insert(ctx, e); err != nil {
		log.CtxError(ctx, "创建考试失败, class=%s: %v", req.ClassId, err)
		return nil, consts.ErrCreateExam
	}
	if err = s.ClassMapper.IncExamCount(ctx, req.ClassId, 1); err != nil {
		log.CtxError(ctx, "班级考试数累加失败, class=%s: %v", req.ClassId, err)
	}
	return &score.CreateExamResp{ExamId: e.ID.Hex()}, nil
}

func (s *ExamService) ListExams(ctx context.Context, req *score.ListExamsReq) (*score.ListExamsResp, error) {
	if req.ClassId == "" {
		return nil, consts.ErrInvalidParams
	}
	exams, err := s.ExamMapper.FindByClassID(ctx, req.ClassId)
	if err != nil {
		log.CtxError(ctx, "查询考试列表失败, class=%s: %v", req.ClassId, err)
		return nil, consts.ErrGetExamList
	}
	infos := lo.Map(exams, func(e *exam.Exam, _ int) *score.ExamInfo {
		return toExamInfo(e)
	})
	return &score.ListExamsResp{Exams: infos, Total: int64(len(infos))}, nil
}

func (s *ExamService) UpdateExam(ctx context.Context, req *score.UpdateExamReq) error {
	e, err := s.ExamMapper.FindOne(ctx, req.Id)
	if err != nil {
		return consts.ErrNotFound
	}
	if req.Name != nil {
		e.Name = strings.TrimSpace(*req.Name)
	}
	if req.Date != nil {
		date, err := parseExamDate(*req.Date)
		if err != nil {
			return consts.NewErrno(codes.InvalidArgument, errors.New("Ngày kiểm tra không hợp lệ"))
		}
		e.Date = date
	}
	if req.MaxScore != nil {
		e.MaxScore = *req.MaxScore
	}
	if err = s.ExamMapper.Update(ctx, e); err != nil {
		log.CtxError(ctx, "更新考试失败, id=%s: %v", req.Id, err)
		return consts.ErrUpdate
	}
	return nil
}

func (s *ExamService) DeleteExam(ctx context.Context, id string) error {
	e, err := s.ExamMapper.FindOne(ctx, id)
	if err != nil {
		return consts.ErrNotFound
	}
	if err = s.ExamMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除考试失败, id=%s: %v", id, err)
		return consts.ErrUpdate
	}
	if err = s.ClassMapper.IncExamCount(ctx, e.ClassID, -1); err != nil {
		log.CtxError(ctx, "班级考试数回调失败, class=%s: %v", e.ClassID, err)
	}
	return nil
}

// 日期为空时取当天
func parseExamDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Now(), nil
	}
	return cast.ToTimeE(raw)
}

func toExamInfo(e *exam.Exam) *score.ExamInfo {
	return &score.ExamInfo{
		Id:       e.ID.Hex(),
		ClassId:  e.ClassID,
		Name:     e.Name,
		Date:     e.Date.UnixMilli(),
		MaxScore: e.MaxScore,
	}
}
