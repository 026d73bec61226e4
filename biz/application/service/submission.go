package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/repository/submission"
	"score-entry/biz/infrastructure/util/log"

	"github.com/google/wire"
	"github.com/samber/lo"
	"google.golang.org/grpc/codes"
)

type ISubmissionService interface {
	CreateSubmission(ctx context.Context, req *score.CreateSubmissionReq) (*score.CreateSubmissionResp, error)
	ListSubmissions(ctx context.Context, req *score.ListSubmissionsReq) (*score.ListSubmissionsResp, error)
	UpdateScore(ctx context.Context, req *score.UpdateScoreReq) error
	VerifySubmission(ctx context.Context, id string) error
	DeleteSubmission(ctx context.Context, id string) error
	UpsertByStudentAndExam(ctx context.Context, studentId, examId, classId, fullName string, newScore float64, source string) (oldScore *float64, created bool, err error)
}

type SubmissionService struct {
	SubmissionMapper submission.IMongoMapper
}

var SubmissionServiceSet = wire.NewSet(
	wire.Struct(new(SubmissionService), "*"),
	wire.Bind(new(ISubmissionService), new(*SubmissionService)),
)

func (s *SubmissionService) CreateSubmission(ctx context.Context, req *score.CreateSubmissionReq) (*score.CreateSubmissionResp, error) {
	if req.ExamId == "" || req.ClassId == "" || req.StudentId == "" || req.FullName == "" {
		return nil, consts.ErrInvalidParams
	}
	if req.Score < consts.MinScore || req.Score > consts.MaxScore {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Điểm phải trong khoảng 0 - 10"))
	}
	sub := &submission.Submission{
		ExamID:         req.ExamId,
		ClassID:        req.ClassId,
		StudentID:      req.StudentId,
		FullName:       req.FullName,
		Score:          req.Score,
		ContentSummary: req.ContentSummary,
		Verified:       false,
		Status:         consts.SubmissionPending,
	}
	if err := s.SubmissionMapper.Insert(ctx, sub); err != nil {
		log.CtxError(ctx, "创建成绩记录失败: %v", err)
		return nil, consts.ErrCreateSubmission
	}
	return &score.CreateSubmissionResp{SubmissionId: sub.ID.Hex()}, nil
}

func (s *SubmissionService) ListSubmissions(ctx context.Context, req *score.ListSubmissionsReq) (*score.ListSubmissionsResp, error) {
	subs, err := s.SubmissionMapper.FindMany(ctx, &submission.Filter{
		ExamID:    req.ExamId,
		ClassID:   req.ClassId,
		StudentID: req.StudentId,
		Status:    req.Status,
		Verified:  req.Verified,
	})
	if err != nil {
		log.CtxError(ctx, "查询成绩记录失败: %v", err)
		return nil, consts.ErrNotFound
	}
	infos := lo.Map(subs, func(sub *submission.Submission, _ int) *score.SubmissionInfo {
		return toSubmissionInfo(sub)
	})
	return &score.ListSubmissionsResp{Submissions: infos, Total: int64(len(infos))}, nil
}

func (s *SubmissionService) UpdateScore(ctx context.Context, req *score.UpdateScoreReq) error {
	if req.Score < consts.MinScore || req.Score > consts.MaxScore {
		return consts.NewErrno(codes.InvalidArgument, errors.New("Điểm phải trong khoảng 0 - 10"))
	}
	sub, err := s.SubmissionMapper.FindOne(ctx, req.Id)
	if err != nil {
		return consts.ErrNotFound
	}
	sub.Score = req.Score
	if err = s.SubmissionMapper.Update(ctx, sub); err != nil {
		log.CtxError(ctx, "更新成绩失败, id=%s: %v", req.Id, err)
		return consts.ErrUpdateSubmission
	}
	return nil
}

func (s *SubmissionService) VerifySubmission(ctx context.Context, id string) error {
	sub, err := s.SubmissionMapper.FindOne(ctx, id)
	if err != nil {
		return consts.ErrNotFound
	}
	sub.Verified = true
	sub.Status = consts.SubmissionVerified
	if err = s.SubmissionMapper.Update(ctx, sub); err != nil {
		log.CtxError(ctx, "确认成绩失败, id=%s: %v", id, err)
		return consts.ErrUpdateSubmission
	}
	return nil
}

func (s *SubmissionService) DeleteSubmission(ctx context.Context, id string) error {
	if err := s.SubmissionMapper.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除成绩记录失败, id=%s: %v", id, err)
		return consts.ErrDeleteSubmission
	}
	return nil
}

// UpsertByStudentAndExam 语音入口的改分操作
// 已有记录时覆盖并返回旧分数, 没有时新建一条已确认记录
func (s *SubmissionService) UpsertByStudentAndExam(ctx context.Context, studentId, examId, classId, fullName string, newScore float64, source string) (*float64, bool, error) {
	existing, err := s.SubmissionMapper.FindOneByStudentAndExam(ctx, studentId, examId)
	switch {
	case err == nil:
		old := existing.Score
		existing.Score = newScore
		existing.Verified = true
		existing.Status = consts.SubmissionVerified
		existing.Source = source
		if err = s.SubmissionMapper.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return &old, false, nil
	case errors.Is(err, consts.ErrNotFound):
		sub := &submission.Submission{
			ExamID:         examId,
			ClassID:        classId,
			StudentID:      studentId,
			FullName:       fullName,
			Score:          newScore,
			ContentSummary: "Điểm cập nhật bởi XiaoZhi AI",
			Verified:       true,
			Status:         consts.SubmissionVerified,
			Source:         source,
		}
		if err = s.SubmissionMapper.Insert(ctx, sub); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	default:
		return nil, false, err
	}
}

func toSubmissionInfo(sub *submission.Submission) *score.SubmissionInfo {
	return &score.SubmissionInfo{
		Id:             sub.ID.Hex(),
		ExamId:         sub.ExamID,
		ClassId:        sub.ClassID,
		StudentId:      sub.StudentID,
		FullName:       sub.FullName,
		Score:          sub.Score,
		ContentSummary: sub.ContentSummary,
		Verified:       sub.Verified,
		Status:         sub.Status,
		Source:         sub.Source,
		ExtractedAt:    sub.ExtractedAt.UnixMilli(),
	}
}
