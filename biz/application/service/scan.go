package service

import (
	"context"
	"errors"
	"fmt"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/lock"
	"score-entry/biz/infrastructure/repository/submission"
	"score-entry/biz/infrastructure/scanstore"
	"score-entry/biz/infrastructure/util/log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/google/wire"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/codes"
)

type IScanService interface {
	Watch(ctx context.Context, onChange func(rows []*score.ScanRow)) func()
	GetScanResults(ctx context.Context) ([]*score.ScanRow, error)
	AddManual(ctx context.Context, req *score.ManualScanReq, source string) (*score.ManualScanResp, error)
	UpdateScanResult(ctx context.Context, req *score.UpdateScanReq) error
	DeleteScanResult(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
	CommitAll(ctx context.Context, req *score.CommitScanReq) (*score.CommitScanResp, error)
	CheckScannerStatus(ctx context.Context) (*score.ScannerStatusResp, error)
}

type ScanService struct {
	ScanStore        scanstore.IScanStore
	SubmissionMapper submission.IMongoMapper
	LockFactory      lock.IMutexFactory
}

var ScanServiceSet = wire.NewSet(
	wire.Struct(new(ScanService), "*"),
	wire.Bind(new(IScanService), new(*ScanService)),
)

// Watch 订阅扫描数据变化, 每次变化推送整棵快照的归一化结果
// 订阅失败时推送空列表, 前端照常渲染
func (s *ScanService) Watch(ctx context.Context, onChange func(rows []*score.ScanRow)) func() {
	unsubscribe, err := s.ScanStore.Subscribe(ctx, func(raw map[string]map[string]any) {
		onChange(normalizeRows(raw))
	})
	if err != nil {
		log.CtxError(ctx, "订阅扫描数据失败: %v", err)
		onChange([]*score.ScanRow{})
		return func() {}
	}
	return unsubscribe
}

func (s *ScanService) GetScanResults(ctx context.Context) ([]*score.ScanRow, error) {
	raw, err := s.ScanStore.ReadAll(ctx)
	if err != nil {
		log.CtxError(ctx, "读取扫描数据失败: %v", err)
		return nil, consts.ErrScanStore
	}
	return normalizeRows(raw), nil
}

func (s *ScanService) AddManual(ctx context.Context, req *score.ManualScanReq, source string) (*score.ManualScanResp, error) {
	sc := req.Score
	row := &score.ScanRow{
		FullName:     strings.TrimSpace(req.FullName),
		StudentId:    strings.TrimSpace(req.MSSV),
		Score:        &sc,
		Clarity:      req.Clarity,
		Spacing:      req.Spacing,
		Straightness: req.Straightness,
	}
	if errs := ValidateScanRow(row); !errs.Valid() {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New(errs.First()))
	}

	now := time.Now().UTC().Format(time.RFC3339)
	id := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), row.StudentId)
	fields := map[string]any{
		"fullName":  row.FullName,
		"studentId": row.StudentId,
		"score":     *row.Score,
		"timestamp": now,
		"source":    source,
	}
	for key, value := range map[string]*float64{
		"clarity":      row.Clarity,
		"spacing":      row.Spacing,
		"straightness": row.Straightness,
	} {
		if value != nil {
			fields[key] = *value
		}
	}
	if err := s.ScanStore.Write(ctx, id, fields); err != nil {
		log.CtxError(ctx, "写入手动录入失败: %v", err)
		return nil, consts.ErrScanStore
	}
	return &score.ManualScanResp{Id: id}, nil
}

func (s *ScanService) UpdateScanResult(ctx context.Context, req *score.UpdateScanReq) error {
	if req.Id == "" {
		return consts.ErrInvalidParams
	}
	fields := make(map[string]any)
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return consts.NewErrno(codes.InvalidArgument, errors.New("Thiếu họ tên"))
		}
		fields["fullName"] = name
	}
	if req.MSSV != nil {
		mssv := strings.TrimSpace(*req.MSSV)
		if mssv == "" {
			return consts.NewErrno(codes.InvalidArgument, errors.New("Thiếu MSSV"))
		}
		if len([]rune(mssv)) > consts.MaxMSSVLength {
			return consts.ErrMSSVTooLong
		}
		fields["studentId"] = mssv
	}
	if req.Score != nil {
		if *req.Score < consts.MinScore || *req.Score > consts.MaxScore {
			return consts.NewErrno(codes.InvalidArgument, errors.New("Điểm phải trong khoảng 0 - 10"))
		}
		fields["score"] = *req.Score
	}
	if len(fields) == 0 {
		return consts.ErrInvalidParams
	}
	fields["lastModified"] = time.Now().UTC().Format(time.RFC3339)
	if err := s.ScanStore.Write(ctx, req.Id, fields); err != nil {
		log.CtxError(ctx, "更新扫描记录失败, id=%s: %v", req.Id, err)
		return consts.ErrScanStore
	}
	return nil
}

func (s *ScanService) DeleteScanResult(ctx context.Context, id string) error {
	if id == "" {
		return consts.ErrInvalidParams
	}
	if err := s.ScanStore.Delete(ctx, id); err != nil {
		log.CtxError(ctx, "删除扫描记录失败, id=%s: %v", id, err)
		return consts.ErrScanStore
	}
	return nil
}

func (s *ScanService) ClearAll(ctx context.Context) error {
	if err := s.ScanStore.Clear(ctx); err != nil {
		log.CtxError(ctx, "清空扫描数据失败: %v", err)
		return consts.ErrScanStore
	}
	return nil
}

// CommitAll 把整批扫描结果落库, 全部成功后才清空临时数据
// 先整批校验, 任何一行不合法则整批拒绝, 不产生部分写入
func (s *ScanService) CommitAll(ctx context.Context, req *score.CommitScanReq) (*score.CommitScanResp, error) {
	if req.ClassId == "" || req.ExamId == "" {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Vui lòng chọn lớp và bài kiểm tra"))
	}
	if len(req.Rows) == 0 {
		return nil, consts.NewErrno(codes.InvalidArgument, errors.New("Không có kết quả scan nào để lưu"))
	}
	for _, row := range req.Rows {
		if errs := ValidateScanRow(row); !errs.Valid() {
			name := strings.TrimSpace(row.FullName)
			if name == "" {
				name = "Chưa có tên"
			}
			mssv := strings.TrimSpace(row.StudentId)
			if mssv == "" {
				mssv = "Chưa có MSSV"
			}
			return nil, consts.NewErrno(codes.InvalidArgument,
				fmt.Errorf("%s: %s (%s)", errs.First(), name, mssv))
		}
	}

	// 同一 (lớp, bài kiểm tra) 同时只允许一次提交
	mutex := s.LockFactory.NewMutex(ctx, "commit:"+req.ClassId+":"+req.ExamId, consts.CommitLockTTL)
	if err := mutex.Lock(); err != nil {
		log.CtxError(ctx, "获取提交锁失败, class=%s exam=%s: %v", req.ClassId, req.ExamId, err)
		return nil, consts.ErrOneCommit
	}
	defer func() {
		if err := mutex.Unlock(); err != nil {
			log.CtxError(ctx, "释放提交锁失败: %v", err)
		}
	}()

	batchId := uuid.NewString()
	g, gctx := errgroup.WithContext(ctx)
	for _, row := range req.Rows {
		row := row
		g.Go(func() error {
			return s.SubmissionMapper.Insert(gctx, &submission.Submission{
				ExamID:         req.ExamId,
				ClassID:        req.ClassId,
				StudentID:      strings.TrimSpace(row.StudentId),
				FullName:       strings.TrimSpace(row.FullName),
				Score:          *row.Score,
				ContentSummary: fmt.Sprintf("Python scan result from %s (batch %s)", row.Timestamp, batchId),
				Verified:       false,
				Status:         consts.SubmissionPending,
				Source:         commitSource(row.Source),
			})
		})
	}
	if err := g.Wait(); err != nil {
		// 落库失败时保留临时数据, 由用户修正后重试
		log.CtxError(ctx, "保存扫描成绩失败, batch=%s: %v", batchId, err)
		return nil, consts.ErrCommitScan
	}

	if err := s.ScanStore.Clear(ctx); err != nil {
		log.CtxError(ctx, "成绩已保存但清空扫描数据失败, batch=%s: %v", batchId, err)
		return nil, consts.ErrPurgeScan
	}

	count := int64(len(req.Rows))
	return &score.CommitScanResp{
		Count:   count,
		BatchId: batchId,
		Msg:     fmt.Sprintf("Lưu thành công %d điểm từ kết quả scan và đã xóa dữ liệu scan", count),
	}, nil
}

// CheckScannerStatus 扫描端在线状态, 读取失败按离线处理
func (s *ScanService) CheckScannerStatus(ctx context.Context) (*score.ScannerStatusResp, error) {
	status, err := s.ScanStore.ReadStatus(ctx)
	if err != nil {
		log.CtxError(ctx, "读取扫描端状态失败: %v", err)
		return &score.ScannerStatusResp{Online: false}, nil
	}
	if status == nil {
		return &score.ScannerStatusResp{Online: false}, nil
	}
	return &score.ScannerStatusResp{
		Online:        status.Online,
		LastHeartbeat: status.LastHeartbeat,
	}, nil
}

func commitSource(source string) string {
	if source == "" {
		return consts.SourceScanner
	}
	return source
}

// normalizeRows 把原始键值快照整理成稳定有序的行列表
// 键为空的记录丢弃, 字段缺失或类型不对时取零值而不是报错
func normalizeRows(raw map[string]map[string]any) []*score.ScanRow {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rows := make([]*score.ScanRow, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, normalizeRow(id, raw[id]))
	}
	return rows
}

func normalizeRow(id string, fields map[string]any) *score.ScanRow {
	row := &score.ScanRow{
		Id:           id,
		FullName:     cast.ToString(fields["fullName"]),
		StudentId:    cast.ToString(fields["studentId"]),
		Score:        floatField(fields, "score"),
		Timestamp:    cast.ToString(fields["timestamp"]),
		Source:       cast.ToString(fields["source"]),
		LastModified: cast.ToString(fields["lastModified"]),
		ImageData:    cast.ToString(fields["image_data"]),
		Clarity:      floatField(fields, "clarity"),
		Spacing:      floatField(fields, "spacing"),
		Straightness: floatField(fields, "straightness"),
	}
	if row.Timestamp == "" {
		row.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	return row
}

func floatField(fields map[string]any, key string) *float64 {
	value, ok := fields[key]
	if !ok || value == nil {
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return nil
	}
	return &f
}
