package service

import (
	"context"
	"errors"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/lock"
	"score-entry/biz/infrastructure/scanstore"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScanService() (*ScanService, *fakeScanStore, *fakeSubmissionMapper, *fakeMutexFactory) {
	store := newFakeScanStore()
	subs := &fakeSubmissionMapper{}
	factory := &fakeMutexFactory{}
	return &ScanService{
		ScanStore:        store,
		SubmissionMapper: subs,
		LockFactory:      factory,
	}, store, subs, factory
}

func TestNormalizeRows(t *testing.T) {
	t.Run("empty subtree yields empty slice", func(t *testing.T) {
		rows := normalizeRows(map[string]map[string]any{})
		assert.Empty(t, rows)
	})

	t.Run("rows sorted by key, keyless dropped", func(t *testing.T) {
		rows := normalizeRows(map[string]map[string]any{
			"1700000002_b": {"fullName": "B", "studentId": "2", "score": 7.0},
			"1700000001_a": {"fullName": "A", "studentId": "1", "score": 9.0},
			"":             {"fullName": "ghost"},
		})
		require.Len(t, rows, 2)
		assert.Equal(t, "1700000001_a", rows[0].Id)
		assert.Equal(t, "1700000002_b", rows[1].Id)
	})

	t.Run("tolerant numeric parsing", func(t *testing.T) {
		rows := normalizeRows(map[string]map[string]any{
			"a": {"fullName": "A", "studentId": "1", "score": "8.5"},
			"b": {"fullName": "B", "studentId": "2", "score": "not a number"},
			"c": {"fullName": "C", "studentId": "3"},
		})
		require.Len(t, rows, 3)
		require.NotNil(t, rows[0].Score)
		assert.Equal(t, 8.5, *rows[0].Score)
		assert.Nil(t, rows[1].Score)
		assert.Nil(t, rows[2].Score)
	})

	t.Run("missing timestamp falls back to now", func(t *testing.T) {
		rows := normalizeRows(map[string]map[string]any{
			"a": {"fullName": "A", "studentId": "1", "score": 5.0},
		})
		require.Len(t, rows, 1)
		assert.NotEmpty(t, rows[0].Timestamp)
	})

	t.Run("handwriting sub scores carried through", func(t *testing.T) {
		rows := normalizeRows(map[string]map[string]any{
			"a": {"fullName": "A", "studentId": "1", "score": 5.0, "clarity": 7.5, "image_data": "base64data"},
		})
		require.Len(t, rows, 1)
		require.NotNil(t, rows[0].Clarity)
		assert.Equal(t, 7.5, *rows[0].Clarity)
		assert.Equal(t, "base64data", rows[0].ImageData)
	})
}

func TestScanService_Watch(t *testing.T) {
	t.Run("initial snapshot delivered", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		store.data["1_a"] = map[string]any{"fullName": "A", "studentId": "1", "score": 9.0}

		var got []*score.ScanRow
		unsubscribe := svc.Watch(context.Background(), func(rows []*score.ScanRow) {
			got = rows
		})
		defer unsubscribe()

		require.Len(t, got, 1)
		assert.Equal(t, "1_a", got[0].Id)
	})

	t.Run("subscribe failure delivers empty snapshot", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		store.readErr = errors.New("connection refused")

		delivered := false
		var got []*score.ScanRow
		unsubscribe := svc.Watch(context.Background(), func(rows []*score.ScanRow) {
			delivered = true
			got = rows
		})
		unsubscribe()

		assert.True(t, delivered)
		assert.Empty(t, got)
	})

	t.Run("writes trigger redelivery", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		deliveries := 0
		unsubscribe := svc.Watch(context.Background(), func(rows []*score.ScanRow) {
			deliveries++
		})
		defer unsubscribe()

		require.NoError(t, store.Write(context.Background(), "1_a", map[string]any{"fullName": "A"}))
		assert.Equal(t, 2, deliveries)
	})
}

func TestScanService_AddManual(t *testing.T) {
	t.Run("valid entry written with source", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		resp, err := svc.AddManual(context.Background(), &score.ManualScanReq{
			FullName: "Trần Thị B",
			MSSV:     "52100002",
			Score:    7.5,
		}, consts.SourceManualEntry)
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(resp.Id, "_52100002"))

		fields := store.data[resp.Id]
		require.NotNil(t, fields)
		assert.Equal(t, consts.SourceManualEntry, fields["source"])
		assert.Equal(t, 7.5, fields["score"])
	})

	t.Run("invalid entry rejected before write", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		_, err := svc.AddManual(context.Background(), &score.ManualScanReq{
			FullName: "",
			MSSV:     "52100002",
			Score:    7.5,
		}, consts.SourceManualEntry)
		require.Error(t, err)
		assert.Equal(t, 0, store.writeCalls)
	})
}

func TestScanService_UpdateScanResult(t *testing.T) {
	svc, store, _, _ := newScanService()
	store.data["1_a"] = map[string]any{"fullName": "A", "studentId": "1", "score": 5.0}

	t.Run("missing id rejected", func(t *testing.T) {
		err := svc.UpdateScanResult(context.Background(), &score.UpdateScanReq{})
		assert.ErrorIs(t, err, consts.ErrInvalidParams)
	})

	t.Run("empty patch rejected", func(t *testing.T) {
		err := svc.UpdateScanResult(context.Background(), &score.UpdateScanReq{Id: "1_a"})
		assert.ErrorIs(t, err, consts.ErrInvalidParams)
	})

	t.Run("score range enforced", func(t *testing.T) {
		err := svc.UpdateScanResult(context.Background(), &score.UpdateScanReq{Id: "1_a", Score: floatPtr(12)})
		assert.Error(t, err)
	})

	t.Run("partial merge stamps lastModified", func(t *testing.T) {
		err := svc.UpdateScanResult(context.Background(), &score.UpdateScanReq{Id: "1_a", Score: floatPtr(9)})
		require.NoError(t, err)
		assert.Equal(t, 9.0, store.data["1_a"]["score"])
		assert.Equal(t, "A", store.data["1_a"]["fullName"])
		assert.NotEmpty(t, store.data["1_a"]["lastModified"])
	})
}

func TestScanService_CommitAll(t *testing.T) {
	ctx := context.Background()

	t.Run("all rows persisted then store purged", func(t *testing.T) {
		svc, store, subs, factory := newScanService()
		// 已确认的三行加上一行未纳入提交的残留
		store.data["stale"] = map[string]any{"fullName": "Ghost"}
		req := &score.CommitScanReq{
			ClassId: "class1",
			ExamId:  "exam1",
			Rows: []*score.ScanRow{
				scanRow("A", "52100001", floatPtr(9)),
				scanRow("B", "52100002", floatPtr(7.5)),
				scanRow("C", "52100003", floatPtr(6)),
			},
		}

		resp, err := svc.CommitAll(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, int64(3), resp.Count)
		assert.NotEmpty(t, resp.BatchId)
		assert.Contains(t, resp.Msg, "3")

		require.Len(t, subs.subs, 3)
		for _, sub := range subs.subs {
			assert.Equal(t, "class1", sub.ClassID)
			assert.Equal(t, "exam1", sub.ExamID)
			assert.False(t, sub.Verified)
			assert.Equal(t, consts.SubmissionPending, sub.Status)
			assert.Contains(t, sub.ContentSummary, resp.BatchId)
			assert.Contains(t, sub.ContentSummary, "Python scan result from")
		}
		// 提交的学号是扫描页上的MSSV, 不做学生档案解析
		ids := []string{subs.subs[0].StudentID, subs.subs[1].StudentID, subs.subs[2].StudentID}
		assert.ElementsMatch(t, []string{"52100001", "52100002", "52100003"}, ids)

		assert.True(t, store.cleared)
		assert.Empty(t, store.data)
		assert.Equal(t, "commit:class1:exam1", factory.lastKey)
	})

	t.Run("missing class or exam rejected", func(t *testing.T) {
		svc, _, subs, _ := newScanService()
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{Rows: []*score.ScanRow{scanRow("A", "1", floatPtr(9))}})
		require.Error(t, err)
		assert.Equal(t, 0, subs.inserts)
	})

	t.Run("empty batch rejected", func(t *testing.T) {
		svc, _, _, _ := newScanService()
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{ClassId: "c", ExamId: "e"})
		assert.Error(t, err)
	})

	t.Run("one invalid row rejects whole batch", func(t *testing.T) {
		svc, store, subs, _ := newScanService()
		store.data["keep"] = map[string]any{"fullName": "K"}
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{
			ClassId: "c",
			ExamId:  "e",
			Rows: []*score.ScanRow{
				scanRow("A", "52100001", floatPtr(9)),
				scanRow("B", "52100002", floatPtr(11)),
			},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Điểm phải trong khoảng 0 - 10")
		assert.Contains(t, err.Error(), "B")
		assert.Contains(t, err.Error(), "52100002")
		assert.Equal(t, 0, subs.inserts)
		assert.False(t, store.cleared)
	})

	t.Run("insert failure keeps scan data", func(t *testing.T) {
		svc, store, subs, _ := newScanService()
		subs.failAfter = 2
		store.data["keep"] = map[string]any{"fullName": "K"}
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{
			ClassId: "c",
			ExamId:  "e",
			Rows: []*score.ScanRow{
				scanRow("A", "52100001", floatPtr(9)),
				scanRow("B", "52100002", floatPtr(7)),
			},
		})
		assert.ErrorIs(t, err, consts.ErrCommitScan)
		assert.False(t, store.cleared)
		assert.NotEmpty(t, store.data)
	})

	t.Run("concurrent commit blocked by lock", func(t *testing.T) {
		svc, _, subs, factory := newScanService()
		factory.mutex = &fakeMutex{lockErr: lock.ErrLockHeld}
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{
			ClassId: "c",
			ExamId:  "e",
			Rows:    []*score.ScanRow{scanRow("A", "52100001", floatPtr(9))},
		})
		assert.ErrorIs(t, err, consts.ErrOneCommit)
		assert.Equal(t, 0, subs.inserts)
	})

	t.Run("purge failure surfaced after save", func(t *testing.T) {
		svc, store, subs, _ := newScanService()
		store.clearErr = errors.New("redis down")
		_, err := svc.CommitAll(ctx, &score.CommitScanReq{
			ClassId: "c",
			ExamId:  "e",
			Rows:    []*score.ScanRow{scanRow("A", "52100001", floatPtr(9))},
		})
		assert.ErrorIs(t, err, consts.ErrPurgeScan)
		assert.Len(t, subs.subs, 1)
	})
}

func TestScanService_CheckScannerStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("missing status means offline", func(t *testing.T) {
		svc, _, _, _ := newScanService()
		resp, err := svc.CheckScannerStatus(ctx)
		require.NoError(t, err)
		assert.False(t, resp.Online)
	})

	t.Run("read error means offline", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		store.statusErr = errors.New("redis down")
		resp, err := svc.CheckScannerStatus(ctx)
		require.NoError(t, err)
		assert.False(t, resp.Online)
	})

	t.Run("heartbeat passed through", func(t *testing.T) {
		svc, store, _, _ := newScanService()
		store.status = &scanstore.ScannerStatus{Online: true, LastHeartbeat: "2025-03-01T08:00:00Z"}
		resp, err := svc.CheckScannerStatus(ctx)
		require.NoError(t, err)
		assert.True(t, resp.Online)
		assert.Equal(t, "2025-03-01T08:00:00Z", resp.LastHeartbeat)
	})
}
