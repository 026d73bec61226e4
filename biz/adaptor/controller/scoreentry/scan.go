package scoreentry

import (
	"context"
	"encoding/json"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/util/log"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/sse"
)

// GetScanResults 拉取当前扫描快照
func GetScanResults(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	rows, err := p.ScanService.GetScanResults(ctx)
	adaptor.PostProcess(ctx, c, nil, rows, err)
}

// StreamScanResults 扫描数据的SSE推送, 每次变化推整棵快照
func StreamScanResults(ctx context.Context, c *app.RequestContext) {
	c.SetStatusCode(http.StatusOK)
	w := sse.NewWriter(c)

	rowsChan := make(chan []*score.ScanRow, 16)
	p := provider.Get()
	unsubscribe := p.ScanService.Watch(ctx, func(rows []*score.ScanRow) {
		// 消费慢时丢掉旧快照, 永远推最新的
		select {
		case rowsChan <- rows:
		default:
			select {
			case <-rowsChan:
			default:
			}
			rowsChan <- rows
		}
	})
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case rows := <-rowsChan:
			payload, err := json.Marshal(rows)
			if err != nil {
				log.CtxError(ctx, "序列化扫描快照失败: %v", err)
				continue
			}
			if err = w.WriteEvent("", "", payload); err != nil {
				log.Error("发送SSE事件失败: %v", err)
				return
			}
		}
	}
}

// GetScannerStatus 扫描端在线状态
func GetScannerStatus(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.ScanService.CheckScannerStatus(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

// AddManual 人工补录一条扫描记录
func AddManual(ctx context.Context, c *app.RequestContext) {
	var req score.ManualScanReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ScanService.AddManual(ctx, &req, consts.SourceManualEntry)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

// UpdateScanResult 修改一条扫描记录
func UpdateScanResult(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateScanReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.ScanService.UpdateScanResult(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

// DeleteScanResult 删除一条扫描记录
func DeleteScanResult(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.ScanService.DeleteScanResult(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}

// ClearScanResults 清空扫描数据
func ClearScanResults(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	err := p.ScanService.ClearAll(ctx)
	adaptor.PostProcess(ctx, c, nil, &score.Response{Msg: "ok"}, err)
}

// CommitScanResults 把整批扫描成绩落库并清空临时数据
func CommitScanResults(ctx context.Context, c *app.RequestContext) {
	var req score.CommitScanReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ScanService.CommitAll(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}
