package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateExam(ctx context.Context, c *app.RequestContext) {
	var req score.CreateExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.CreateExam(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListExams(ctx context.Context, c *app.RequestContext) {
	var req score.ListExamsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ExamService.ListExams(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateExam(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateExamReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.ExamService.UpdateExam(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

func DeleteExam(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.ExamService.DeleteExam(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
