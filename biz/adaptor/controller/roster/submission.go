package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateSubmission(ctx context.Context, c *app.RequestContext) {
	var req score.CreateSubmissionReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.CreateSubmission(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListSubmissions(ctx context.Context, c *app.RequestContext) {
	var req score.ListSubmissionsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.SubmissionService.ListSubmissions(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func UpdateSubmissionScore(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateScoreReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.SubmissionService.UpdateScore(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

func VerifySubmission(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.SubmissionService.VerifySubmission(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}

func DeleteSubmission(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.SubmissionService.DeleteSubmission(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
