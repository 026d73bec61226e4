package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateEnrollment(ctx context.Context, c *app.RequestContext) {
	var req score.CreateEnrollmentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.EnrollmentService.CreateEnrollment(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListEnrollments(ctx context.Context, c *app.RequestContext) {
	var req score.ListEnrollmentsReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.EnrollmentService.ListEnrollments(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func DeleteEnrollment(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.EnrollmentService.DeleteEnrollment(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
