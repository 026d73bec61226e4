package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateTeacher(ctx context.Context, c *app.RequestContext) {
	var req score.CreateTeacherReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.TeacherService.CreateTeacher(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListTeachers(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.TeacherService.ListTeachers(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

func UpdateTeacher(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateTeacherReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.TeacherService.UpdateTeacher(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

func DeleteTeacher(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.TeacherService.DeleteTeacher(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
