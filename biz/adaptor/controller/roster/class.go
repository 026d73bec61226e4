package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateClass(ctx context.Context, c *app.RequestContext) {
	var req score.CreateClassReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ClassService.CreateClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListClasses(ctx context.Context, c *app.RequestContext) {
	var req score.ListClassesReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.ClassService.ListClasses(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func GetClass(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.ClassService.GetClass(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

func UpdateClass(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateClassReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.ClassService.UpdateClass(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

func DeleteClass(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.ClassService.DeleteClass(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
