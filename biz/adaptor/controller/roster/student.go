package roster

import (
	"context"
	"net/http"
	"score-entry/biz/adaptor"
	"score-entry/biz/application/dto/score"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

func CreateStudent(ctx context.Context, c *app.RequestContext) {
	var req score.CreateStudentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	p := provider.Get()
	resp, err := p.StudentService.CreateStudent(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, resp, err)
}

func ListStudents(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	resp, err := p.StudentService.ListStudents(ctx)
	adaptor.PostProcess(ctx, c, nil, resp, err)
}

func GetStudent(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	resp, err := p.StudentService.GetStudent(ctx, id)
	adaptor.PostProcess(ctx, c, id, resp, err)
}

func UpdateStudent(ctx context.Context, c *app.RequestContext) {
	var req score.UpdateStudentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	req.Id = c.Param("id")
	p := provider.Get()
	err := p.StudentService.UpdateStudent(ctx, &req)
	adaptor.PostProcess(ctx, c, &req, &score.Response{Msg: "ok"}, err)
}

func DeleteStudent(ctx context.Context, c *app.RequestContext) {
	id := c.Param("id")
	p := provider.Get()
	err := p.StudentService.DeleteStudent(ctx, id)
	adaptor.PostProcess(ctx, c, id, &score.Response{Msg: "ok"}, err)
}
