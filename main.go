package main

import (
	"context"
	"score-entry/biz/adaptor"
	"score-entry/biz/infrastructure/config"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	provider.Init()
	c := config.GetConfig()

	h := server.Default(server.WithHostPorts(c.ListenOn))
	// handler内通过context拿到hertz的请求上下文
	h.Use(func(ctx context.Context, c *app.RequestContext) {
		ctx = adaptor.InjectContext(ctx, c)
		c.Next(ctx)
	})
	customizedRegister(h)
	h.Spin()
}
