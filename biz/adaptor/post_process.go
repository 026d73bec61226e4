package adaptor

import (
	"context"
	"net/http"
	"score-entry/biz/application/dto/basic"
	"score-entry/biz/infrastructure/util"
	"score-entry/biz/infrastructure/util/log"

	"github.com/cloudwego/hertz/pkg/app"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// PostProcess 统一出口: 记录请求日志, 把业务错误码映射到HTTP状态
func PostProcess(ctx context.Context, c *app.RequestContext, req, resp any, err error) {
	log.CtxInfo(ctx, "[%s] req=%s, resp=%s, err=%v", c.Path(), util.JSONF(req), util.JSONF(resp), err)
	if err == nil {
		c.JSON(http.StatusOK, resp)
		return
	}
	s, ok := status.FromError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, &basic.Response{
			Code: uint32(codes.Internal),
			Msg:  err.Error(),
		})
		return
	}
	c.JSON(httpStatusOf(s.Code()), &basic.Response{
		Code: uint32(s.Code()),
		Msg:  s.Message(),
	})
}

func httpStatusOf(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	}
	// 业务自定义码统一按参数类错误处理
	if code >= 1000 {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
