package scoreentry

import (
	"context"
	"errors"
	"net/http"
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"score-entry/biz/infrastructure/util/log"
	"score-entry/provider"

	"github.com/cloudwego/hertz/pkg/app"
)

// InvokeAgent 语音助手的唯一入口
// 鉴权失败403, 请求不完整400, 其余情况一律200并返回可朗读文本
func InvokeAgent(ctx context.Context, c *app.RequestContext) {
	p := provider.Get()
	authorization := string(c.GetHeader("Authorization"))
	if authorization != "Bearer "+p.Config.Auth.AgentSecretKey {
		log.CtxError(ctx, "非法调用, 密钥缺失或不正确")
		c.JSON(http.StatusForbidden, &score.AgentResp{Speech: "Lỗi bảo mật: Bạn không được phép truy cập."})
		return
	}

	var req score.AgentReq
	if err := c.BindAndValidate(&req); err != nil || req.FunctionName == "" || req.Args == nil {
		log.CtxError(ctx, "请求不完整: %v", err)
		c.JSON(http.StatusBadRequest, &score.AgentResp{Speech: "Lỗi: Yêu cầu không rõ ràng hoặc thiếu đối số."})
		return
	}

	resp, err := p.AgentService.Handle(ctx, &req)
	if err != nil {
		if errors.Is(err, consts.ErrInvalidParams) {
			c.JSON(http.StatusBadRequest, &score.AgentResp{Speech: "Lỗi: Yêu cầu không rõ ràng hoặc thiếu đối số."})
			return
		}
		log.CtxError(ctx, "处理语音请求失败, function=%s: %v", req.FunctionName, err)
		c.JSON(http.StatusInternalServerError, &score.AgentResp{Speech: "Đã có lỗi xảy ra phía máy chủ, vui lòng thử lại."})
		return
	}

	log.CtxInfo(ctx, "语音响应: %s", resp.Speech)
	c.JSON(http.StatusOK, resp)
}
