package basic

// Response 业务失败时的统一返回体
type Response struct {
	Code uint32 `json:"code"`
	Msg  string `json:"msg"`
}

type PaginationOptions struct {
	Page  *int64 `json:"page,omitempty"`
	Limit *int64 `json:"limit,omitempty"`
}

type UserMeta struct {
	UserId          string `json:"userId"`
	AppId           int64  `json:"appId"`
	DeviceId        string `json:"deviceId"`
	SessionUserId   string `json:"sessionUserId"`
	SessionAppId    int64  `json:"sessionAppId"`
	SessionDeviceId string `json:"sessionDeviceId"`
}

func (m *UserMeta) GetUserId() string {
	if m == nil {
		return ""
	}
	return m.UserId
}
