package score

// 语音助手网关的请求/响应
// 响应永远是一段可朗读的文本, 调用方不需要分支处理错误结构

type AgentReq struct {
	FunctionName string         `json:"functionName"`
	Args         map[string]any `json:"args"`
}

type AgentResp struct {
	Speech string `json:"speech"`
}

// 七个受支持操作各自的参数结构, 在入口处一次性解码
type UpdateStudentScoreArgs struct {
	StudentName string   `mapstructure:"studentName"`
	ExamName    string   `mapstructure:"examName"`
	NewScore    *float64 `mapstructure:"newScore"`
}

type GetStudentInfoArgs struct {
	StudentName string `mapstructure:"studentName"`
}

type CreateScanResultArgs struct {
	StudentName string   `mapstructure:"studentName"`
	MSSV        string   `mapstructure:"mssv"`
	Score       *float64 `mapstructure:"score"`
}

type UpdateScanResultArgs struct {
	Id          string   `mapstructure:"id"`
	StudentName string   `mapstructure:"studentName"`
	MSSV        string   `mapstructure:"mssv"`
	Score       *float64 `mapstructure:"score"`
}

type DeleteScanResultArgs struct {
	Id string `mapstructure:"id"`
}
