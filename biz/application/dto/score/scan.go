package score

// ScanRow 一条待确认的扫描成绩, 由设备或人工录入产生
// 数值字段缺失时保持为 nil, 不做默认值填充
type ScanRow struct {
	Id           string   `json:"id"`
	FullName     string   `json:"fullName"`
	StudentId    string   `json:"studentId"`
	Score        *float64 `json:"score"`
	Timestamp    string   `json:"timestamp"`
	Source       string   `json:"source,omitempty"`
	LastModified string   `json:"lastModified,omitempty"`
	ImageData    string   `json:"imageData,omitempty"`
	Clarity      *float64 `json:"clarity,omitempty"`
	Spacing      *float64 `json:"spacing,omitempty"`
	Straightness *float64 `json:"straightness,omitempty"`
}

type CommitScanReq struct {
	ClassId string     `json:"classId"`
	ExamId  string     `json:"examId"`
	Rows    []*ScanRow `json:"rows"`
}

type CommitScanResp struct {
	Count   int64  `json:"count"`
	BatchId string `json:"batchId"`
	Msg     string `json:"msg"`
}

type ManualScanReq struct {
	FullName     string   `json:"fullName"`
	MSSV         string   `json:"mssv"`
	Score        float64  `json:"score"`
	Clarity      *float64 `json:"clarity,omitempty"`
	Spacing      *float64 `json:"spacing,omitempty"`
	Straightness *float64 `json:"straightness,omitempty"`
}

type ManualScanResp struct {
	Id string `json:"id"`
}

type UpdateScanReq struct {
	Id       string   `json:"id" path:"id"`
	FullName *string  `json:"fullName,omitempty"`
	MSSV     *string  `json:"mssv,omitempty"`
	Score    *float64 `json:"score,omitempty"`
}

type ScannerStatusResp struct {
	Online        bool   `json:"online"`
	LastHeartbeat string `json:"lastHeartbeat,omitempty"`
}

type Response struct {
	Msg string `json:"msg"`
}
