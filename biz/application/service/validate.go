package service

import (
	"score-entry/biz/application/dto/score"
	"score-entry/biz/infrastructure/consts"
	"strings"
)

// FieldErrors 校验结果, 字段名 → 提示语
type FieldErrors map[string]string

func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// 固定顺序, 保证 First 的结果可复现
var fieldOrder = []string{"fullName", "mssv", "score", "clarity", "spacing", "straightness"}

func (e FieldErrors) First() string {
	for _, field := range fieldOrder {
		if msg, ok := e[field]; ok {
			return msg
		}
	}
	return ""
}

// ValidateScanRow 校验一条扫描记录, 纯函数
// 每条规则对应独立的提示语, 不合并成笼统错误
func ValidateScanRow(row *score.ScanRow) FieldErrors {
	errs := make(FieldErrors)

	if strings.TrimSpace(row.FullName) == "" {
		errs["fullName"] = "Thiếu họ tên"
	}

	mssv := strings.TrimSpace(row.StudentId)
	if mssv == "" {
		errs["mssv"] = "Thiếu MSSV"
	} else if len([]rune(mssv)) > consts.MaxMSSVLength {
		errs["mssv"] = "MSSV không được quá 8 ký tự"
	}

	if row.Score == nil {
		errs["score"] = "Điểm chưa được nhập"
	} else if *row.Score < consts.MinScore || *row.Score > consts.MaxScore {
		errs["score"] = "Điểm phải trong khoảng 0 - 10"
	}

	// 手写质量分可选, 仅在存在时校验区间
	for field, value := range map[string]*float64{
		"clarity":      row.Clarity,
		"spacing":      row.Spacing,
		"straightness": row.Straightness,
	} {
		if value != nil && (*value < consts.MinScore || *value > consts.MaxScore) {
			errs[field] = "Điểm viết tay phải trong khoảng 0 - 10"
		}
	}

	return errs
}
