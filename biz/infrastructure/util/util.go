package util

import (
	"encoding/json"
)

// JSONF 序列化为字符串, 仅用于日志
func JSONF(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}
