package types

import "fmt"

// ValidationError 请求级可恢复错误（画像未识别、字段形态不合法），
// 返回给调用方即可，不影响进程与其他请求。
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return e.Reason
}
