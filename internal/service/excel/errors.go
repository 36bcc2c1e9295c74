package excel

import (
	"errors"
	"fmt"
)

// FormatError 工作簿不是合法的 xlsx 压缩包（致命，整条流水线中止，需重新上传）
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("工作簿格式无效: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NotFoundError 缺少预期的工作表或单元格区域（可恢复，按空结果继续并提示）
type NotFoundError struct {
	Kind string // sheet / cell
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("未找到%s: %s", kindLabel(e.Kind), e.Name)
}

func kindLabel(kind string) string {
	switch kind {
	case "sheet":
		return "工作表"
	case "cell":
		return "单元格"
	default:
		return kind
	}
}

// IsFormat 判断是否为格式错误
func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsNotFound 判断是否为缺失错误
func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
