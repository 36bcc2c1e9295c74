package model

// SessionState 会话状态机
// 线性流转：Idle → FileUploaded → Extracting → VersionSelection → Generating → StackReady
// 提取失败回到 Idle 并附带错误信息
type SessionState string

const (
	StateIdle             SessionState = "idle"
	StateFileUploaded     SessionState = "file_uploaded"
	StateExtracting       SessionState = "extracting"
	StateVersionSelection SessionState = "version_selection"
	StateGenerating       SessionState = "generating"
	StateStackReady       SessionState = "stack_ready"
)
