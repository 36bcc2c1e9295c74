package session

import (
	"fmt"
	"sync"
	"time"

	"relstack/internal/model"
	"relstack/internal/service/excel"
)

// Session 单次交互会话：一个上传的工作簿 + 其提取/生成结果
// 各会话相互独立；新上传产生新会话，不共享任何可变状态
type Session struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	mu sync.Mutex

	state           model.SessionState
	lastError       string
	workbook        *excel.Workbook
	sheetNames      []string
	versions        []string
	records         []model.FormulaRecord
	warnings        []string
	selectedVersion string
	stack           []model.ServiceDescriptor
}

// allowedTransitions 状态机允许的流转（线性，无分支）
// 任一状态都允许回到 Idle（提取失败时复位）
var allowedTransitions = map[model.SessionState]model.SessionState{
	model.StateIdle:             model.StateFileUploaded,
	model.StateFileUploaded:     model.StateExtracting,
	model.StateExtracting:       model.StateVersionSelection,
	model.StateVersionSelection: model.StateGenerating,
	model.StateGenerating:       model.StateStackReady,
}

// Transition 推进状态机
// StackReady → Generating 允许重复生成（重新选择版本）
func (s *Session) Transition(to model.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if to == model.StateIdle {
		s.state = model.StateIdle
		s.UpdatedAt = time.Now()
		return nil
	}
	if s.state == model.StateStackReady && to == model.StateGenerating {
		s.state = to
		s.UpdatedAt = time.Now()
		return nil
	}
	if allowedTransitions[s.state] != to {
		return fmt.Errorf("非法状态流转: %s → %s", s.state, to)
	}
	s.state = to
	s.UpdatedAt = time.Now()
	return nil
}

// Touched 最近一次状态或数据变更的时间（管理器回收判定用）
func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.UpdatedAt
}

// State 当前状态
func (s *Session) State() model.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Fail 提取失败：回到 Idle 并记录错误信息
func (s *Session) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = model.StateIdle
	s.lastError = message
	s.UpdatedAt = time.Now()
}

// LastError 最近一次失败信息
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// SetWorkbook 绑定工作簿（替换旧工作簿时先关闭）
func (s *Session) SetWorkbook(wb *excel.Workbook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook != nil {
		_ = s.workbook.Close()
	}
	s.workbook = wb
	if wb != nil {
		s.sheetNames = wb.SheetNames()
	}
}

// Workbook 当前工作簿
func (s *Session) Workbook() *excel.Workbook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workbook
}

// SheetNames 工作簿中的全部工作表名
func (s *Session) SheetNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.sheetNames...)
}

// SetExtraction 记录提取结果
func (s *Session) SetExtraction(versions []string, records []model.FormulaRecord, warnings []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions = versions
	s.records = records
	s.warnings = warnings
	s.UpdatedAt = time.Now()
}

// Versions 提取到的版本列表
func (s *Session) Versions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.versions...)
}

// Records 分类后的公式记录
func (s *Session) Records() []model.FormulaRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FormulaRecord(nil), s.records...)
}

// Warnings 提取阶段的警告（缺失工作表等）
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// SetStack 记录生成结果
func (s *Session) SetStack(version string, records []model.FormulaRecord, stack []model.ServiceDescriptor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedVersion = version
	s.records = records
	s.stack = stack
	s.UpdatedAt = time.Now()
}

// SelectedVersion 选中的版本
func (s *Session) SelectedVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedVersion
}

// Stack 生成的服务列表
func (s *Session) Stack() []model.ServiceDescriptor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ServiceDescriptor(nil), s.stack...)
}

// Close 释放会话持有的工作簿
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workbook != nil {
		_ = s.workbook.Close()
		s.workbook = nil
	}
}
