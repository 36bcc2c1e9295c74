package pipeline

import (
	"errors"
	"fmt"
	"io"
	"time"

	"relstack/internal/classifier"
	"relstack/internal/config"
	"relstack/internal/model"
	"relstack/internal/service/excel"
	"relstack/internal/session"
	"relstack/internal/stack"
	"relstack/internal/store"
)

// Coordinator 处理流水线协调器：加载 → 版本 → 公式提取 → 分类
type Coordinator struct {
	cfg    config.ExcelConfig
	store  *store.Store
	mapper *stack.Mapper
}

// NewCoordinator 创建协调器
func NewCoordinator(cfg config.ExcelConfig, st *store.Store) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		store:  st,
		mapper: stack.NewMapper(cfg.ImageRepo),
	}
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/stage/info/warning/error/done
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

// ProcessOptions 上传处理选项
type ProcessOptions struct {
	Filename string
	FileSize int64
	FileHash string
}

// ExtractSummary 提取结果汇总
type ExtractSummary struct {
	SessionID    string   `json:"sessionId"`
	TotalSheets  int      `json:"totalSheets"`
	FormulaCount int      `json:"formulaCount"`
	VersionCount int      `json:"versionCount"`
	Warnings     []string `json:"warnings"`
}

// Process 处理上传的工作簿，返回进度通道
// 格式错误为致命错误：发出 error 事件，会话回到 Idle
func (c *Coordinator) Process(sess *session.Session, reader io.Reader, opts ProcessOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doProcess(sess, reader, opts, progressChan)
	}()

	return progressChan
}

// doProcess 执行处理逻辑
func (c *Coordinator) doProcess(sess *session.Session, reader io.Reader, opts ProcessOptions, progressChan chan ProgressEvent) {
	logID, logErr := c.store.CreateUploadLog(sess.ID, opts.Filename, opts.FileSize, opts.FileHash)
	if logErr != nil {
		// 历史日志失败不阻断处理
		logID = 0
	}

	c.send(progressChan, ProgressEvent{
		Type:    "start",
		Message: "开始处理 Excel 文件",
		Data: map[string]string{
			"filename": opts.Filename,
		},
		Timestamp: time.Now(),
	})

	_ = sess.Transition(model.StateFileUploaded)

	// 加载工作簿
	c.send(progressChan, ProgressEvent{
		Type:      "stage",
		Message:   "正在加载 Excel 文件...",
		Timestamp: time.Now(),
	})

	wb, err := excel.Open(reader)
	if err != nil {
		c.fail(sess, progressChan, logID, fmt.Sprintf("打开文件失败: %v", err))
		return
	}
	sess.SetWorkbook(wb)

	sheetNames := wb.SheetNames()
	c.send(progressChan, ProgressEvent{
		Type:    "info",
		Message: fmt.Sprintf("发现 %d 个工作表", len(sheetNames)),
		Data: map[string]interface{}{
			"sheets": sheetNames,
		},
		Timestamp: time.Now(),
	})

	_ = sess.Transition(model.StateExtracting)

	// 提取版本列表
	c.send(progressChan, ProgressEvent{
		Type:      "stage",
		Message:   "正在提取版本列表...",
		Timestamp: time.Now(),
	})

	warnings := make([]string, 0)

	versions, err := wb.ReleaseVersions(c.cfg.ReleaseIndexSheet, c.cfg.ReleaseIndexCell)
	if err != nil {
		if !excel.IsNotFound(err) {
			c.fail(sess, progressChan, logID, fmt.Sprintf("提取版本失败: %v", err))
			return
		}
		// 缺失工作表：空结果继续
		warnings = append(warnings, err.Error())
		versions = []string{}
		c.send(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   err.Error(),
			Timestamp: time.Now(),
		})
	}
	if len(versions) == 0 {
		msg := fmt.Sprintf("工作表 %s 的 %s 起始位置未找到版本", c.cfg.ReleaseIndexSheet, c.cfg.ReleaseIndexCell)
		warnings = append(warnings, msg)
		c.send(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   msg,
			Timestamp: time.Now(),
		})
	} else {
		c.send(progressChan, ProgressEvent{
			Type:    "info",
			Message: fmt.Sprintf("发现 %d 个版本", len(versions)),
			Data: map[string]interface{}{
				"version_count": len(versions),
			},
			Timestamp: time.Now(),
		})
	}

	// 提取并分类公式
	c.send(progressChan, ProgressEvent{
		Type:      "stage",
		Message:   "正在提取公式...",
		Timestamp: time.Now(),
	})

	records, missing := wb.ExtractFormulas(c.cfg.TargetSheets, c.cfg.NameColumn)
	for _, name := range missing {
		nf := &excel.NotFoundError{Kind: "sheet", Name: name}
		warnings = append(warnings, nf.Error())
		c.send(progressChan, ProgressEvent{
			Type:      "warning",
			Message:   nf.Error(),
			Timestamp: time.Now(),
		})
	}

	for i := range records {
		records[i].Category = classifier.Classify(records[i].RawFormula)
	}

	sess.SetExtraction(versions, records, warnings)
	_ = sess.Transition(model.StateVersionSelection)

	if logID > 0 {
		_ = c.store.UpdateUploadLog(logID, len(sheetNames), len(records), len(versions), "success", "")
	}

	c.send(progressChan, ProgressEvent{
		Type:    "done",
		Message: "处理完成",
		Data: ExtractSummary{
			SessionID:    sess.ID,
			TotalSheets:  len(sheetNames),
			FormulaCount: len(records),
			VersionCount: len(versions),
			Warnings:     warnings,
		},
		Timestamp: time.Now(),
	})
}

// fail 致命错误：记录日志、会话复位、发出 error 事件
func (c *Coordinator) fail(sess *session.Session, progressChan chan ProgressEvent, logID int64, message string) {
	sess.Fail(message)
	if logID > 0 {
		_ = c.store.UpdateUploadLog(logID, 0, 0, 0, "error", message)
	}
	c.send(progressChan, ProgressEvent{
		Type:      "error",
		Message:   message,
		Timestamp: time.Now(),
	})
}

// Generate 将选中版本写入工作簿并生成服务栈
// 可在 StackReady 状态下重复调用（重新选择版本）
func (c *Coordinator) Generate(sess *session.Session, version string) ([]model.ServiceDescriptor, error) {
	if version == "" {
		return nil, errors.New("请先选择一个版本")
	}

	wb := sess.Workbook()
	if wb == nil {
		return nil, errors.New("会话中没有已加载的工作簿")
	}

	if err := sess.Transition(model.StateGenerating); err != nil {
		return nil, err
	}

	// 写入选中版本后重新提取公式（仅修改内存中的工作簿）
	if err := wb.SetReleaseVersion(c.cfg.VersionInputSheet, c.cfg.VersionInputCell, version); err != nil {
		if !excel.IsNotFound(err) {
			sess.Fail(fmt.Sprintf("写入版本失败: %v", err))
			return nil, err
		}
		// 版本输入表缺失：按空结果继续
	}

	records, _ := wb.ExtractFormulas(c.cfg.TargetSheets, c.cfg.NameColumn)
	for i := range records {
		records[i].Category = classifier.Classify(records[i].RawFormula)
	}

	descriptors := c.mapper.Build(records, version)

	sess.SetStack(version, records, descriptors)
	if err := sess.Transition(model.StateStackReady); err != nil {
		return nil, err
	}

	_ = c.store.CreateStackLog(sess.ID, version, len(descriptors))

	return descriptors, nil
}

// send 发送进度事件（通道已满时丢弃）
func (c *Coordinator) send(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
	}
}
