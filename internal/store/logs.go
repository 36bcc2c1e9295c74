package store

import (
	"fmt"
	"time"
)

// UploadLog 上传处理记录
type UploadLog struct {
	ID           int64     `json:"id"`
	SessionID    string    `json:"sessionId"`
	Filename     string    `json:"filename"`
	FileSize     int64     `json:"fileSize"`
	FormulaCount int       `json:"formulaCount"`
	VersionCount int       `json:"versionCount"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"errorMessage"`
	CreatedAt    time.Time `json:"createdAt"`
}

// StackLog 服务栈生成记录
type StackLog struct {
	ID             int64     `json:"id"`
	SessionID      string    `json:"sessionId"`
	ReleaseVersion string    `json:"releaseVersion"`
	ServiceCount   int       `json:"serviceCount"`
	CreatedAt      time.Time `json:"createdAt"`
}

// CreateUploadLog 创建上传日志，返回 upload_log_id
func (s *Store) CreateUploadLog(sessionID, filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO upload_logs (session_id, filename, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, 'processing')
	`, sessionID, filename, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get upload log id: %w", err)
	}
	return id, nil
}

// UpdateUploadLog 完成上传日志更新
func (s *Store) UpdateUploadLog(id int64, totalSheets, formulaCount, versionCount int, status, errorMessage string) error {
	_, err := s.db.Exec(`
		UPDATE upload_logs SET
			total_sheets = ?,
			formula_count = ?,
			version_count = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, formulaCount, versionCount, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update upload log: %w", err)
	}
	return nil
}

// CreateStackLog 记录一次服务栈生成
func (s *Store) CreateStackLog(sessionID, releaseVersion string, serviceCount int) error {
	_, err := s.db.Exec(`
		INSERT INTO stack_logs (session_id, release_version, service_count)
		VALUES (?, ?, ?)
	`, sessionID, releaseVersion, serviceCount)
	if err != nil {
		return fmt.Errorf("failed to create stack log: %w", err)
	}
	return nil
}

// ListUploadLogs 最近的上传记录（按时间倒序）
func (s *Store) ListUploadLogs(limit int) ([]UploadLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, filename, file_size, formula_count, version_count, status, error_message, created_at
		FROM upload_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list upload logs: %w", err)
	}
	defer rows.Close()

	logs := make([]UploadLog, 0)
	for rows.Next() {
		var l UploadLog
		if err := rows.Scan(&l.ID, &l.SessionID, &l.Filename, &l.FileSize,
			&l.FormulaCount, &l.VersionCount, &l.Status, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// ListStackLogs 最近的生成记录（按时间倒序）
func (s *Store) ListStackLogs(limit int) ([]StackLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, session_id, release_version, service_count, created_at
		FROM stack_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list stack logs: %w", err)
	}
	defer rows.Close()

	logs := make([]StackLog, 0)
	for rows.Next() {
		var l StackLog
		if err := rows.Scan(&l.ID, &l.SessionID, &l.ReleaseVersion, &l.ServiceCount, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// CountUploads 上传总数
func (s *Store) CountUploads() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM upload_logs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountStacks 生成总数
func (s *Store) CountStacks() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM stack_logs`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
