package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"relstack/internal/model"
)

// 空闲会话回收阈值
const defaultTTL = 2 * time.Hour

// ErrNotFound 会话不存在或已过期
var ErrNotFound = errors.New("session not found")

// Manager 会话管理器（内存态，进程退出即失效）
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

// NewManager 创建会话管理器
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ttl:      defaultTTL,
	}
}

// Create 创建新会话（Idle 状态）
func (m *Manager) Create(filename string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweepLocked()

	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		state:     model.StateIdle,
	}
	m.sessions[s.ID] = s
	return s
}

// Get 按 ID 查找会话
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove 删除会话并释放资源
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.Close()
		delete(m.sessions, id)
	}
}

// Count 当前会话数
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// sweepLocked 回收超时的空闲会话
// 时间戳必须经会话自身的锁读取：流水线协程随时可能推进会话状态
func (m *Manager) sweepLocked() {
	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.Touched().Before(cutoff) {
			s.Close()
			delete(m.sessions, id)
		}
	}
}
