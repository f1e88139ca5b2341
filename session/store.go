package session

import (
	"sync"

	"github.com/google/uuid"
)

// Store 管理所有活跃的浏览会话，每个会话拥有自己独立的 OrderSession
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*OrderSession
	notifier Notifier
}

func NewStore(notifier Notifier) *Store {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	return &Store{
		sessions: make(map[string]*OrderSession),
		notifier: notifier,
	}
}

// Create 创建新会话并返回
func (st *Store) Create() *OrderSession {
	s := NewOrderSession(uuid.NewString(), st.notifier)
	st.mu.Lock()
	st.sessions[s.ID()] = s
	st.mu.Unlock()
	return s
}

// Get 按会话 ID 查找
func (st *Store) Get(id string) (*OrderSession, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// GetOrCreate 查找会话，不存在时创建（令牌过期后重新开始）
func (st *Store) GetOrCreate(id string) *OrderSession {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[id]; ok {
		return s
	}
	s = NewOrderSession(id, st.notifier)
	st.sessions[id] = s
	return s
}
