package storage

import "sync"

// Event 推送给订阅者的会话事件，SSE 端点直接转发
type Event struct {
	Type      string `json:"type"` // phase / enrichment / message / conflicts / report / error
	SessionID string `json:"sessionId"`
	Payload   any    `json:"payload,omitempty"`
}

// Hub 进程内的事件分发器。
// 每个订阅者持有一个带缓冲的通道，缓冲满时丢弃事件而不是阻塞发布方，
// 客户端断线重连后通过 ListMessages 补齐完整时间线。
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe 订阅某个会话的事件流，返回的取消函数幂等
func (h *Hub) Subscribe(sessionID string) (<-chan Event, func()) {
	ch := make(chan Event, 64)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan Event]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[sessionID], ch)
			if len(h.subs[sessionID]) == 0 {
				delete(h.subs, sessionID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish 向会话的所有订阅者广播事件，从不阻塞
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[ev.SessionID] {
		select {
		case ch <- ev:
		default:
		}
	}
}
