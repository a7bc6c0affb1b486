package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"rental-server/events"
	"rental-server/usecases"

	"github.com/gorilla/websocket"
)

// writeWait bounds how long one slow connection can hold up a publish.
const writeWait = 5 * time.Second

type subscriber struct {
	conn    *websocket.Conn
	viewer  usecases.Caller // zero value: anonymous
	agentID string          // guarded by Manager.mu; empty: every listing
	writeMu sync.Mutex
}

// canSee reports whether the subscriber may receive e. Listings that are not
// available only reach their owner and admins.
func (s *subscriber) canSee(e events.Event) bool {
	if e.Property == nil || e.Property.IsAvailable {
		return true
	}
	return usecases.CanModify(s.viewer, e.AgentID)
}

// Manager keeps track of dashboard websocket connections and pushes listing
// events to them.
type Manager struct {
	mu          sync.RWMutex
	subscribers map[string]*subscriber // subscriptionID -> subscriber
}

func NewManager() *Manager {
	return &Manager{subscribers: make(map[string]*subscriber)}
}

// Register adds a connection for viewer. A non-empty agentID limits delivery
// to that agent's listings. Registering an id again with the same connection
// only changes the filter; a different connection replaces and closes the
// old one.
func (m *Manager) Register(id string, viewer usecases.Caller, agentID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.subscribers[id]; ok {
		if old.conn == conn {
			old.viewer = viewer
			old.agentID = agentID
			return
		}
		_ = old.conn.Close()
	}
	m.subscribers[id] = &subscriber{conn: conn, viewer: viewer, agentID: agentID}
}

// UpdateFilter changes which agent's listings id receives. It reports false
// when id is not registered.
func (m *Manager) UpdateFilter(id, agentID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	sub, ok := m.subscribers[id]
	if ok {
		sub.agentID = agentID
	}
	return ok
}

// Unregister removes a connection.
func (m *Manager) Unregister(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sub, ok := m.subscribers[id]; ok {
		_ = sub.conn.Close()
		delete(m.subscribers, id)
	}
}

// drop removes id only while it still refers to sub.
func (m *Manager) drop(id string, sub *subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subscribers[id] == sub {
		delete(m.subscribers, id)
	}
	_ = sub.conn.Close()
}

// Count returns the number of open connections.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subscribers)
}

// Publish implements events.Publisher. Connections that fail to accept the
// message are dropped.
func (m *Manager) Publish(_ context.Context, e events.Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}

	m.mu.RLock()
	targets := make(map[string]*subscriber, len(m.subscribers))
	for id, sub := range m.subscribers {
		if (sub.agentID == "" || sub.agentID == e.AgentID) && sub.canSee(e) {
			targets[id] = sub
		}
	}
	m.mu.RUnlock()

	for id, sub := range targets {
		sub.writeMu.Lock()
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := sub.conn.WriteMessage(websocket.TextMessage, payload)
		sub.writeMu.Unlock()
		if err != nil {
			m.drop(id, sub)
		}
	}
	return nil
}
