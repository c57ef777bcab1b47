package collab

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// PresenceManager tracks the viewport each connected viewer last reported.
type PresenceManager struct {
	mu        sync.RWMutex
	viewports map[string]ViewportPayload // clientID -> viewport
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{
		viewports: make(map[string]ViewportPayload),
	}
}

func (pm *PresenceManager) Update(clientID string, v ViewportPayload) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.viewports[clientID] = v
}

func (pm *PresenceManager) Remove(clientID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.viewports, clientID)
}

func (pm *PresenceManager) GetAll() map[string]ViewportPayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()

	result := make(map[string]ViewportPayload, len(pm.viewports))
	for k, v := range pm.viewports {
		result[k] = v
	}
	return result
}

func (pm *PresenceManager) StateMessage() *Message {
	all := pm.GetAll()
	payload, err := json.Marshal(PresenceStatePayload{Viewers: all})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return &Message{
		Type:    TypePresenceState,
		Payload: payload,
	}
}
