package collab

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/wirecanvas/wirecanvas/internal/engine"
)

var errControlRequired = errors.New("control session required")

// Hub drives the animation and fans each frame out to every connected viewer.
// All clients share the one world held by the engine.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // clientID -> client
	presence *PresenceManager

	eng      *engine.Engine
	frames   int
	interval time.Duration

	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub that ticks eng every interval. frames is the budget
// used for op.submit messages that do not name one.
func NewHub(eng *engine.Engine, frames int, interval time.Duration) *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		presence:   NewPresenceManager(),
		eng:        eng,
		frames:     frames,
		interval:   interval,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the animation loop. It returns when ctx is done, closing every
// client's send queue on the way out.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer func() {
		ticker.Stop()
		h.closeAll()
		close(h.done)
	}()

	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ticker.C:
			h.tick()
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// tick advances the engine one frame and broadcasts the result.
func (h *Hub) tick() {
	h.eng.Tick()
	if h.eng.StopIfExhausted() {
		slog.Debug("operation finished", "text", h.eng.OperationText())
	}

	if h.clientCount() == 0 {
		return
	}
	h.broadcastFrame()
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	client.Send(newMessage(TypeWelcome, WelcomePayload{
		ClientID:   client.ClientID,
		CanControl: client.CanControl(),
		Frames:     h.frames,
	}))

	if stateMsg := h.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}
	client.Send(h.frameMessage())

	h.broadcast(newMessage(TypePresenceJoin, PresenceJoinPayload{
		ClientID:   client.ClientID,
		CanControl: client.CanControl(),
	}), client.ClientID)

	slog.Info("client joined", "client", client.ClientID, "control", client.CanControl())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	h.presence.Remove(client.ClientID)

	h.broadcast(newMessage(TypePresenceLeave, PresenceLeavePayload{
		ClientID: client.ClientID,
	}), "")

	slog.Info("client left", "client", client.ClientID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeOpCancel:
		h.handleOpCancel(sender)
	case TypeViewportUpdate:
		h.handleViewportUpdate(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "client", sender.ClientID)
		h.reply(sender, newMessage(TypeError, ErrorPayload{Message: "unknown message type: " + msg.Type}))
	}
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	if !sender.CanControl() {
		h.reply(sender, nack(errControlRequired))
		return
	}

	var req OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		h.reply(sender, nack(err))
		return
	}

	op, err := engine.ParseOperation(req.Kind, req.X, req.Y, req.Z)
	if err != nil {
		h.reply(sender, nack(err))
		return
	}

	frames := h.frames
	if req.Frames != nil {
		frames = *req.Frames
	}

	if err := h.eng.SetUpOperation(op, frames); err != nil {
		h.reply(sender, nack(err))
		return
	}

	slog.Info("operation set up", "kind", op.Kind(), "frames", frames, "session", sender.SessionID)
	h.reply(sender, h.ack())
}

func (h *Hub) handleOpCancel(sender *Client) {
	if !sender.CanControl() {
		h.reply(sender, nack(errControlRequired))
		return
	}

	h.eng.Cancel()
	h.reply(sender, h.ack())
}

func (h *Hub) handleViewportUpdate(sender *Client, msg *Message) {
	var vp ViewportPayload
	if err := json.Unmarshal(msg.Payload, &vp); err != nil {
		slog.Warn("invalid viewport payload", "error", err)
		return
	}
	if vp.Width <= 0 || vp.Height <= 0 {
		h.reply(sender, newMessage(TypeError, ErrorPayload{Message: "width and height must be positive"}))
		return
	}

	h.presence.Update(sender.ClientID, vp)
	h.eng.SetViewport(vp.Width, vp.Height)

	if stateMsg := h.presence.StateMessage(); stateMsg != nil {
		h.broadcast(stateMsg, "")
	}
}

func (h *Hub) ack() *Message {
	s := h.eng.State()
	return newMessage(TypeOpAck, OperationAckPayload{
		Kind:      s.Op.Kind(),
		Text:      s.Text,
		Remaining: s.Remaining,
	})
}

func (h *Hub) frameMessage() *Message {
	payload, err := engine.FrameToJSON(h.eng.Frame())
	if err != nil {
		slog.Error("encode frame", "error", err)
		return newMessage(TypeError, ErrorPayload{Message: "frame not encodable"})
	}
	return &Message{Type: TypeFrame, Payload: json.RawMessage(payload)}
}

func (h *Hub) broadcastFrame() {
	h.broadcast(h.frameMessage(), "")
}

// broadcast marshals msg once and queues it for every client except
// excludeClientID.
func (h *Hub) broadcast(msg *Message, excludeClientID string) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id, c := range h.clients {
		if id != excludeClientID {
			c.sendRaw(data)
		}
	}
}

// reply queues msg for one client if it is still connected.
func (h *Hub) reply(c *Client, msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, ok := h.clients[c.ClientID]; ok {
		c.sendRaw(data)
	}
}

func nack(err error) *Message {
	return newMessage(TypeOpNack, OperationNackPayload{Reason: err.Error()})
}

func newMessage(msgType string, payload interface{}) *Message {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", msgType)
		data = []byte("null")
	}
	return &Message{Type: msgType, Payload: data}
}
