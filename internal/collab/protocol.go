package collab

import "encoding/json"

type Message struct {
	Type     string          `json:"type"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
}

const (
	TypePresenceState = "presence.state"
	TypePresenceJoin  = "presence.join"
	TypePresenceLeave = "presence.leave"
	TypeError         = "error"

	// Connection
	TypeWelcome = "welcome"

	// Rendering
	TypeFrame          = "frame"
	TypeViewportUpdate = "viewport.update"

	// Operation message types
	TypeOpSubmit = "op.submit"
	TypeOpCancel = "op.cancel"
	TypeOpAck    = "op.ack"
	TypeOpNack   = "op.nack"
)

// WelcomePayload is sent once to a client right after it joins.
type WelcomePayload struct {
	ClientID   string `json:"clientId"`
	CanControl bool   `json:"canControl"`
	Frames     int    `json:"frames"` // default frame budget for op.submit
}

// ViewportPayload is a viewer's canvas size in pixels.
type ViewportPayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type PresenceStatePayload struct {
	Viewers map[string]ViewportPayload `json:"viewers"`
}

type PresenceJoinPayload struct {
	ClientID   string `json:"clientId"`
	CanControl bool   `json:"canControl"`
}

type PresenceLeavePayload struct {
	ClientID string `json:"clientId"`
}

// OperationSubmitPayload is the payload for op.submit messages. Frames falls
// back to the hub default when omitted.
type OperationSubmitPayload struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Z      float64 `json:"z"`
	Frames *int    `json:"frames,omitempty"`
}

// OperationAckPayload is the payload for op.ack messages
type OperationAckPayload struct {
	Kind      string `json:"kind"`
	Text      string `json:"text"`
	Remaining int    `json:"remaining"`
}

// OperationNackPayload is the payload for op.nack messages
type OperationNackPayload struct {
	Reason string `json:"reason"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
