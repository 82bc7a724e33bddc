package websocket

import "github.com/stemsi/marking-day/internal/model"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionStart    Action = "start"
	ActionSwap     Action = "swap"
	ActionDontSwap Action = "dont_swap"
	ActionFinish   Action = "finish"
	ActionPing     Action = "ping"
)

// RequestPayload is the union of all client messages. Only start reads
// the class size and sort order.
type RequestPayload struct {
	Action    Action `json:"action"`
	ClassSize any    `json:"class_size,omitempty"`
	SortOrder string `json:"sort_order,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventView  Event = "view"
	EventError Event = "error"
	EventPong  Event = "pong"
)

// ViewResponse carries the result of start, swap, dont_swap and finish.
type ViewResponse struct {
	Event        Event  `json:"event"`
	SimulationID string `json:"simulation_id,omitempty"`
	model.View
	Phase model.Phase           `json:"phase"`
	State model.SimulationState `json:"state"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
