package websocket

import "github.com/madaris/school-app-backend/internal/service"

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestPayload is the envelope agents send upstream. The stream is
// mostly one-way; ping is the only supported action.
type RequestPayload struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventSubmission Event = "submission"
	EventError      Event = "error"
	EventPong       Event = "pong"
)

// SubmissionNotice wraps a registration submission event for agents
// watching the live stream.
type SubmissionNotice struct {
	Event      Event                              `json:"event"`
	Submission service.RegistrationSubmittedEvent `json:"submission"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
