package service

import (
	"github.com/google/uuid"
	"github.com/stemsi/marking-day/internal/model"
)

// Session holds one simulation for a single owner, such as a WebSocket
// connection or the terminal trainer. It is not safe for concurrent use.
type Session struct {
	svc   *SimulationService
	id    uuid.UUID
	state model.SimulationState
}

// NewSession creates a session with no simulation started.
func (s *SimulationService) NewSession() *Session {
	return &Session{svc: s}
}

// Start replaces whatever simulation the session held with a new class.
func (ss *Session) Start(classSize any, order model.SortOrder) model.View {
	ss.id = uuid.New()
	view, state := ss.svc.start(ss.id, classSize, order)
	ss.state = state
	return view
}

// Step applies a decision to the current simulation.
func (ss *Session) Step(decision model.Decision) model.View {
	view, state := ss.svc.step(ss.id, decision, ss.state)
	ss.state = state
	return view
}

// Finish locks the current simulation.
func (ss *Session) Finish() model.View {
	view, state := ss.svc.finish(ss.id, ss.state)
	ss.state = state
	return view
}

// ID returns the current simulation id, or the zero UUID before Start.
func (ss *Session) ID() uuid.UUID { return ss.id }

// State returns a copy of the current simulation state.
func (ss *Session) State() model.SimulationState { return ss.state.Clone() }
