package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/simulation"
)

// ErrTokensDisabled is returned by the token-based operations of a service
// built without a StateTokenService.
var ErrTokensDisabled = errors.New("state tokens are not configured")

// Result is what the API returns for every simulation operation.
type Result struct {
	SimulationID string `json:"simulation_id,omitempty"`
	Token        string `json:"token,omitempty"`
	model.View
	Phase model.Phase           `json:"phase"`
	State model.SimulationState `json:"state"`
}

// SimulationService hosts the engine for the HTTP, WebSocket and terminal
// front ends. It enforces the presentation class-size range and logs each
// transition.
type SimulationService struct {
	engine       *simulation.Engine
	tokens       *StateTokenService
	maxClassSize int
	log          zerolog.Logger
}

// NewSimulationService creates a new SimulationService. tokens may be nil
// when only Sessions are used. maxClassSize <= 0 leaves class size unbounded.
func NewSimulationService(engine *simulation.Engine, tokens *StateTokenService, maxClassSize int, log zerolog.Logger) *SimulationService {
	return &SimulationService{
		engine:       engine,
		tokens:       tokens,
		maxClassSize: maxClassSize,
		log:          log.With().Str("component", "simulation_service").Logger(),
	}
}

// ─── Token-based operations (stateless HTTP) ───────────────────────────

// Start generates a new class and returns it sealed in a fresh token.
func (s *SimulationService) Start(classSize any, order model.SortOrder) (*Result, error) {
	id := uuid.New()
	view, state := s.start(id, classSize, order)
	return s.seal(id, view, state)
}

// Step applies a decision to the simulation sealed in token. An empty
// token means no simulation has been started; the engine's informational
// view is returned without a token.
func (s *SimulationService) Step(token string, decision model.Decision) (*Result, error) {
	if token == "" {
		view, state := s.engine.Step(decision, model.SimulationState{})
		return &Result{View: view, Phase: state.Phase(), State: state}, nil
	}

	id, state, err := s.open(token)
	if err != nil {
		return nil, err
	}
	view, next := s.step(id, decision, state)
	return s.seal(id, view, next)
}

// Finish locks the simulation sealed in token.
func (s *SimulationService) Finish(token string) (*Result, error) {
	if token == "" {
		view, state := s.engine.FinishEarly(model.SimulationState{})
		return &Result{View: view, Phase: state.Phase(), State: state}, nil
	}

	id, state, err := s.open(token)
	if err != nil {
		return nil, err
	}
	view, next := s.finish(id, state)
	return s.seal(id, view, next)
}

func (s *SimulationService) open(token string) (uuid.UUID, model.SimulationState, error) {
	if s.tokens == nil {
		return uuid.Nil, model.SimulationState{}, ErrTokensDisabled
	}
	id, state, err := s.tokens.Open(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("Rejected state token")
		return uuid.Nil, model.SimulationState{}, err
	}
	return id, state, nil
}

func (s *SimulationService) seal(id uuid.UUID, view model.View, state model.SimulationState) (*Result, error) {
	if s.tokens == nil {
		return nil, ErrTokensDisabled
	}
	token, err := s.tokens.Seal(id, state)
	if err != nil {
		return nil, fmt.Errorf("seal simulation %s: %w", id, err)
	}
	return &Result{
		SimulationID: id.String(),
		Token:        token,
		View:         view,
		Phase:        state.Phase(),
		State:        state,
	}, nil
}

// ─── Shared transitions ────────────────────────────────────────────────

func (s *SimulationService) start(id uuid.UUID, classSize any, order model.SortOrder) (model.View, model.SimulationState) {
	size := simulation.ClassSize(classSize)
	if s.maxClassSize >= simulation.MinClassSize && size > s.maxClassSize {
		size = s.maxClassSize
	}

	view, state := s.engine.Start(size, order)
	s.log.Debug().
		Str("simulation_id", id.String()).
		Int("class_size", size).
		Str("sort_order", string(state.SortOrder)).
		Msg("Simulation started")
	return view, state
}

func (s *SimulationService) step(id uuid.UUID, decision model.Decision, state model.SimulationState) (model.View, model.SimulationState) {
	view, next := s.engine.Step(decision, state)
	if next.TotalDecisions == state.TotalDecisions {
		return view, next
	}

	s.log.Debug().
		Str("simulation_id", id.String()).
		Str("decision", string(decision)).
		Int("pass", next.PassIndex).
		Int("position", next.PositionIndex).
		Int("swaps", next.SwapCount).
		Msg("Decision applied")
	if next.Finished {
		s.logFinished(id, next, false)
	}
	return view, next
}

func (s *SimulationService) finish(id uuid.UUID, state model.SimulationState) (model.View, model.SimulationState) {
	view, next := s.engine.FinishEarly(state)
	if next.Active() && !state.Finished {
		s.logFinished(id, next, true)
	}
	return view, next
}

func (s *SimulationService) logFinished(id uuid.UUID, state model.SimulationState, early bool) {
	s.log.Info().
		Str("simulation_id", id.String()).
		Bool("early", early).
		Bool("sorted", simulation.IsSorted(state.Roster, state.SortOrder)).
		Int("swaps", state.SwapCount).
		Int("correct", state.CorrectDecisions).
		Int("total", state.TotalDecisions).
		Float64("accuracy", simulation.Accuracy(state.CorrectDecisions, state.TotalDecisions)).
		Msg("Simulation finished")
}
