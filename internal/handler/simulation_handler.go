package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/middleware"
	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/response"
	"github.com/stemsi/marking-day/internal/service"
	"github.com/stemsi/marking-day/internal/validator"
)

// SimulationHandler exposes the simulation engine over stateless HTTP.
// The client carries the state between calls as a signed token.
type SimulationHandler struct {
	simService *service.SimulationService
	log        zerolog.Logger
}

// NewSimulationHandler creates a new SimulationHandler.
func NewSimulationHandler(simService *service.SimulationService, log zerolog.Logger) *SimulationHandler {
	return &SimulationHandler{
		simService: simService,
		log:        log.With().Str("component", "simulation_handler").Logger(),
	}
}

// StartSimulationRequest is the payload for generating a new class.
// ClassSize accepts numbers or numeric strings; anything else means 5.
type StartSimulationRequest struct {
	ClassSize any    `json:"class_size"`
	SortOrder string `json:"sort_order" binding:"omitempty,sortorder"`
}

// StepSimulationRequest is the payload for one swap/don't-swap decision.
type StepSimulationRequest struct {
	Decision string `json:"decision" binding:"required,decision"`
	Token    string `json:"token"`
}

// FinishSimulationRequest is the payload for finishing early.
type FinishSimulationRequest struct {
	Token string `json:"token"`
}

// StartSimulation godoc
// POST /api/v1/simulations
// Generates a random class and returns the first comparison.
func (h *SimulationHandler) StartSimulation(c *gin.Context) {
	var req StartSimulationRequest
	if fields := bindOptional(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	order := model.DefaultSortOrder
	if req.SortOrder != "" {
		order, _ = model.ParseSortOrder(req.SortOrder)
	}

	result, err := h.simService.Start(req.ClassSize, order)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// StepSimulation godoc
// POST /api/v1/simulations/step
// Applies a decision to the simulation carried by the token.
func (h *SimulationHandler) StepSimulation(c *gin.Context) {
	var req StepSimulationRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.simService.Step(resolveToken(c, req.Token), model.Decision(req.Decision))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// FinishSimulation godoc
// POST /api/v1/simulations/finish
// Ends the simulation where it stands and reports the summary.
func (h *SimulationHandler) FinishSimulation(c *gin.Context) {
	var req FinishSimulationRequest
	if fields := bindOptional(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.simService.Finish(resolveToken(c, req.Token))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *SimulationHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenExpired)
	case errors.Is(err, service.ErrTokenInvalid):
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
	default:
		h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("Simulation request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// resolveToken prefers the token in the body over a bearer header.
func resolveToken(c *gin.Context, bodyToken string) string {
	if bodyToken != "" {
		return bodyToken
	}
	return middleware.GetStateToken(c)
}

// bindOptional binds a JSON body when one was sent; an empty body leaves
// dst at its zero value.
func bindOptional(c *gin.Context, dst interface{}) map[string]string {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return validator.Bind(c, dst)
}
