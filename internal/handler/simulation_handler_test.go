package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/middleware"
	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/service"
	"github.com/stemsi/marking-day/internal/simulation"
)

func newSimRouter(t *testing.T, grades ...int) *gin.Engine {
	t.Helper()
	h := NewSimulationHandler(newTestSimService(t, grades...), zerolog.Nop())
	r := gin.New()
	r.Use(middleware.StateToken())
	r.POST("/simulations", h.StartSimulation)
	r.POST("/simulations/step", h.StepSimulation)
	r.POST("/simulations/finish", h.FinishSimulation)
	return r
}

func TestStartSimulation(t *testing.T) {
	r := newSimRouter(t, 50, 30, 40)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations",
		gin.H{"class_size": "3", "sort_order": "ascending"}, nil)

	if code != http.StatusCreated {
		t.Fatalf("status = %d, error = %+v", code, env.Error)
	}
	res := env.Data
	if res.Token == "" || res.SimulationID == "" || res.Phase != model.PhaseInProgress {
		t.Fatalf("result = %+v", res)
	}
	if res.RosterText != "[Student 1 (50), Student 2 (30), Student 3 (40)]" {
		t.Fatalf("roster text = %q", res.RosterText)
	}
	if !strings.HasSuffix(res.ComparisonText, "Bubble Sort rule for this comparison: Swap") {
		t.Fatalf("comparison text = %q", res.ComparisonText)
	}
	if res.Comparison == nil || res.Comparison.Left.Grade != 50 {
		t.Fatalf("comparison = %+v", res.Comparison)
	}
}

func TestStartSimulationDefaults(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations", nil, nil)
	if code != http.StatusCreated {
		t.Fatalf("status = %d", code)
	}
	if len(env.Data.State.Roster) != simulation.DefaultClassSize || env.Data.State.SortOrder != model.SortDescending {
		t.Fatalf("state = %+v", env.Data.State)
	}

	code, env = doJSON[service.Result](t, r, http.MethodPost, "/simulations",
		gin.H{"class_size": "many", "sort_order": "Lowest to highest"}, nil)
	if code != http.StatusCreated || len(env.Data.State.Roster) != simulation.DefaultClassSize ||
		env.Data.State.SortOrder != model.SortAscending {
		t.Fatalf("status = %d state = %+v", code, env.Data.State)
	}

	code, env = doJSON[service.Result](t, r, http.MethodPost, "/simulations", gin.H{"class_size": 99}, nil)
	if code != http.StatusCreated || len(env.Data.State.Roster) != 20 {
		t.Fatalf("status = %d size = %d, want clamp to 20", code, len(env.Data.State.Roster))
	}
}

func TestStartSimulationRejectsUnknownOrder(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations", gin.H{"sort_order": "sideways"}, nil)

	if code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("status = %d error = %+v", code, env.Error)
	}
	if _, ok := env.Error.Fields["sort_order"]; !ok {
		t.Fatalf("fields = %v", env.Error.Fields)
	}
}

func TestStepSimulationToCompletion(t *testing.T) {
	r := newSimRouter(t, 50, 30)
	_, started := doJSON[service.Result](t, r, http.MethodPost, "/simulations",
		gin.H{"class_size": 2, "sort_order": "ascending"}, nil)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step",
		gin.H{"decision": "swap", "token": started.Data.Token}, nil)

	if code != http.StatusOK {
		t.Fatalf("status = %d error = %+v", code, env.Error)
	}
	res := env.Data
	if res.Phase != model.PhaseFinished || res.State.SwapCount != 1 || res.ComparisonText != "" {
		t.Fatalf("result = %+v", res)
	}
	if !strings.HasSuffix(res.StatusText, "100.0% (1 out of 1 decisions matched the Bubble Sort rule.)") {
		t.Fatalf("status text = %q", res.StatusText)
	}
}

func TestStepSimulationWithBearerToken(t *testing.T) {
	r := newSimRouter(t, 50, 30, 10)
	_, started := doJSON[service.Result](t, r, http.MethodPost, "/simulations",
		gin.H{"class_size": 3, "sort_order": "ascending"}, nil)

	header := http.Header{"Authorization": {"Bearer " + started.Data.Token}}
	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step",
		gin.H{"decision": "dont_swap"}, header)

	if code != http.StatusOK || env.Data.State.TotalDecisions != 1 || env.Data.State.PositionIndex != 1 {
		t.Fatalf("status = %d state = %+v", code, env.Data.State)
	}
	if env.Data.State.CorrectDecisions != 0 {
		t.Fatalf("50 > 30 ascending should have been a swap: %+v", env.Data.State)
	}
}

func TestStepSimulationWithoutToken(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step", gin.H{"decision": "swap"}, nil)

	if code != http.StatusOK || env.Data.StatusText != simulation.StatusNoSimulation ||
		env.Data.Phase != model.PhaseNotStarted || env.Data.Token != "" {
		t.Fatalf("status = %d result = %+v", code, env.Data)
	}
}

func TestStepSimulationValidation(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step", gin.H{"decision": "flip"}, nil)

	if code != http.StatusBadRequest || env.Error == nil || env.Error.Fields["decision"] == "" {
		t.Fatalf("status = %d error = %+v", code, env.Error)
	}
}

func TestStepSimulationRejectsForgedToken(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step",
		gin.H{"decision": "swap", "token": "a.b.c"}, nil)

	if code != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "TOKEN_INVALID" {
		t.Fatalf("status = %d error = %+v", code, env.Error)
	}
}

func TestFinishSimulation(t *testing.T) {
	r := newSimRouter(t, 10, 20, 30)
	_, started := doJSON[service.Result](t, r, http.MethodPost, "/simulations",
		gin.H{"class_size": 3, "sort_order": "ascending"}, nil)

	header := http.Header{"Authorization": {"Bearer " + started.Data.Token}}
	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/finish", nil, header)

	if code != http.StatusOK {
		t.Fatalf("status = %d error = %+v", code, env.Error)
	}
	res := env.Data
	if res.Phase != model.PhaseFinished || res.ComparisonText != "" {
		t.Fatalf("result = %+v", res)
	}
	want := simulation.StatusFinishedEarly + "\n" +
		"The final list IS correctly sorted according to the chosen order.\n" +
		"Total swaps you performed: 0\n" +
		"Your decision accuracy: 0.0% (0 out of 0 decisions matched the Bubble Sort rule.)"
	if res.StatusText != want {
		t.Fatalf("status text =\n%s\nwant\n%s", res.StatusText, want)
	}

	code, again := doJSON[service.Result](t, r, http.MethodPost, "/simulations/step",
		gin.H{"decision": "swap", "token": res.Token}, nil)
	if code != http.StatusOK || again.Data.StatusText != simulation.StatusAlreadyFinished ||
		again.Data.State.SwapCount != 0 {
		t.Fatalf("step after finish: %d %+v", code, again.Data)
	}
}

func TestFinishSimulationWithoutToken(t *testing.T) {
	r := newSimRouter(t)

	code, env := doJSON[service.Result](t, r, http.MethodPost, "/simulations/finish", nil, nil)

	if code != http.StatusOK || env.Data.StatusText != simulation.StatusNoSimulation {
		t.Fatalf("status = %d result = %+v", code, env.Data)
	}
}
