package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/config"
	"github.com/stemsi/marking-day/internal/service"
	"github.com/stemsi/marking-day/internal/simulation"
	"github.com/stemsi/marking-day/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

func newTestSimService(t *testing.T, grades ...int) *service.SimulationService {
	t.Helper()
	tokens, err := service.NewStateTokenService(&config.Config{JWTSecret: "test-secret", StateTokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewStateTokenService: %v", err)
	}
	engine := simulation.NewEngine(simulation.FixedGrades{List: grades, Fallback: simulation.NewRandomGrades(9)})
	return service.NewSimulationService(engine, tokens, 20, zerolog.New(io.Discard))
}

// envelope mirrors response.Response with a typed data payload.
type envelope[T any] struct {
	Data  T `json:"data"`
	Error *struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	} `json:"error"`
}

func doJSON[T any](t *testing.T, h http.Handler, method, path string, body any, header http.Header) (int, envelope[T]) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env envelope[T]
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return w.Code, env
}
