package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/marking-day/internal/config"
	"github.com/stemsi/marking-day/internal/model"
)

func newTestTokens(t *testing.T, secret string) *StateTokenService {
	t.Helper()
	tokens, err := NewStateTokenService(&config.Config{JWTSecret: secret, StateTokenTTL: time.Hour})
	if err != nil {
		t.Fatalf("NewStateTokenService: %v", err)
	}
	return tokens
}

func sampleState() model.SimulationState {
	return model.SimulationState{
		Roster: model.Roster{
			{Name: "Student 1", Grade: 50},
			{Name: "Student 2", Grade: 30},
			{Name: "Student 3", Grade: 70},
		},
		PassIndex:        0,
		PositionIndex:    1,
		SwapCount:        1,
		SortOrder:        model.SortAscending,
		CorrectDecisions: 1,
		TotalDecisions:   1,
	}
}

func TestStateTokenRoundTrip(t *testing.T) {
	tokens := newTestTokens(t, "secret")
	id := uuid.New()
	state := sampleState()

	token, err := tokens.Seal(id, state)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	gotID, got, err := tokens.Open(token)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if gotID != id {
		t.Fatalf("id = %s, want %s", gotID, id)
	}
	if got.Roster.String() != state.Roster.String() || got.PositionIndex != 1 ||
		got.SwapCount != 1 || got.SortOrder != model.SortAscending || got.TotalDecisions != 1 {
		t.Fatalf("state = %+v, want %+v", got, state)
	}
}

func TestStateTokenRejectsOtherSecret(t *testing.T) {
	token, err := newTestTokens(t, "secret").Seal(uuid.New(), sampleState())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	_, _, err = newTestTokens(t, "another-secret").Open(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestStateTokenRejectsTampering(t *testing.T) {
	tokens := newTestTokens(t, "secret")
	token, err := tokens.Seal(uuid.New(), sampleState())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	parts := strings.Split(token, ".")
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), `"swap_count":1`, `"swap_count":0`, 1)
	if forged == string(payload) {
		t.Fatalf("payload has no swap_count: %s", payload)
	}
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	if _, _, err := tokens.Open(strings.Join(parts, ".")); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
	if _, _, err := tokens.Open("not-a-token"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestStateTokenRejectsPlainJWTSecret(t *testing.T) {
	tokens := newTestTokens(t, "secret")
	claims := StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		State: sampleState(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, _, err := tokens.Open(forged); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("err = %v, want ErrTokenInvalid", err)
	}
}

func TestStateTokenExpires(t *testing.T) {
	tokens := newTestTokens(t, "secret")
	issued := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	token, err := tokens.Seal(uuid.New(), sampleState())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tokens.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, _, err := tokens.Open(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("err = %v, want ErrTokenExpired", err)
	}
}
