package service

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/marking-day/internal/config"
	"github.com/stemsi/marking-day/internal/model"
	"golang.org/x/crypto/hkdf"
)

// Token errors.
var (
	ErrTokenInvalid = errors.New("invalid simulation token")
	ErrTokenExpired = errors.New("simulation token expired")
)

const stateKeyInfo = "simulation-state"

// StateClaims carries a whole simulation state inside a signed token, so
// the HTTP API can stay stateless while clients only hold an opaque handle.
type StateClaims struct {
	jwt.RegisteredClaims
	State model.SimulationState `json:"state"`
}

// StateTokenService seals and opens simulation state tokens.
type StateTokenService struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// NewStateTokenService derives the signing key from the configured JWT
// secret so state tokens can never be replayed as other JWTs.
func NewStateTokenService(cfg *config.Config) (*StateTokenService, error) {
	key := make([]byte, 32)
	kdf := hkdf.New(sha256.New, []byte(cfg.JWTSecret), nil, []byte(stateKeyInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("derive state key: %w", err)
	}
	return &StateTokenService{key: key, ttl: cfg.StateTokenTTL, now: time.Now}, nil
}

// Seal signs the state of simulation id into a token.
func (s *StateTokenService) Seal(id uuid.UUID, state model.SimulationState) (string, error) {
	now := s.now()
	claims := StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   id.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		State: state,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign state token: %w", err)
	}
	return signed, nil
}

// Open verifies a token and returns the simulation id and state it carries.
// Errors wrap ErrTokenExpired or ErrTokenInvalid.
func (s *StateTokenService) Open(tokenStr string) (uuid.UUID, model.SimulationState, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)

	claims := &StateClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, model.SimulationState{}, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return uuid.Nil, model.SimulationState{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return uuid.Nil, model.SimulationState{}, ErrTokenInvalid
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, model.SimulationState{}, fmt.Errorf("%w: subject: %v", ErrTokenInvalid, err)
	}
	return id, claims.State, nil
}
