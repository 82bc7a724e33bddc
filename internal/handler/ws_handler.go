package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stemsi/marking-day/internal/model"
	"github.com/stemsi/marking-day/internal/service"
	ws "github.com/stemsi/marking-day/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler drives one simulation per WebSocket connection. The
// connection goroutine is the only owner of its session.
type WSHandler struct {
	simService *service.SimulationService
	log        zerolog.Logger
	upgrader   websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(simService *service.SimulationService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		simService: simService,
		log:        log.With().Str("component", "ws_handler").Logger(),
		upgrader:   buildUpgrader(allowedOrigins),
	}
}

// SimulationStream godoc
// WS /ws/v1/simulations/stream
// Upgrades to WebSocket and plays simulations driven by client actions.
func (h *WSHandler) SimulationStream(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	session := h.simService.NewSession()
	wsLog := h.log.With().Str("remote", c.ClientIP()).Logger()
	wsLog.Debug().Msg("Trainer connected")

	for {
		var msg ws.RequestPayload
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		if err := h.dispatch(conn, session, &msg); err != nil {
			wsLog.Debug().Err(err).Msg("Write failed")
			return
		}
	}
}

func (h *WSHandler) dispatch(conn *websocket.Conn, session *service.Session, msg *ws.RequestPayload) error {
	switch msg.Action {
	case ws.ActionStart:
		order := model.DefaultSortOrder
		if msg.SortOrder != "" {
			parsed, ok := model.ParseSortOrder(msg.SortOrder)
			if !ok {
				return ws.WriteError(conn, "sort_order must be ascending or descending")
			}
			order = parsed
		}
		return writeView(conn, session, session.Start(msg.ClassSize, order))
	case ws.ActionSwap:
		return writeView(conn, session, session.Step(model.DecisionSwap))
	case ws.ActionDontSwap:
		return writeView(conn, session, session.Step(model.DecisionDontSwap))
	case ws.ActionFinish:
		return writeView(conn, session, session.Finish())
	case ws.ActionPing:
		return ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
	default:
		h.log.Debug().Str("action", string(msg.Action)).Msg("Unknown action")
		return ws.WriteError(conn, "unknown action: "+string(msg.Action))
	}
}

func writeView(conn *websocket.Conn, session *service.Session, view model.View) error {
	state := session.State()
	resp := ws.ViewResponse{
		Event: ws.EventView,
		View:  view,
		Phase: state.Phase(),
		State: state,
	}
	if state.Active() {
		resp.SimulationID = session.ID().String()
	}
	return ws.WriteTyped(conn, resp)
}
