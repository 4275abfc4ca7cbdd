package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alanyang/assignit/internal/domain/event"
	porteventbus "github.com/alanyang/assignit/internal/port/eventbus"
	portidem "github.com/alanyang/assignit/internal/port/idempotency"
	boardsvc "github.com/alanyang/assignit/internal/service/board"

	boardhandler "github.com/alanyang/assignit/internal/transport/board"
	mcptransport "github.com/alanyang/assignit/internal/transport/mcp"
	wshandler "github.com/alanyang/assignit/internal/transport/ws"
)

func NewRouter(
	ctx context.Context,
	boardSvc *boardsvc.Service,
	mcpServer *mcptransport.Server,
	eventBus porteventbus.EventBus,
	idemStore portidem.Store,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(RequestLogger())
	r.Use(CORSMiddleware())
	r.Use(IdempotencyMiddleware(idemStore))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	api := r.Group("/api")
	boardhandler.Register(api.Group("/boards"), boardSvc)

	hub := wshandler.NewHub()
	hub.Register(api.Group("/ws"))

	mcpHandler := gin.WrapH(mcpServer.Handler())
	r.Any("/mcp", mcpHandler)

	// Bridge: one subscription per domain channel. Every event goes to the
	// WS hub and to MCP sessions watching the event's board.
	reg := mcpServer.Registry()
	for _, ch := range event.Channels {
		c := ch
		if _, err := eventBus.Subscribe(ctx, c, func(ctx context.Context, e event.Event) {
			hub.Broadcast(e)
			if err := reg.NotifyBoard(ctx, e); err != nil {
				slog.Warn("mcp board notification failed", "board_id", e.BoardID, "error", err)
			}
		}); err != nil {
			slog.Error("failed to subscribe channel to event bridge", "channel", c, "error", err)
		}
	}

	return r
}
