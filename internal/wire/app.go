package wire

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyang/assignit/internal/adapter/memory"
	pgdb "github.com/alanyang/assignit/internal/adapter/postgres"
	pgboard "github.com/alanyang/assignit/internal/adapter/postgres/board"
	pgeventbus "github.com/alanyang/assignit/internal/adapter/postgres/eventbus"
	pgidem "github.com/alanyang/assignit/internal/adapter/postgres/idempotency"
	pglocker "github.com/alanyang/assignit/internal/adapter/postgres/locker"
	pgmember "github.com/alanyang/assignit/internal/adapter/postgres/member"
	pgstory "github.com/alanyang/assignit/internal/adapter/postgres/story"
	"github.com/alanyang/assignit/internal/config"
	portboard "github.com/alanyang/assignit/internal/port/board"
	porteventbus "github.com/alanyang/assignit/internal/port/eventbus"
	portidem "github.com/alanyang/assignit/internal/port/idempotency"
	portlocker "github.com/alanyang/assignit/internal/port/locker"
	portmember "github.com/alanyang/assignit/internal/port/member"
	portstory "github.com/alanyang/assignit/internal/port/story"
	boardsvc "github.com/alanyang/assignit/internal/service/board"
	"github.com/alanyang/assignit/internal/transport"
	mcptransport "github.com/alanyang/assignit/internal/transport/mcp"
)

// App holds the top-level resources needed to run and gracefully stop the server.
type App struct {
	Pool      *pgxpool.Pool // nil on the memory backend
	Server    *http.Server
	BoardSvc  *boardsvc.Service
	MCPServer *mcptransport.Server
}

// Close releases the database pool, if any.
func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// adapters is one storage backend's implementation of every port.
type adapters struct {
	pool    *pgxpool.Pool
	boards  portboard.Repository
	members portmember.Repository
	stories portstory.Repository
	bus     porteventbus.EventBus
	locker  portlocker.AdvisoryLocker
	idem    portidem.Store
	purger  purger
}

// Build is the composition root: the only place concrete types are wired to their
// interface dependencies.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	// ── Adapters ─────────────────────────────────────────────────────────────
	var (
		a   adapters
		err error
	)
	switch cfg.StorageBackend {
	case config.BackendMemory:
		a = memoryAdapters(cfg)
	case config.BackendPostgres:
		a, err = postgresAdapters(ctx, cfg)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	boardSvc := boardsvc.NewService(a.boards, a.members, a.stories, a.bus, a.locker, nil)

	reg := mcptransport.NewSessionRegistry()
	mcpServer := mcptransport.New(reg, boardSvc)

	// ── Transport ─────────────────────────────────────────────────────────────
	router := transport.NewRouter(ctx, boardSvc, mcpServer, a.bus, a.idem)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	startJanitor(ctx, a.purger, cfg.PurgeInterval)

	slog.Info("application wired", "port", cfg.Port, "backend", cfg.StorageBackend)

	return &App{
		Pool:      a.pool,
		Server:    server,
		BoardSvc:  boardSvc,
		MCPServer: mcpServer,
	}, nil
}

func memoryAdapters(cfg config.Config) adapters {
	store := memory.NewStore()
	idem := memory.NewIdempotencyStore(memory.NewCache(), cfg.IdempotencyTTL)
	return adapters{
		boards:  store.Boards(),
		members: store.Members(),
		stories: store.Stories(),
		bus:     memory.NewEventBus(),
		locker:  memory.NewLocker(),
		idem:    idem,
		purger:  idem,
	}
}

func postgresAdapters(ctx context.Context, cfg config.Config) (adapters, error) {
	pool, err := pgdb.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return adapters{}, fmt.Errorf("connecting to database: %w", err)
	}
	if cfg.AutoMigrate {
		if err := pgdb.Migrate(ctx, pool); err != nil {
			pool.Close()
			return adapters{}, fmt.Errorf("migrating database: %w", err)
		}
	}

	idem := pgidem.New(pool, cfg.IdempotencyTTL)
	return adapters{
		pool:    pool,
		boards:  pgboard.New(pool),
		members: pgmember.New(pool),
		stories: pgstory.New(pool),
		bus:     pgeventbus.New(pool),
		locker:  pglocker.New(pool),
		idem:    idem,
		purger:  idem,
	}, nil
}
