package router

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"

	mem "cow-manager/internal/adapters/storage/memory"
	pg "cow-manager/internal/adapters/storage/postgres"
	sq "cow-manager/internal/adapters/storage/sqlite"
	"cow-manager/internal/domain/cows"
	"cow-manager/internal/domain/herd"
	"cow-manager/internal/domain/settings"
	"cow-manager/internal/middleware"
	"cow-manager/internal/platform/logger"
	"cow-manager/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	// Opcional: Postgres ya abierto (tests). Si no, se intenta DSN,
	// después SQLitePath, después in-memory.
	DB         *sql.DB
	DSN        string
	SQLitePath string

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS())

	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Welcome to Cow Manager API"})
	})
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())

	cowRepo, eventRepo, settingRepo := buildRepos(opts, log)

	settingsSvc := settings.NewService(settingRepo, settings.DefaultSettings())
	cowsSvc := cows.NewService(cowRepo)
	herdSvc := herd.NewService(eventRepo, settingsSvc, log)

	cows.RegisterRoutes(r, cowsSvc)
	herd.RegisterRoutes(r, herdSvc, cowsSvc)
	settings.RegisterRoutes(r, settingsSvc, herdSvc)

	return r
}

// buildRepos elige el storage: Postgres si hay DB o DSN, si no sqlite
// si hay path, si no in-memory. Un backend que falla al abrir cae al
// siguiente con un log de error, como hacía el modo dev original.
func buildRepos(opts Options, log logger.Logger) (cows.Repository, herd.Repository, settings.Repository) {
	ctx := context.Background()

	db := opts.DB
	if db == nil && opts.DSN != "" {
		opened, err := pg.Open(opts.DSN)
		if err != nil {
			log.Error("postgres open failed, falling back", map[string]any{"err": err.Error()})
		} else {
			db = opened
		}
	}
	if db != nil {
		if err := pg.EnsureSchema(ctx, db); err != nil {
			log.Error("postgres schema failed, falling back", map[string]any{"err": err.Error()})
		} else {
			log.Info("storage: postgres", nil)
			return pg.NewCowsRepo(db), pg.NewEventsRepo(db), pg.NewSettingsRepo(db)
		}
	}

	if opts.SQLitePath != "" {
		sdb, err := sq.Open(opts.SQLitePath)
		if err == nil {
			err = sq.EnsureSchema(ctx, sdb)
		}
		if err != nil {
			log.Error("sqlite open failed, falling back", map[string]any{"path": opts.SQLitePath, "err": err.Error()})
		} else {
			log.Info("storage: sqlite", map[string]any{"path": opts.SQLitePath})
			return sq.NewCowsRepo(sdb), sq.NewEventsRepo(sdb), sq.NewSettingsRepo(sdb)
		}
	}

	log.Info("storage: in-memory", nil)
	st := mem.NewStore()
	return mem.NewCowRepo(st), mem.NewEventRepo(st), mem.NewSettingRepo(st)
}
