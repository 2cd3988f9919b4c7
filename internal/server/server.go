package server

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/MosinFAM/grams/internal/auth"
	"github.com/MosinFAM/grams/internal/config"
	"github.com/MosinFAM/grams/internal/db"
	"github.com/MosinFAM/grams/internal/middleware"
	"github.com/MosinFAM/grams/internal/storage"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Server владеет хранилищем и http.Server на время жизни процесса
type Server struct {
	Config *config.Config
	Logger zerolog.Logger

	store      storage.Storage
	db         *sql.DB
	httpServer *http.Server
}

// New выбирает хранилище по конфигурации; для postgres подключается и накатывает миграции
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	s := &Server{Config: cfg, Logger: logger}

	if cfg.IsPostgres() {
		conn, err := db.Connect(cfg.Database.URL, db.Options{
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(conn, cfg.Database.MigrationsDir, logger); err != nil {
			conn.Close()
			return nil, err
		}
		s.db = conn
		s.store = storage.NewPostgresStorage(conn, logger)
	} else {
		s.store = storage.NewMemoryStorage(logger)
	}

	logger.Info().Str("storage", cfg.Storage.Type).Msg("storage initialized")

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s, nil
}

// Handler - полный стек: CORS, подмена метода для форм, роутер
func (s *Server) Handler() http.Handler {
	sessions := auth.NewSessions(s.Config.Auth.SecretKey, s.Config.Auth.TokenTTL, s.store, s.Logger)
	router := NewRouter(s.store, sessions, s.Logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.Config.Server.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader, middleware.MethodOverrideHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})
	return c.Handler(middleware.MethodOverride(router))
}

// Start блокируется до остановки сервера
func (s *Server) Start() error {
	s.Logger.Info().Str("addr", s.httpServer.Addr).Msg("server is running")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "listen")
	}
	return nil
}

// Shutdown дожидается текущих запросов и закрывает соединение с БД
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "shutdown http server")
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return errors.Wrap(err, "close database")
		}
	}
	return nil
}
