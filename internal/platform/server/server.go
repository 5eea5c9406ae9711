package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"zerodb/internal/platform/config"
	"zerodb/internal/platform/server/handler/health"
	"zerodb/internal/platform/server/handler/record"
)

type Server struct {
	httpAddr string
	engine   *chi.Mux
}

func NewServer(cfg config.Config, records *record.Handler) Server {
	srv := Server{
		engine:   chi.NewRouter(),
		httpAddr: fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
	}
	srv.engine.Use(middleware.Logger)
	srv.registerRoutes(records)
	return srv
}

func (s *Server) Run() error {
	log.Println("Server Running on:", s.httpAddr)
	return http.ListenAndServe(s.httpAddr, s.engine)
}

func (s *Server) registerRoutes(records *record.Handler) {
	s.engine.Get("/health", health.CheckHandler)
	s.engine.Post("/records", records.SaveRecord)
	s.engine.Get("/records/{uuid}", records.GetRecord)
	s.engine.Delete("/records/{uuid}", records.DeleteRecord)
	s.engine.Post("/admin/flush", records.FlushStore)
}
