package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"social-media-api/internal/service"

	"github.com/valyala/fastjson"
	"go.uber.org/zap"
)

// Server defines fields used in HTTP processing
type Server struct {
	logger        *zap.SugaredLogger
	httpServer    *http.Server
	afterShutdown []func()
	h             handler
}

// NewServer wires the account and message services behind the HTTP route tree
// and returns a new Server configured by the provided options
func NewServer(logger *zap.Logger, accounts *service.AccountService, messages *service.MessageService, opts ...Option) (*Server, error) {
	srv := &Server{
		logger: logger.Sugar(),
		h: handler{
			logger:   logger.Sugar(),
			accounts: accounts,
			messages: messages,
			parsers: parsers{
				registerPool:      fastjson.ParserPool{},
				loginPool:         fastjson.ParserPool{},
				createMessagePool: fastjson.ParserPool{},
				updateMessagePool: fastjson.ParserPool{},
			},
		},
	}

	cfg := &config{
		httpServer: &http.Server{
			Addr:    "0.0.0.0:8080",
			Handler: routes(&srv.h, logger),
		},
	}

	for _, opt := range opts {
		opt.apply(cfg)
	}

	srv.httpServer = cfg.httpServer
	srv.afterShutdown = cfg.afterShutdown

	return srv, nil
}

// routes builds the route tree; body-carrying endpoints pass through
// enforceJSONBody and everything is wrapped by the request logging middleware
func routes(h *handler, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /register", enforceJSONBody(http.HandlerFunc(h.register)))
	mux.Handle("POST /login", enforceJSONBody(http.HandlerFunc(h.login)))
	mux.Handle("POST /messages", enforceJSONBody(http.HandlerFunc(h.createMessage)))
	mux.Handle("GET /messages", http.HandlerFunc(h.allMessages))
	mux.Handle("GET /messages/{messageId}", http.HandlerFunc(h.messageByID))
	mux.Handle("DELETE /messages/{messageId}", http.HandlerFunc(h.deleteMessage))
	mux.Handle("PATCH /messages/{messageId}", enforceJSONBody(http.HandlerFunc(h.updateMessageText)))
	mux.Handle("GET /accounts/{accountId}/messages", http.HandlerFunc(h.messagesByAccount))

	return logRequests(mux, logger)
}

// Start calls ListenAndServe on http.Server instance inside Server struct
// and implements graceful shutdown via goroutine waiting for signals
func (s *Server) Start() error {
	idleConnsClosed := make(chan struct{})

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		s.logger.Info("Shutting down HTTP server")

		if err := s.httpServer.Shutdown(context.Background()); err != nil {
			s.logger.Errorf("srv.Shutdown: %v", err)
		}
		s.logger.Info("HTTP server is stopped")

		close(idleConnsClosed)
	}()

	s.logger.Infof("Starting HTTP server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("s.httpServer.ListenAndServe: %v", err)
	}

	<-idleConnsClosed

	for _, f := range s.afterShutdown {
		f()
	}

	return nil
}
