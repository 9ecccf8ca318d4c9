package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/vitos/crypto_market_cache/internal/usecase"
	"go.uber.org/zap"
)

type Server struct {
	router  *http.ServeMux
	server  *http.Server
	service *usecase.LiveDataService
	stream  *TickerStream
	logger  *zap.Logger
}

func NewServer(port int, service *usecase.LiveDataService, stream *TickerStream, logger *zap.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		service: service,
		stream:  stream,
		logger:  logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: withCORS(withRequestID(s.router)),
	}
	return s
}

func (s *Server) routes() {
	// Market data
	s.router.HandleFunc("GET /pairs", s.handlePairs)
	s.router.HandleFunc("GET /ticker", s.handleTicker)
	s.router.HandleFunc("GET /livedata", s.handleLiveData)
	s.router.HandleFunc("POST /livedata", s.handleLiveData)

	// Live ticker push
	s.router.HandleFunc("GET /ws/tickers", s.stream.handleSubscribe)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.stream.Close()
	return s.server.Shutdown(ctx)
}
