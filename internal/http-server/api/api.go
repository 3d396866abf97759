package api

import (
	"StreamBot/internal/config"
	"StreamBot/internal/http-server/handlers/errors"
	"StreamBot/internal/http-server/handlers/session"
	"StreamBot/internal/http-server/middleware/authenticate"
	"StreamBot/internal/lib/api/response"
	"StreamBot/internal/lib/sl"
	"StreamBot/internal/ws"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	session.Core
}

// NewRouter builds the operator API: health and metrics are open, the
// session endpoints need the listen key as a bearer token and the progress
// socket takes it as a "token" query parameter.
func NewRouter(conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) http.Handler {
	auth := keyAuth{key: conf.Listen.ApiKey}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWs(hub, auth, log, w, r)
		})

		v1.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(5 * time.Second))
			r.Use(authenticate.New(log, auth))

			r.Get("/flows", session.Flows(handler))
			r.Route("/sessions/{user_id}", func(r chi.Router) {
				r.Get("/", session.Get(log, handler))
				r.Delete("/", session.Reset(log, handler))
			})
		})
	})

	return router
}

// New serves the operator API until ctx is done.
func New(ctx context.Context, conf *config.Config, log *slog.Logger, handler Handler, hub *ws.Hub) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:           NewRouter(conf, log, handler, hub),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.httpServer.Shutdown(shutdownCtx)
	}()

	server.log.Info("starting api server", slog.String("address", serverAddress))

	err = server.httpServer.Serve(listener)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
