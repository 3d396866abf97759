package session

import (
	"StreamBot/internal/lib/api/response"
	"StreamBot/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

type View struct {
	UserID    int64          `json:"user_id"`
	Active    bool           `json:"active"`
	Flow      string         `json:"flow,omitempty"`
	Step      string         `json:"step,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	UpdatedAt *time.Time     `json:"updated_at,omitempty"`
}

func Get(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mod := sl.Module("http.handlers.session")

		logger := log.With(
			mod,
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := userParam(w, r)
		if !ok {
			return
		}
		logger = logger.With(slog.Int64("user_id", userID))

		s, err := handler.Session(r.Context(), userID)
		if err != nil {
			logger.Error("load session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Session not available"))
			return
		}

		view := View{
			UserID: userID,
			Active: s.Active(),
			Flow:   string(s.State.Flow),
			Step:   string(s.State.Step),
			Data:   s.Data,
		}
		if !s.UpdatedAt.IsZero() {
			view.UpdatedAt = &s.UpdatedAt
		}
		logger.Debug("session requested", slog.String("state", s.State.String()))

		render.JSON(w, r, response.Ok(view))
	}
}

func userParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || userID <= 0 {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid user id"))
		return 0, false
	}
	return userID, true
}
