package session

import (
	"StreamBot/internal/lib/api/response"
	"StreamBot/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// Reset drops the user's conversation, sending them back to the main menu on
// their next message.
func Reset(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := userParam(w, r)
		if !ok {
			return
		}

		err := handler.Reset(r.Context(), userID)
		if err != nil {
			log.Error("reset session", sl.Err(err), slog.Int64("user_id", userID))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Reset failed"))
			return
		}
		log.Info("session reset", slog.Int64("user_id", userID))

		render.JSON(w, r, response.Ok("Session reset successfully"))
	}
}

func Flows(handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.Ok(handler.Describe()))
	}
}
