package api

import (
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/socialchef/mise/internal/config"
	apperrors "github.com/socialchef/mise/internal/errors"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/logger"
	"github.com/socialchef/mise/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const maxBodyBytes = 64 << 10

type Server struct {
	cfg      *config.Config
	renderer render.Renderer
}

func NewServer(cfg *config.Config, renderer render.Renderer) *Server {
	if renderer == nil {
		renderer = render.Verbatim{}
	}
	return &Server{
		cfg:      cfg,
		renderer: renderer,
	}
}

// StateResponse is the JSON view of a session plus any notifications that
// were pending when it was taken.
type StateResponse struct {
	form.View
	ResultHTML    string              `json:"resultHtml,omitempty"`
	Notifications []form.Notification `json:"notifications"`
}

type ErrorBody struct {
	Type               string `json:"type"`
	Message            string `json:"message"`
	Code               string `json:"code"`
	RecoverySuggestion string `json:"recoverySuggestion,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
	StateResponse
}

func (s *Server) stateResponse(c *form.Controller) StateResponse {
	v := c.View()
	resp := StateResponse{
		View:          v,
		Notifications: c.DrainNotifications(),
	}
	if resp.Notifications == nil {
		resp.Notifications = []form.Notification{}
	}
	if v.Result != nil {
		resp.ResultHTML = string(s.renderer.Render(v.Result.Text))
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to encode response", "error", err)
	}
}

// writeError maps err to its HTTP status. Only AppError messages reach the
// client; anything else is reported as an internal error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, c *form.Controller, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		slog.ErrorContext(r.Context(), "Unhandled error", "error", err, logger.WithTraceContext(r.Context()))
		appErr = apperrors.NewInternalError("Something went wrong", err)
	}

	writeJSON(w, appErr.StatusCode, ErrorResponse{
		Error: ErrorBody{
			Type:               string(appErr.Type),
			Message:            appErr.Message,
			Code:               appErr.Code(),
			RecoverySuggestion: appErr.RecoverySuggestion(),
		},
		StateResponse: s.stateResponse(c),
	})
}
