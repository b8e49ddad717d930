package api

import (
	stderrors "errors"
	"fmt"
	"html"
	"net/http"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
)

// handleError renders err as a minimal HTML page with the matching status.
func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())

	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) {
		appErr = errors.NewInternalError(err)
	}

	var body, kind string
	switch appErr.Code {
	case errors.ErrCodeForbidden:
		kind = "forbidden"
		body = "<h1>403 - Forbidden</h1>"
	case errors.ErrCodeNotFound:
		kind = "not_found"
		body = fmt.Sprintf("<h1>404 - File Not Found</h1><p>Requested: %s</p>", html.EscapeString(r.URL.Path))
	default:
		kind = "server_error"
		body = "Server Error: " + html.EscapeString(appErr.Message)
	}

	if appErr.Status >= 500 {
		log.Error("server error: %v", appErr)
	} else {
		log.Warn("client error: %v", appErr)
	}
	if s.Metrics != nil {
		s.Metrics.RecordFileError(kind)
	}

	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(appErr.Status)
	_, _ = w.Write([]byte(body))
}
