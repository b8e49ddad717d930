package api

import (
	stderrors "errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vytor/hippomemory/internal/errors"
	"github.com/vytor/hippomemory/internal/logger"
)

var mimeTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".woff": "application/font-woff",
	".ttf":  "application/font-ttf",
	".eot":  "application/vnd.ms-fontobject",
	".otf":  "application/font-otf",
	".wasm": "application/wasm",
}

// ContentType maps a file name to its MIME type by extension.
func ContentType(name string) string {
	if t, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}
	return "application/octet-stream"
}

// resolve maps a URL path to a file under root. It fails with Forbidden when
// the cleaned path leaves root.
func resolve(root, urlPath string) (string, error) {
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index.html"
	}
	full := filepath.Join(root, filepath.FromSlash(urlPath))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", errors.NewForbiddenError(urlPath)
	}
	return full, nil
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	root, err := filepath.Abs(s.WebRoot)
	if err != nil {
		s.handleError(w, r, errors.NewInternalError(err))
		return
	}
	path, err := resolve(root, r.URL.Path)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	content, err := readFile(path)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	log.Debug("serving %s (%d bytes)", path, len(content))
	w.Header().Set("Content-Type", ContentType(path))
	w.WriteHeader(http.StatusOK)
	n, _ := w.Write(content)
	if s.Metrics != nil {
		s.Metrics.RecordBytes(n)
	}
}

func readFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	if info.IsDir() {
		return nil, &errors.AppError{Code: errors.ErrCodeInternal, Message: "EISDIR", Status: http.StatusInternalServerError}
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fileError(path, err)
	}
	return content, nil
}

func fileError(path string, err error) error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return errors.NewNotFoundError("file", path)
	case stderrors.Is(err, fs.ErrPermission):
		return &errors.AppError{Code: errors.ErrCodeInternal, Message: "EACCES", Status: http.StatusInternalServerError, Err: err}
	default:
		return &errors.AppError{Code: errors.ErrCodeInternal, Message: "EIO", Status: http.StatusInternalServerError, Err: err}
	}
}
