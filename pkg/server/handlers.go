package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-portfolio/pkg/avatar"
	"github.com/goliatone/go-portfolio/pkg/catalog"
	"github.com/goliatone/go-portfolio/pkg/editor"
	"github.com/goliatone/go-portfolio/pkg/export"
	"github.com/goliatone/go-portfolio/pkg/profile"
	"github.com/goliatone/go-portfolio/pkg/render"
	"github.com/goliatone/go-portfolio/pkg/renderers/component"
	"github.com/goliatone/go-portfolio/pkg/renderers/static"
	"github.com/goliatone/go-portfolio/pkg/shell"
)

// multipartOverhead is allowed on top of the image cap for form boundaries
// and headers.
const multipartOverhead = 64 << 10

type previewMessage struct {
	Type     string      `json:"type"`
	HTML     string      `json:"html"`
	View     render.View `json:"view"`
	Template string      `json:"template"`
	Variant  string      `json:"variant,omitempty"`
}

type noticeMessage struct {
	Type   string       `json:"type"`
	Notice shell.Notice `json:"notice"`
}

type viewMessage struct {
	Type string     `json:"type"`
	View shell.View `json:"view"`
}

type fieldRequest struct {
	Path  string `json:"path"`
	Value string `json:"value"`
}

type templateRequest struct {
	ID      string `json:"id"`
	Variant string `json:"variant"`
}

type viewRequest struct {
	View string `json:"view"`
}

type errorResponse struct {
	Error  string              `json:"error"`
	Fields map[string][]string `json:"fields,omitempty"`
}

type templateResponse struct {
	catalog.Template
	Variants []string `json:"variants,omitempty"`
}

type stateResponse struct {
	Profile  profile.Profile `json:"profile"`
	Template string          `json:"template"`
	Variant  string          `json:"variant,omitempty"`
	View     shell.View      `json:"view"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	preview, err := s.shell.Preview(r.Context(), "")
	state := s.state()
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}

	page, err := s.pages.Render("index", map[string]any{
		"preview":    string(preview),
		"templates":  s.catalog.List(),
		"categories": s.catalog.Categories(),
		"selected":   state.Template,
		"view":       string(state.View),
	})
	if err != nil {
		s.writeError(w, fmt.Errorf("server: render index: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(page))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out, err := s.shell.Preview(r.Context(), static.Name)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handlePreviewJSON(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out, err := s.shell.Preview(r.Context(), component.Name)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(out)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	state := s.state()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	p, err := profile.Decode(r.Body, profile.FormatJSON)
	if err != nil {
		var invalid *profile.ValidationError
		if errors.As(err, &invalid) {
			s.writeError(w, err)
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.shell.Editor().Replace(p); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	var req fieldRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	target, err := editor.ParsePath(req.Path)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.shell.Editor().UpdateField(target.Section, target.Index, target.Field, req.Value); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	section, err := profile.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", editor.ErrUnknownSection, err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.shell.Editor().AddEntry(section); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, s.state())
}

func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	section, err := profile.ParseSection(chi.URLParam(r, "section"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", editor.ErrUnknownSection, err))
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: %q", editor.ErrIndexOutOfRange, chi.URLParam(r, "index")))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.shell.Editor().RemoveEntry(section, index); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxImageBytes+multipartOverhead)
	file, _, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			err = avatar.ErrTooLarge
		case errors.Is(err, http.ErrMissingFile):
			err = avatar.ErrNoImage
		default:
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		s.metrics.IncImageUpload(err)
		s.writeError(w, err)
		return
	}
	defer file.Close()

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.shell.SetImage(r.Context(), avatar.Read(r.Context(), file, avatar.WithMaxBytes(s.cfg.MaxImageBytes)))
	s.metrics.IncImageUpload(err)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleClearImage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shell.ClearImage()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates := s.catalog.Filter(r.URL.Query().Get("category"))
	out := make([]templateResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, templateResponse{Template: tpl, Variants: tpl.Variants()})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shell.SelectTemplate(req.ID)
	if req.Variant != "" {
		s.shell.SelectVariant(req.Variant)
	}
	s.broadcastPreview()
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	view, err := shell.ParseView(req.View)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.shell.Navigate(view)
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.shell.Generate(); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.state())
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	started := false
	saver := export.SaverFunc(func(_ context.Context, artifact export.Artifact) (string, error) {
		started = true
		w.Header().Set("Content-Type", artifact.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
		w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
		if _, err := w.Write(artifact.Data); err != nil {
			return "", err
		}
		return artifact.Filename, nil
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.shell.Download(r.Context(), saver); err != nil {
		// Once the saver has sent headers the status can no longer change.
		if !started {
			s.writeError(w, err)
			return
		}
		s.logger.Error("download interrupted", slog.Any("error", err))
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", slog.Any("error", err))
		return
	}

	s.mu.Lock()
	snapshot, err := s.previewSnapshot()
	var c *client
	if err != nil {
		s.logger.Error("preview render", slog.Any("error", err))
		c = s.hub.add(conn, viewMessage{Type: "view", View: s.shell.View()})
	} else {
		c = s.hub.add(conn, viewMessage{Type: "view", View: s.shell.View()}, snapshot)
	}
	s.mu.Unlock()

	s.hub.readPump(c)
}

// state reports the editor state. Callers hold s.mu.
func (s *Server) state() stateResponse {
	return stateResponse{
		Profile:  s.shell.Profile(),
		Template: s.shell.Template().ID,
		Variant:  s.shell.Variant(),
		View:     s.shell.View(),
	}
}

// writeError maps domain errors onto HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	var invalid *profile.ValidationError
	switch {
	case errors.Is(err, editor.ErrLastEntry):
		status = http.StatusConflict
	case errors.Is(err, editor.ErrIndexOutOfRange),
		errors.Is(err, editor.ErrUnknownSection),
		errors.Is(err, editor.ErrUnknownField),
		errors.Is(err, editor.ErrNotRepeatable),
		errors.Is(err, avatar.ErrNoImage):
		status = http.StatusBadRequest
	case errors.As(err, &invalid):
		status = http.StatusUnprocessableEntity
		resp.Fields = invalid.Fields
	case errors.Is(err, shell.ErrMissingName):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, avatar.ErrTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, avatar.ErrUnsupportedImage):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, context.Canceled):
		status = http.StatusRequestTimeout
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("error", err))
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func stylesheets() fs.FS {
	return static.AssetsFS()
}
