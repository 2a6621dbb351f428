package linkdialog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-urlpicker/internal/logger"
	"github.com/goliatone/go-urlpicker/pkg/dialog"
	"github.com/goliatone/go-urlpicker/pkg/link"
	"github.com/goliatone/go-urlpicker/pkg/picker"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

const maxBodyBytes = 64 << 10

type fieldResponse struct {
	State string      `json:"state"`
	Value *link.Value `json:"value,omitempty"`
}

type openResponse struct {
	State  string      `json:"state"`
	Handle string      `json:"handle,omitempty"`
	Seed   *link.Value `json:"seed,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handler struct {
	opts Options
	log  logger.Logger
}

// Handler builds the component handler with default options plus overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// Routes are relative to wherever the handler is mounted.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	h := &handler{opts: opts, log: opts.Logger}

	r := chi.NewRouter()
	if opts.Guard != nil {
		r.Use(guardMiddleware(opts.Guard))
	}
	r.Get("/dialog", h.dialog)
	r.Route("/fields/{field}", func(r chi.Router) {
		r.Get("/", h.field)
		r.Get("/markup", h.markup)
		r.Post("/open", h.open)
		r.Post("/reset", h.reset)
	})
	r.Route("/sessions/{handle}", func(r chi.Router) {
		r.Post("/commit", h.commit)
		r.Post("/cancel", h.cancel)
	})
	return r
}

func guardMiddleware(guard GuardFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (h *handler) dialog(w http.ResponseWriter, r *http.Request) {
	markup, err := RenderDialog(h.opts)
	if errors.Is(err, ErrNoTemplates) {
		writeError(w, http.StatusNotFound, "link dialog template not configured")
		return
	}
	if err != nil {
		h.log.Error("link dialog render failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "link dialog could not be rendered")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, markup)
}

// ErrNoTemplates is returned by RenderDialog without a template renderer.
var ErrNoTemplates = errors.New("linkdialog: templates not configured")

// RenderDialog renders the dialog fragment for opts. Forms inside the
// fragment post back under opts.BasePath.
func RenderDialog(opts Options) (string, error) {
	if opts.Templates == nil {
		return "", ErrNoTemplates
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	labels := opts.DialogLabels
	return opts.Templates.RenderTemplate(opts.DialogTemplate, map[string]any{
		"endpoint": strings.TrimRight(opts.BasePath, "/"),
		"labels": map[string]any{
			"title":  labels.Title,
			"help":   labels.Help,
			"url":    labels.URL,
			"anchor": labels.Anchor,
			"blank":  labels.Blank,
			"cancel": labels.Cancel,
			"submit": labels.Submit,
		},
	})
}

func (h *handler) field(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w)
	if !ok {
		return
	}
	fieldID := chi.URLParam(r, "field")
	current, err := ctrl.Store().Get(r.Context(), fieldID)
	if err != nil {
		h.storeError(w, fieldID, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse{State: ctrl.State(fieldID).String(), Value: &current})
}

func (h *handler) markup(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w)
	if !ok {
		return
	}
	if h.opts.Markup == nil {
		writeError(w, http.StatusNotFound, "markup renderer not configured")
		return
	}
	fieldID := chi.URLParam(r, "field")
	current, err := ctrl.Store().Get(r.Context(), fieldID)
	if err != nil {
		h.storeError(w, fieldID, err)
		return
	}
	out, err := h.opts.Markup.RenderPicker(ctrl.Render(fieldID, current))
	if err != nil {
		h.log.Error("picker markup render failed", logger.String("field", fieldID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "picker could not be rendered")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, out)
}

func (h *handler) open(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w)
	if !ok {
		return
	}
	fieldID := chi.URLParam(r, "field")
	current, err := ctrl.Store().Get(r.Context(), fieldID)
	if err != nil {
		h.storeError(w, fieldID, err)
		return
	}

	opened, err := ctrl.Open(r.Context(), fieldID, current)
	h.drain(fieldID)
	switch {
	case errors.Is(err, picker.ErrDialogLoadFailed):
		writeError(w, http.StatusBadGateway, "link dialog could not be loaded")
		return
	case errors.Is(err, picker.ErrFieldIDRequired):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.log.Error("picker open failed", logger.String("field", fieldID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "picker could not be opened")
		return
	}

	state := ctrl.State(fieldID)
	if !opened {
		writeJSON(w, http.StatusOK, openResponse{State: state.String()})
		return
	}

	resp := openResponse{State: state.String(), Seed: &current}
	if session, ok := h.sessionFor(fieldID); ok {
		resp.Handle = string(session.Handle)
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (h *handler) reset(w http.ResponseWriter, r *http.Request) {
	ctrl, ok := h.controller(w)
	if !ok {
		return
	}
	fieldID := chi.URLParam(r, "field")
	err := ctrl.Reset(r.Context(), fieldID)
	h.drain(fieldID)
	if err != nil {
		if errors.Is(err, picker.ErrFieldIDRequired) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.storeError(w, fieldID, err)
		return
	}
	empty := link.Empty()
	writeJSON(w, http.StatusOK, fieldResponse{State: ctrl.State(fieldID).String(), Value: &empty})
}

func (h *handler) commit(w http.ResponseWriter, r *http.Request) {
	ctrl, sessions, ok := h.sessionDeps(w)
	if !ok {
		return
	}
	handle := picker.SessionHandle(chi.URLParam(r, "handle"))
	session, found := sessions.Lookup(handle)
	if !found {
		writeError(w, http.StatusNotFound, dialog.ErrUnknownSession.Error())
		return
	}

	value, err := decodeValue(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = ctrl.CommitSession(r.Context(), session.FieldID, handle, value)
	// the error is answered here; a queued notice would repeat it on the page
	h.drain(session.FieldID)
	if err != nil {
		h.sessionError(w, session.FieldID, err)
		return
	}

	stored, err := ctrl.Store().Get(r.Context(), session.FieldID)
	if err != nil {
		h.storeError(w, session.FieldID, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse{State: ctrl.State(session.FieldID).String(), Value: &stored})
}

func (h *handler) cancel(w http.ResponseWriter, r *http.Request) {
	ctrl, sessions, ok := h.sessionDeps(w)
	if !ok {
		return
	}
	handle := picker.SessionHandle(chi.URLParam(r, "handle"))
	session, found := sessions.Lookup(handle)
	if !found {
		writeError(w, http.StatusNotFound, dialog.ErrUnknownSession.Error())
		return
	}
	if err := ctrl.CancelSession(session.FieldID, handle); err != nil {
		h.sessionError(w, session.FieldID, err)
		return
	}
	writeJSON(w, http.StatusOK, fieldResponse{State: ctrl.State(session.FieldID).String()})
}

func (h *handler) controller(w http.ResponseWriter) (Controller, bool) {
	if h.opts.Controller == nil {
		writeError(w, http.StatusServiceUnavailable, "picker controller not configured")
		return nil, false
	}
	return h.opts.Controller, true
}

func (h *handler) sessionDeps(w http.ResponseWriter) (Controller, Sessions, bool) {
	ctrl, ok := h.controller(w)
	if !ok {
		return nil, nil, false
	}
	if h.opts.Sessions == nil {
		writeError(w, http.StatusServiceUnavailable, "dialog sessions not configured")
		return nil, nil, false
	}
	return ctrl, h.opts.Sessions, true
}

// sessionFor finds the pending dialog session opened for fieldID.
func (h *handler) sessionFor(fieldID string) (picker.Session, bool) {
	if sessions, ok := h.opts.Controller.(interface {
		Session(fieldID string) (picker.Session, bool)
	}); ok {
		return sessions.Session(fieldID)
	}
	return picker.Session{}, false
}

func (h *handler) drain(fieldID string) []picker.Notice {
	if h.opts.Notices == nil {
		return nil
	}
	return h.opts.Notices.Drain(fieldID)
}

func (h *handler) storeError(w http.ResponseWriter, fieldID string, err error) {
	h.log.Error("picker store failure", logger.String("field", fieldID), logger.Error(err))
	writeError(w, http.StatusInternalServerError, "link could not be saved")
}

func (h *handler) sessionError(w http.ResponseWriter, fieldID string, err error) {
	switch {
	case errors.Is(err, picker.ErrNoSession):
		writeError(w, http.StatusNotFound, dialog.ErrUnknownSession.Error())
	case errors.Is(err, picker.ErrStoreWriteFailed):
		h.storeError(w, fieldID, err)
	default:
		h.log.Error("dialog session resolve failed", logger.String("field", fieldID), logger.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// decodeValue reads url, anchor and blank from a JSON or form body.
func decodeValue(r *http.Request) (link.Value, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var value link.Value
		if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
			return link.Value{}, fmt.Errorf("invalid link payload: %w", err)
		}
		return value, nil
	}
	if err := r.ParseForm(); err != nil {
		return link.Value{}, fmt.Errorf("invalid link form: %w", err)
	}
	return link.Coerce(r.PostForm.Get("url"), r.PostForm.Get("anchor"), r.PostForm.Get("blank")), nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeGuardError(w http.ResponseWriter, err error) {
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	writeError(w, code, http.StatusText(code))
}
