package photo

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"photobooth/internal/auth"
	"photobooth/internal/broadcast"
	"photobooth/internal/domain"
	apperrors "photobooth/internal/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Controller struct {
	service     *Service
	broadcaster *broadcast.Broadcaster
	authority   auth.Provider
	logger      *zap.Logger
}

func NewController(service *Service, broadcaster *broadcast.Broadcaster, authority auth.Provider, logger *zap.Logger) *Controller {
	return &Controller{
		service:     service,
		broadcaster: broadcaster,
		authority:   authority,
		logger:      logger,
	}
}

type createRequest struct {
	ID string `json:"id"`
}

type patchRequest struct {
	Status string `json:"status"`
	Paid   *bool  `json:"paid"`
	Note   string `json:"note"`
}

type autoSimulateRequest struct {
	Enabled bool `json:"enabled"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	User    *auth.User `json:"user,omitempty"`
}

func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"autoSimulate": c.service.AutoSimulateEnabled(),
	})
}

func (c *Controller) HandleListPhotos(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.List())
}

func (c *Controller) HandleCreatePhoto(w http.ResponseWriter, r *http.Request) {
	// the body is optional; an absent or empty body means auto-allocate
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		c.logger.Warn("ignoring unparseable create body", zap.Error(err))
	}

	p, err := c.service.Create(req.ID)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, p)
}

func (c *Controller) HandlePatchPhoto(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req patchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	p, err := c.service.Patch(id, PatchUpdate{
		Status: domain.Status(req.Status),
		Paid:   req.Paid,
		Note:   req.Note,
	})
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, p)
}

func (c *Controller) HandlePrintPhoto(w http.ResponseWriter, r *http.Request) {
	c.startPrint(w, r, false)
}

func (c *Controller) HandleReprintPhoto(w http.ResponseWriter, r *http.Request) {
	c.startPrint(w, r, true)
}

func (c *Controller) startPrint(w http.ResponseWriter, r *http.Request, reprint bool) {
	id := chi.URLParam(r, "id")

	p, err := c.service.StartPrint(id, reprint)
	if err != nil {
		c.handleServiceError(w, err)
		return
	}
	c.writeJSON(w, http.StatusOK, p)
}

func (c *Controller) HandleAutoSimulate(w http.ResponseWriter, r *http.Request) {
	var req autoSimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	enabled := c.service.SetAutoSimulate(req.Enabled)
	c.writeJSON(w, http.StatusOK, map[string]bool{"autoSimulate": enabled})
}

// HandleEvents streams mutations to the client as server-sent events.
// There is no replay; clients reconcile by re-fetching GET /photos.
func (c *Controller) HandleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		c.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	id, frames := c.broadcaster.Subscribe()
	defer c.broadcaster.Unsubscribe(id)

	if _, err := w.Write([]byte("data: {\"type\":\"connected\"}\n\n")); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case frame, open := <-frames:
			if !open {
				return
			}
			if _, err := w.Write(frame); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func (c *Controller) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeJSON(w, http.StatusBadRequest, loginResponse{Success: false, Message: "request body must be valid JSON"})
		return
	}

	if req.Username == "" || req.Password == "" {
		c.writeJSON(w, http.StatusBadRequest, loginResponse{Success: false, Message: "Username and password are required"})
		return
	}

	user, err := c.authority.Authenticate(req.Username, req.Password)
	if err != nil {
		if _, ok := apperrors.IsAuthError(err); ok {
			c.writeJSON(w, http.StatusUnauthorized, loginResponse{Success: false, Message: "Invalid username or password"})
			return
		}
		c.logger.Error("login failed", zap.Error(err))
		c.writeJSON(w, http.StatusInternalServerError, loginResponse{Success: false, Message: "Internal server error"})
		return
	}

	c.writeJSON(w, http.StatusOK, loginResponse{Success: true, Message: "Login successful", User: user})
}

func (c *Controller) handleServiceError(w http.ResponseWriter, err error) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeError(w, http.StatusNotFound, nf.Message)
		return
	}
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeError(w, http.StatusBadRequest, ve.Message)
		return
	}

	c.logger.Error("unexpected error", zap.Error(err))
	c.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
}

func (c *Controller) writeError(w http.ResponseWriter, status int, message string) {
	c.writeJSON(w, status, map[string]string{"error": message})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
