package tour

import (
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/natours/backend/internal/middleware"
	"github.com/zhouzirui/natours/backend/internal/model/tour"
	tourService "github.com/zhouzirui/natours/backend/internal/service/tour"
	"github.com/zhouzirui/natours/backend/pkg/utils"
)

const (
	maxBodyBytes = 100 << 10
	isoMillis    = "2006-01-02T15:04:05.000Z07:00"

	msgInvalidID       = "Invalid ID"
	updatedPlaceholder = "<Updated tour here...>"
)

// Handler tour服务的HTTP处理器
type Handler struct {
	svc *tourService.Service
}

// New 创建tour处理器
func New(svc *tourService.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the tour collection and item routes under /tours.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/tours", func(r chi.Router) {
		r.Get("/", h.handleListTours)
		r.Post("/", h.handleCreateTour)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.handleGetTour)
			r.Patch("/", h.handleUpdateTour)
			r.Delete("/", h.handleDeleteTour)
		})
	})
}

func (h *Handler) handleListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.svc.ListTours(r.Context())
	if err != nil {
		log.Printf("[tour] list failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load tours")
		return
	}
	if tours == nil {
		tours = []tour.Tour{}
	}

	results := len(tours)
	envelope := utils.Envelope{
		Status:  utils.StatusSuccess,
		Results: &results,
		Data:    map[string]any{"tours": tours},
	}
	if at, ok := middleware.RequestedAt(r.Context()); ok {
		envelope.RequestedAt = at.UTC().Format(isoMillis)
	}
	utils.RespondJSON(w, http.StatusOK, envelope)
}

func (h *Handler) handleGetTour(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	log.Printf("[tour] get id=%s", raw)

	id, err := tour.ParseID(raw)
	if err != nil {
		utils.RespondFail(w, http.StatusNotFound, msgInvalidID)
		return
	}

	found, err := h.svc.GetTour(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, map[string]any{"tour": found})
}

func (h *Handler) handleCreateTour(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondFail(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		utils.RespondFail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields, err := tour.ParseFields(body)
	if err != nil {
		utils.RespondFail(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.svc.CreateTour(r.Context(), fields)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	log.Printf("[tour] created id=%d", created.ID)
	utils.RespondSuccess(w, http.StatusCreated, map[string]any{"tour": created})
}

func (h *Handler) handleUpdateTour(w http.ResponseWriter, r *http.Request) {
	// the bound check takes any id, parseable or not
	id := tour.Numeric(chi.URLParam(r, "id"))
	if err := h.svc.UpdateTour(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, map[string]any{"tour": updatedPlaceholder})
}

func (h *Handler) handleDeleteTour(w http.ResponseWriter, r *http.Request) {
	id := tour.Numeric(chi.URLParam(r, "id"))
	if err := h.svc.DeleteTour(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tourService.ErrTourNotFound):
		utils.RespondFail(w, http.StatusNotFound, msgInvalidID)
	case errors.Is(err, tourService.ErrPersist):
		log.Printf("[tour] persist failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, tourService.ErrPersist.Error())
	default:
		log.Printf("[tour] store error: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "internal error")
	}
}
