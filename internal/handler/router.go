package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/natours/backend/internal/handler/tour"
	middlewarePkg "github.com/zhouzirui/natours/backend/internal/middleware"
	tourService "github.com/zhouzirui/natours/backend/internal/service/tour"
	"github.com/zhouzirui/natours/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(tourSvc *tourService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middlewarePkg.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)
	r.Use(middlewarePkg.RequestTime(time.Now))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondFail(w, http.StatusNotFound, "Can't find "+r.URL.Path+" on this server")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.RespondFail(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	tourHandler := tour.New(tourSvc)

	r.Route("/api/v1", func(api chi.Router) {
		tourHandler.RegisterRoutes(api)
	})

	return r
}
