package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/moosemarche/moosebot/backend/internal/config"
	catalogHandler "github.com/moosemarche/moosebot/backend/internal/handler/catalog"
	"github.com/moosemarche/moosebot/backend/internal/handler/chat"
	"github.com/moosemarche/moosebot/backend/internal/handler/stream"
	"github.com/moosemarche/moosebot/backend/internal/handler/ws"
	middlewarePkg "github.com/moosemarche/moosebot/backend/internal/middleware"
	"github.com/moosemarche/moosebot/backend/internal/model/catalog"
	chatService "github.com/moosemarche/moosebot/backend/internal/service/chat"
	"github.com/moosemarche/moosebot/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(store catalog.Store, chatSvc *chatService.Service, chatCfg config.ChatConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		chat.New(chatSvc, store, chatCfg.Debug).RegisterRoutes(api)
		catalogHandler.New(store).RegisterRoutes(api)
		stream.New(chatSvc, store, chatCfg.ResponseDelay, chatCfg.Debug).RegisterRoutes(api)
		ws.New(chatSvc, store, chatCfg.Debug).RegisterRoutes(api)
	})

	return r
}
