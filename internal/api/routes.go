package api

import (
	"net/http"

	"github.com/JaimeStill/intake/pkg/handlers"
	"github.com/JaimeStill/intake/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	inquiries := domain.Inquiries.Handler()

	routes.Register(
		mux,
		healthRoutes(),
		inquiries.Routes(),
		inquiries.ManagerRoutes(),
	)
}

func healthRoutes() routes.Group {
	return routes.Group{
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/health", Handler: health},
		},
	}
}

func health(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
