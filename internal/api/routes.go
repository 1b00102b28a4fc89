package api

import (
	"net/http"

	"github.com/finmitra/finmitra/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Turns.Handler().Routes(),
		domain.Scams.Handler().Routes(),
		domain.History.Handler().Routes(),
	)
}
