// internal/api/handlers_catalog.go
package api

import (
	"net/http"

	"sake-reco/internal/catalog"
	"sake-reco/internal/models"
	refreshcatalog "sake-reco/internal/workers/catalog/refresh-catalog"
)

type catalogResponse struct {
	State catalog.State        `json:"state"`
	Items []models.CatalogItem `json:"items"`
}

// getCatalog handles GET /api/v1/catalog. ?items=false omits the item list.
func (s *Server) getCatalog(w http.ResponseWriter, r *http.Request) {
	resp := catalogResponse{State: s.catalog.State()}
	if r.URL.Query().Get("items") != "false" {
		resp.Items = s.catalog.Items()
		if resp.Items == nil {
			resp.Items = []models.CatalogItem{}
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// refreshCatalog handles POST /api/v1/catalog/refresh. A failed fetch is
// reported in the body with 200; the previous catalog stays in service.
func (s *Server) refreshCatalog(w http.ResponseWriter, r *http.Request) {
	out, err := s.handlers.Refresh.Execute(r.Context(), &refreshcatalog.Input{Reason: "api"})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, http.StatusOK, out)
}
