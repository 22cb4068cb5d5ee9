package web

import (
	"net/http"

	"github.com/vbonduro/trailplan/internal/catalog"
)

type fixtureInfo struct {
	File  string
	Label string
	Count int
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	cat := s.catalog.Current()
	status := s.catalog.Status()

	fixtures := []fixtureInfo{
		{File: catalog.MountainsFile, Label: "山情報", Count: len(cat.Mountains())},
		{File: catalog.EquipmentFile, Label: "装備", Count: len(cat.Equipment())},
		{File: catalog.TemplatesFile, Label: "装備テンプレート", Count: len(cat.Templates())},
		{File: catalog.PlansFile, Label: "計画", Count: len(cat.Plans())},
	}

	if err := s.renderPage(w,
		page(r, "管理画面", map[string]any{"Status": status, "Fixtures": fixtures}),
		"base.html", "pages/admin.html",
	); err != nil {
		s.logger.Error("render page error", "page", "admin", "error", err)
	}
}

// handleHealthz reports whether the last catalog reload succeeded. A failed
// reload still serves the previous catalog, so it is not an outage.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	status := s.catalog.Status()
	body := map[string]any{"status": "ok"}
	if !status.LoadedAt.IsZero() {
		body["catalogLoadedAt"] = status.LoadedAt
	}
	if status.LastErr != nil {
		body["status"] = "degraded"
		body["catalogError"] = status.LastErr.Error()
	}
	writeJSON(w, http.StatusOK, body)
}
