package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/vbonduro/trailplan/internal/checklist"
	"github.com/vbonduro/trailplan/internal/service"
)

// selectionFrom reads the checklist selection from the query string or the
// posted form.
func selectionFrom(r *http.Request) service.Selection {
	return service.Selection{
		PlanID:     r.FormValue("plan"),
		TemplateID: r.FormValue("template"),
		All:        r.FormValue("all") == "1",
		WinterOnly: r.FormValue("winter") == "1",
	}
}

func selectionQuery(sel service.Selection) string {
	v := url.Values{}
	if sel.PlanID != "" {
		v.Set("plan", sel.PlanID)
	}
	if sel.TemplateID != "" {
		v.Set("template", sel.TemplateID)
	}
	if sel.All {
		v.Set("all", "1")
	}
	if sel.WinterOnly {
		v.Set("winter", "1")
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (s *Server) handleEquipment(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	view, err := s.checklists.View(r.Context(), sessionID(r), sel)
	if err != nil {
		s.serviceError(w, r, err, "failed to build checklist")
		return
	}

	cat := s.catalog.Current()
	if err := s.renderPage(w,
		page(r, "装備チェックリスト", map[string]any{
			"Checklist": view,
			"Plans":     cat.Plans(),
			"Templates": cat.Templates(),
		}),
		"base.html", "pages/equipment.html", "partials/checklist.html",
	); err != nil {
		s.logger.Error("render page error", "page", "equipment", "error", err)
	}
}

// respondChecklist answers a checklist mutation. HTMX requests get the
// re-rendered partial; plain form posts are redirected back to the page.
func (s *Server) respondChecklist(w http.ResponseWriter, r *http.Request, sel service.Selection) {
	if r.Header.Get("HX-Request") != "true" {
		http.Redirect(w, r, "/equipment"+selectionQuery(sel), http.StatusSeeOther)
		return
	}

	view, err := s.checklists.View(r.Context(), sessionID(r), sel)
	if err != nil {
		s.serviceError(w, r, err, "failed to build checklist")
		return
	}
	if err := s.renderPartial(w, "partials/checklist.html", view); err != nil {
		s.logger.Error("render partial error", "partial", "checklist", "error", err)
	}
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	if err := s.checklists.Validate(sel); err != nil {
		s.serviceError(w, r, err, "failed to toggle item")
		return
	}
	if _, err := s.checklists.Toggle(r.Context(), sessionID(r), r.PathValue("id")); err != nil {
		s.serviceError(w, r, err, "failed to toggle item")
		return
	}
	s.respondChecklist(w, r, sel)
}

func (s *Server) handleCheckAll(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	if _, err := s.checklists.CheckAll(r.Context(), sessionID(r), sel); err != nil {
		s.serviceError(w, r, err, "failed to check all items")
		return
	}
	s.respondChecklist(w, r, sel)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	sel := selectionFrom(r)
	if err := s.checklists.Validate(sel); err != nil {
		s.serviceError(w, r, err, "failed to clear checklist")
		return
	}
	if _, err := s.checklists.Clear(r.Context(), sessionID(r)); err != nil {
		s.serviceError(w, r, err, "failed to clear checklist")
		return
	}
	s.respondChecklist(w, r, sel)
}

type apiItem struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	RequirementLevel string `json:"requirementLevel"`
	ForWinter        bool   `json:"forWinter"`
	Checked          bool   `json:"checked"`
}

type apiGroup struct {
	Category string             `json:"category"`
	Icon     string             `json:"icon"`
	Progress checklist.Progress `json:"progress"`
	Items    []apiItem          `json:"items"`
}

type apiChecklist struct {
	Title    string             `json:"title"`
	Progress checklist.Progress `json:"progress"`
	Groups   []apiGroup         `json:"groups"`
}

func (s *Server) handleAPIChecklist(w http.ResponseWriter, r *http.Request) {
	view, err := s.checklists.View(r.Context(), sessionID(r), selectionFrom(r))
	if errors.Is(err, service.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("failed to build checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	out := apiChecklist{Title: view.Title, Progress: view.Progress, Groups: make([]apiGroup, 0, len(view.Groups))}
	for _, g := range view.Groups {
		group := apiGroup{
			Category: g.Category.Label(),
			Icon:     g.Category.Icon(),
			Progress: g.Progress,
			Items:    make([]apiItem, 0, len(g.Items)),
		}
		for _, item := range g.Items {
			group.Items = append(group.Items, apiItem{
				ID:               item.ID,
				Name:             item.Name,
				Description:      item.Description,
				RequirementLevel: item.RequirementLevel.Label(),
				ForWinter:        item.ForWinter,
				Checked:          view.State.Checked(item.ID),
			})
		}
		out.Groups = append(out.Groups, group)
	}

	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
