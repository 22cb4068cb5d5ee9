package web

import (
	"net/http"

	"github.com/vbonduro/trailplan/internal/domain"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	home := s.trips.Home()
	if err := s.renderPage(w,
		page(r, "ホーム", map[string]any{"Home": home}),
		"base.html", "pages/home.html", "partials/plan_card.html", "partials/mountain_card.html",
	); err != nil {
		s.logger.Error("render page error", "page", "home", "error", err)
	}
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans := s.trips.ListPlans()
	if err := s.renderPage(w,
		page(r, "登山計画", map[string]any{"Plans": plans}),
		"base.html", "pages/plans.html", "partials/plan_card.html",
	); err != nil {
		s.logger.Error("render page error", "page", "plans", "error", err)
	}
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	detail, err := s.trips.Plan(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, r, err, "failed to get plan")
		return
	}

	if err := s.renderPage(w,
		page(r, detail.Title, map[string]any{"Plan": detail}),
		"base.html", "pages/plan_detail.html",
	); err != nil {
		s.logger.Error("render page error", "page", "plan_detail", "error", err)
	}
}

func (s *Server) handleListMountains(w http.ResponseWriter, r *http.Request) {
	var difficulty domain.Difficulty
	if q := r.URL.Query().Get("difficulty"); q != "" {
		d, err := domain.ParseDifficulty(q)
		if err != nil {
			http.Error(w, "invalid difficulty", http.StatusBadRequest)
			return
		}
		difficulty = d
	}

	if err := s.renderPage(w,
		page(r, "山情報", map[string]any{
			"Mountains":    s.trips.Mountains(difficulty),
			"Difficulty":   difficulty,
			"Difficulties": difficultyOptions(),
		}),
		"base.html", "pages/mountains.html", "partials/mountain_card.html",
	); err != nil {
		s.logger.Error("render page error", "page", "mountains", "error", err)
	}
}

func (s *Server) handleGetMountain(w http.ResponseWriter, r *http.Request) {
	detail, err := s.trips.Mountain(r.PathValue("id"))
	if err != nil {
		s.serviceError(w, r, err, "failed to get mountain")
		return
	}

	if err := s.renderPage(w,
		page(r, detail.Name, map[string]any{"Mountain": detail}),
		"base.html", "pages/mountain_detail.html", "partials/plan_card.html",
	); err != nil {
		s.logger.Error("render page error", "page", "mountain_detail", "error", err)
	}
}
