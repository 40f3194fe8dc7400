package chi

import (
	"net/http"

	chimux "github.com/go-chi/chi/v5"

	domskill "github.com/kailas-cloud/scoutdex/internal/domain/skill"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

func (s *Server) skillRoutes(r chimux.Router) {
	r.Post("/", s.createSkill)
	r.Get("/", s.listSkills)
	r.Post("/search", s.searchSkills)
	r.Post("/match", s.matchSkills)
	r.Get("/top", s.topSkills)
	r.Get("/by-name", s.skillsByName)
	r.Get("/{id}", s.getSkill)
	r.Put("/{id}", s.updateSkill)
	r.Delete("/{id}", s.deleteSkill)
	r.Get("/{id}/similar", s.similarSkills)
}

// createSkill handles POST /api/v1/skills.
func (s *Server) createSkill(w http.ResponseWriter, r *http.Request) {
	var sk domskill.Skill
	if !decodeJSON(w, r, &sk) {
		return
	}

	id, err := s.skills.Create(r.Context(), &sk)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/skills/"+id)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// getSkill handles GET /api/v1/skills/{id}.
func (s *Server) getSkill(w http.ResponseWriter, r *http.Request) {
	sk, err := s.skills.Get(r.Context(), chimux.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sk)
}

// updateSkill handles PUT /api/v1/skills/{id}.
func (s *Server) updateSkill(w http.ResponseWriter, r *http.Request) {
	var sk domskill.Skill
	if !decodeJSON(w, r, &sk) {
		return
	}

	if err := s.skills.Update(r.Context(), chimux.URLParam(r, "id"), &sk); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteSkill handles DELETE /api/v1/skills/{id}.
func (s *Server) deleteSkill(w http.ResponseWriter, r *http.Request) {
	if err := s.skills.Delete(r.Context(), chimux.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listSkills handles GET /api/v1/skills.
func (s *Server) listSkills(w http.ResponseWriter, r *http.Request) {
	f := domskill.Filters{
		Categories: queryCSV(r, "category"),
		MinWeight:  queryFloat(r, "min_weight"),
	}
	for _, l := range queryCSV(r, "level") {
		f.Levels = append(f.Levels, domskill.Level(l))
	}
	offset, limit := s.page(r)

	items, err := s.skills.List(r.Context(), f, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	total, err := s.skills.Count(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[*domskill.Skill]{Items: items, Total: total})
}

// searchSkills handles POST /api/v1/skills/search.
func (s *Server) searchSkills(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query      string   `json:"query"`
		Categories []string `json:"categories,omitempty"`
		Levels     []string `json:"levels,omitempty"`
		Limit      int      `json:"limit,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	f := domskill.Filters{Categories: req.Categories}
	for _, l := range req.Levels {
		f.Levels = append(f.Levels, domskill.Level(l))
	}

	matches, err := s.skills.Search(r.Context(), req.Query, f, s.searchLimit(req.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, skillMatches(matches))
}

// similarSkills handles GET /api/v1/skills/{id}/similar.
func (s *Server) similarSkills(w http.ResponseWriter, r *http.Request) {
	_, limit := s.page(r)
	matches, err := s.skills.FindSimilar(r.Context(), chimux.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, skillMatches(matches))
}

// topSkills handles GET /api/v1/skills/top.
func (s *Server) topSkills(w http.ResponseWriter, r *http.Request) {
	_, limit := s.page(r)
	items, err := s.skills.Top(r.Context(), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[*domskill.Skill]{Items: items, Total: len(items)})
}

// skillsByName handles GET /api/v1/skills/by-name.
func (s *Server) skillsByName(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, codeBadRequest, "name query parameter is required")
		return
	}

	items, err := s.skills.SearchByName(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse[*domskill.Skill]{Items: items, Total: len(items)})
}

// matchSkills handles POST /api/v1/skills/match.
func (s *Server) matchSkills(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Requirements []string `json:"requirements"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	report, err := s.skills.MatchRequirements(r.Context(), req.Requirements)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"matched":     report.Matched,
		"partial":     report.Partial,
		"missing":     report.Missing,
		"match_score": report.MatchScore,
	})
}

func skillMatches(matches []sync.Match[*domskill.Skill]) searchResponse[*domskill.Skill] {
	items := make([]scoredItem[*domskill.Skill], len(matches))
	for i, m := range matches {
		items[i] = scoredItem[*domskill.Skill]{Item: m.Entity, Score: m.Score}
	}
	return searchResponse[*domskill.Skill]{Items: items}
}
