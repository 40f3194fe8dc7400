package chi

import (
	"net/http"

	chimux "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	dompost "github.com/kailas-cloud/scoutdex/internal/domain/posting"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

func (s *Server) postingRoutes(r chimux.Router) {
	r.Post("/", s.createPosting)
	r.Post("/search", s.searchPostings)
	r.Get("/best-matches", s.bestMatchPostings)
	r.Get("/{id}", s.getPosting)
	r.Put("/{id}", s.updatePosting)
	r.Delete("/{id}", s.deletePosting)
	r.Post("/{id}/archive", s.archivePosting)
	r.Post("/{id}/evaluations", s.addPostingEvaluation)
	r.Get("/{id}/similar", s.similarPostings)
}

// createPosting handles POST /api/v1/postings.
func (s *Server) createPosting(w http.ResponseWriter, r *http.Request) {
	var p dompost.Posting
	if !decodeJSON(w, r, &p) {
		return
	}

	id, err := s.postings.Create(r.Context(), &p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/postings/"+id)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// getPosting handles GET /api/v1/postings/{id}.
func (s *Server) getPosting(w http.ResponseWriter, r *http.Request) {
	p, err := s.postings.Get(r.Context(), chimux.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// updatePosting handles PUT /api/v1/postings/{id}.
func (s *Server) updatePosting(w http.ResponseWriter, r *http.Request) {
	var p dompost.Posting
	if !decodeJSON(w, r, &p) {
		return
	}

	if err := s.postings.Update(r.Context(), chimux.URLParam(r, "id"), &p); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deletePosting handles DELETE /api/v1/postings/{id}.
func (s *Server) deletePosting(w http.ResponseWriter, r *http.Request) {
	if err := s.postings.Delete(r.Context(), chimux.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// archivePosting handles POST /api/v1/postings/{id}/archive.
func (s *Server) archivePosting(w http.ResponseWriter, r *http.Request) {
	if err := s.postings.Archive(r.Context(), chimux.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// addPostingEvaluation handles POST /api/v1/postings/{id}/evaluations.
func (s *Server) addPostingEvaluation(w http.ResponseWriter, r *http.Request) {
	var ev domain.Evaluation
	if !decodeJSON(w, r, &ev) {
		return
	}

	if err := s.postings.AddEvaluation(r.Context(), chimux.URLParam(r, "id"), ev); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// searchPostings handles POST /api/v1/postings/search.
func (s *Server) searchPostings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query         string   `json:"query"`
		CompanyID     string   `json:"company_id,omitempty"`
		ActiveOnly    bool     `json:"active_only,omitempty"`
		MinMatchScore *float64 `json:"min_match_score,omitempty"`
		Limit         int      `json:"limit,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	f := dompost.Filters{
		CompanyID:     req.CompanyID,
		ActiveOnly:    req.ActiveOnly,
		MinMatchScore: req.MinMatchScore,
	}

	matches, err := s.postings.Search(r.Context(), req.Query, f, s.searchLimit(req.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postingMatches(matches))
}

// similarPostings handles GET /api/v1/postings/{id}/similar.
func (s *Server) similarPostings(w http.ResponseWriter, r *http.Request) {
	_, limit := s.page(r)
	matches, err := s.postings.FindSimilar(r.Context(), chimux.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, postingMatches(matches))
}

// bestMatchPostings handles GET /api/v1/postings/best-matches.
func (s *Server) bestMatchPostings(w http.ResponseWriter, r *http.Request) {
	minScore := 0.0
	if v := queryFloat(r, "min_score"); v != nil {
		minScore = *v
	}
	_, limit := s.page(r)

	postings, err := s.postings.BestMatches(r.Context(), minScore, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": postings})
}

func postingMatches(matches []sync.Match[*dompost.Posting]) searchResponse[*dompost.Posting] {
	items := make([]scoredItem[*dompost.Posting], len(matches))
	for i, m := range matches {
		items[i] = scoredItem[*dompost.Posting]{Item: m.Entity, Score: m.Score}
	}
	return searchResponse[*dompost.Posting]{Items: items}
}
