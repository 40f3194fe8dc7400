package chi

import (
	"net/http"

	chimux "github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/scoutdex/internal/domain"
	domco "github.com/kailas-cloud/scoutdex/internal/domain/company"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

func (s *Server) companyRoutes(r chimux.Router) {
	r.Post("/", s.createCompany)
	r.Get("/", s.listCompanies)
	r.Post("/search", s.searchCompanies)
	r.Get("/{id}", s.getCompany)
	r.Put("/{id}", s.updateCompany)
	r.Delete("/{id}", s.deleteCompany)
	r.Get("/{id}/similar", s.similarCompanies)
	r.Post("/{id}/evaluations", s.addCompanyEvaluation)
	r.Get("/{id}/evaluations", s.listCompanyEvaluations)
	r.Get("/{id}/postings", s.listCompanyPostings)
}

// createCompany handles POST /api/v1/companies.
func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var c domco.Company
	if !decodeJSON(w, r, &c) {
		return
	}

	id, err := s.companies.Create(r.Context(), &c)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/companies/"+id)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// getCompany handles GET /api/v1/companies/{id}.
func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.companies.Get(r.Context(), chimux.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCompany handles PUT /api/v1/companies/{id}.
func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	var c domco.Company
	if !decodeJSON(w, r, &c) {
		return
	}

	if err := s.companies.Update(r.Context(), chimux.URLParam(r, "id"), &c); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteCompany handles DELETE /api/v1/companies/{id}.
func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := s.companies.Delete(r.Context(), chimux.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listCompanies handles GET /api/v1/companies.
func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	f := companyFiltersFromQuery(r)
	offset, limit := s.page(r)

	items, err := s.companies.List(r.Context(), f, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	total, err := s.companies.Count(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[*domco.Company]{Items: items, Total: total})
}

// searchCompanies handles POST /api/v1/companies/search.
func (s *Server) searchCompanies(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query       string   `json:"query"`
		Industries  []string `json:"industries,omitempty"`
		Stages      []string `json:"stages,omitempty"`
		MinFitScore *float64 `json:"min_fit_score,omitempty"`
		Limit       int      `json:"limit,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	f := domco.Filters{MinFitScore: req.MinFitScore}
	for _, i := range req.Industries {
		f.Industries = append(f.Industries, domco.Industry(i))
	}
	for _, st := range req.Stages {
		f.Stages = append(f.Stages, domco.Stage(st))
	}

	matches, err := s.companies.Search(r.Context(), req.Query, f, s.searchLimit(req.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, companyMatches(matches))
}

// similarCompanies handles GET /api/v1/companies/{id}/similar.
func (s *Server) similarCompanies(w http.ResponseWriter, r *http.Request) {
	_, limit := s.page(r)
	matches, err := s.companies.FindSimilar(r.Context(), chimux.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, companyMatches(matches))
}

// addCompanyEvaluation handles POST /api/v1/companies/{id}/evaluations.
func (s *Server) addCompanyEvaluation(w http.ResponseWriter, r *http.Request) {
	var ev domain.Evaluation
	if !decodeJSON(w, r, &ev) {
		return
	}

	if err := s.companies.AddEvaluation(r.Context(), chimux.URLParam(r, "id"), ev); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listCompanyEvaluations handles GET /api/v1/companies/{id}/evaluations.
func (s *Server) listCompanyEvaluations(w http.ResponseWriter, r *http.Request) {
	evs, err := s.companies.Evaluations(r.Context(), chimux.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": evs})
}

// listCompanyPostings handles GET /api/v1/companies/{id}/postings.
func (s *Server) listCompanyPostings(w http.ResponseWriter, r *http.Request) {
	offset, limit := s.page(r)
	postings, err := s.postings.ListForCompany(
		r.Context(), chimux.URLParam(r, "id"), queryBool(r, "include_archived"), offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": postings})
}

func companyFiltersFromQuery(r *http.Request) domco.Filters {
	f := domco.Filters{
		MinFitScore: queryFloat(r, "min_fit_score"),
		DateFrom:    queryTime(r, "date_from"),
		DateTo:      queryTime(r, "date_to"),
	}
	for _, i := range queryCSV(r, "industry") {
		f.Industries = append(f.Industries, domco.Industry(i))
	}
	for _, st := range queryCSV(r, "stage") {
		f.Stages = append(f.Stages, domco.Stage(st))
	}
	return f
}

func companyMatches(matches []sync.Match[*domco.Company]) searchResponse[*domco.Company] {
	items := make([]scoredItem[*domco.Company], len(matches))
	for i, m := range matches {
		items[i] = scoredItem[*domco.Company]{Item: m.Entity, Score: m.Score}
	}
	return searchResponse[*domco.Company]{Items: items}
}
