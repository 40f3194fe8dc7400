package chi

import (
	"net/http"

	chimux "github.com/go-chi/chi/v5"

	domart "github.com/kailas-cloud/scoutdex/internal/domain/article"
	"github.com/kailas-cloud/scoutdex/internal/usecase/sync"
)

func (s *Server) articleRoutes(r chimux.Router) {
	r.Post("/", s.createArticle)
	r.Get("/", s.listArticles)
	r.Post("/search", s.searchArticles)
	r.Get("/{id}", s.getArticle)
	r.Put("/{id}", s.updateArticle)
	r.Delete("/{id}", s.deleteArticle)
	r.Get("/{id}/similar", s.similarArticles)
	r.Post("/{id}/tags", s.addArticleTags)
	r.Delete("/{id}/tags", s.removeArticleTags)
}

// createArticle handles POST /api/v1/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	var a domart.Article
	if !decodeJSON(w, r, &a) {
		return
	}

	id, err := s.articles.Create(r.Context(), &a)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Location", "/api/v1/articles/"+id)
	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

// getArticle handles GET /api/v1/articles/{id}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	a, err := s.articles.Get(r.Context(), chimux.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// updateArticle handles PUT /api/v1/articles/{id}.
func (s *Server) updateArticle(w http.ResponseWriter, r *http.Request) {
	var a domart.Article
	if !decodeJSON(w, r, &a) {
		return
	}

	if err := s.articles.Update(r.Context(), chimux.URLParam(r, "id"), &a); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// deleteArticle handles DELETE /api/v1/articles/{id}.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.articles.Delete(r.Context(), chimux.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listArticles handles GET /api/v1/articles.
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	f := domart.Filters{
		Authors:         queryCSV(r, "author"),
		Sources:         queryCSV(r, "source"),
		Tags:            queryCSV(r, "tag"),
		PublishedAfter:  queryTime(r, "published_after"),
		PublishedBefore: queryTime(r, "published_before"),
	}
	offset, limit := s.page(r)

	items, err := s.articles.List(r.Context(), f, offset, limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	total, err := s.articles.Count(r.Context(), f)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[*domart.Article]{Items: items, Total: total})
}

// searchArticles handles POST /api/v1/articles/search.
func (s *Server) searchArticles(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query   string   `json:"query"`
		Authors []string `json:"authors,omitempty"`
		Sources []string `json:"sources,omitempty"`
		Tags    []string `json:"tags,omitempty"`
		Limit   int      `json:"limit,omitempty"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	f := domart.Filters{Authors: req.Authors, Sources: req.Sources, Tags: req.Tags}

	matches, err := s.articles.Search(r.Context(), req.Query, f, s.searchLimit(req.Limit))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, articleMatches(matches))
}

// similarArticles handles GET /api/v1/articles/{id}/similar.
func (s *Server) similarArticles(w http.ResponseWriter, r *http.Request) {
	_, limit := s.page(r)
	matches, err := s.articles.FindSimilar(r.Context(), chimux.URLParam(r, "id"), limit)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, articleMatches(matches))
}

// addArticleTags handles POST /api/v1/articles/{id}/tags.
func (s *Server) addArticleTags(w http.ResponseWriter, r *http.Request) {
	tags, ok := tagsFromBody(w, r)
	if !ok {
		return
	}

	if err := s.articles.AddTags(r.Context(), chimux.URLParam(r, "id"), tags...); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// removeArticleTags handles DELETE /api/v1/articles/{id}/tags.
func (s *Server) removeArticleTags(w http.ResponseWriter, r *http.Request) {
	tags, ok := tagsFromBody(w, r)
	if !ok {
		return
	}

	if err := s.articles.RemoveTags(r.Context(), chimux.URLParam(r, "id"), tags...); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func tagsFromBody(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	var req struct {
		Tags []string `json:"tags"`
	}
	if !decodeJSON(w, r, &req) {
		return nil, false
	}
	if len(req.Tags) == 0 {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "tags are required")
		return nil, false
	}
	return req.Tags, true
}

func articleMatches(matches []sync.Match[*domart.Article]) searchResponse[*domart.Article] {
	items := make([]scoredItem[*domart.Article], len(matches))
	for i, m := range matches {
		items[i] = scoredItem[*domart.Article]{Item: m.Entity, Score: m.Score}
	}
	return searchResponse[*domart.Article]{Items: items}
}
