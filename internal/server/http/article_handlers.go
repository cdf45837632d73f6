package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newshub/news-api/internal/domain"
	"github.com/newshub/news-api/internal/params"
	"github.com/newshub/news-api/internal/repository"
)

// listArticles handles GET /api/articles. Known query keys (topic, sort_by,
// order, limit, p) are validated strictly; unknown keys fall back to the
// unfiltered listing. A topic filter matching nothing yields an empty
// listing, not an error.
func (s *Server) listArticles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	window, err := params.ParsePageWindow(q, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	filter := repository.ArticleFilter{
		Topic:  q.Get("topic"),
		SortBy: q.Get("sort_by"),
		Order:  q.Get("order"),
		Limit:  window.Limit,
		Page:   window.Page,
	}

	articles, totalCount, err := s.articleRepo.List(r.Context(), filter)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := listArticlesResponse{
		Articles:   make([]articleListItemResponse, 0, len(articles)),
		TotalCount: totalCount,
	}
	for _, a := range articles {
		resp.Articles = append(resp.Articles, domainArticleToListItem(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// getArticle handles GET /api/articles/{articleID}.
func (s *Server) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := params.ParseID("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	article, err := s.articleRepo.GetByID(r.Context(), articleID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]articleResponse{
		"article": domainArticleToResponse(article),
	})
}

// createArticle handles POST /api/articles.
func (s *Server) createArticle(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	payload, err := params.ParseNewArticle(body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	imgURL := payload.ArticleImgURL
	if imgURL == "" {
		imgURL = s.cfg.DefaultArticleImgURL
	}

	article, err := s.articleRepo.Create(r.Context(), &domain.Article{
		Author:        payload.Author,
		Title:         payload.Title,
		Body:          payload.Body,
		Topic:         payload.Topic,
		ArticleImgURL: imgURL,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]articleResponse{
		"newArticle": domainArticleToResponse(article),
	})
}

// updateArticleVotes handles PATCH /api/articles/{articleID}.
func (s *Server) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	articleID, err := params.ParseID("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	delta, err := params.ParseVoteDelta(body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	article, err := s.articleRepo.UpdateVotes(r.Context(), articleID, delta)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]updatedArticleResponse{
		"updatedArticle": domainArticleToUpdatedResponse(article),
	})
}

// deleteArticle handles DELETE /api/articles/{articleID}. Comments go with
// the article through the store's cascade.
func (s *Server) deleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := params.ParseID("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := s.articleRepo.Delete(r.Context(), articleID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
