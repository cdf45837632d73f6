package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newshub/news-api/internal/params"
)

// listArticleComments handles GET /api/articles/{articleID}/comments.
// Article existence is checked separately so "exists with zero comments"
// returns an empty list rather than a 404.
func (s *Server) listArticleComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := params.ParseID("article_id", chi.URLParam(r, "articleID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	window, err := params.ParsePageWindow(r.URL.Query(), s.cfg.DefaultLimit, s.cfg.MaxLimit)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	exists, err := s.articleRepo.Exists(r.Context(), articleID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "article not found")
		return
	}

	comments, err := s.commentRepo.ListByArticle(r.Context(), articleID, window.Limit, window.Offset())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := listCommentsResponse{Comments: make([]commentResponse, 0, len(comments))}
	for _, c := range comments {
		resp.Comments = append(resp.Comments, domainCommentToResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createComment handles POST /api/articles/{articleID}/comments.
func (s *Server) createComment(w http.ResponseWriter, r *http.Request) {
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

	payload, err := params.ParseNewComment(body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	comment, err := s.commentRepo.Create(r.Context(), articleID, payload.Username, payload.Body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]commentResponse{
		"newComment": domainCommentToResponse(comment),
	})
}

// updateCommentVotes handles PATCH /api/comments/{commentID}.
func (s *Server) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	commentID, err := params.ParseID("comment_id", chi.URLParam(r, "commentID"))
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

	comment, err := s.commentRepo.UpdateVotes(r.Context(), commentID, delta)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]commentResponse{
		"updatedComment": domainCommentToResponse(comment),
	})
}

// deleteComment handles DELETE /api/comments/{commentID}.
func (s *Server) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := params.ParseID("comment_id", chi.URLParam(r, "commentID"))
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	if err := s.commentRepo.Delete(r.Context(), commentID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
