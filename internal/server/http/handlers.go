package httpserver

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/newshub/news-api/internal/domain"
	"github.com/newshub/news-api/internal/params"
)

// maxRequestBodySize caps request bodies at 1 MB.
const maxRequestBodySize = 1 << 20

// readBody drains the request body under the size cap.
func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
}

// listTopics handles GET /api/topics.
func (s *Server) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := s.topicRepo.List(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := listTopicsResponse{Topics: make([]topicResponse, 0, len(topics))}
	for _, t := range topics {
		resp.Topics = append(resp.Topics, domainTopicToResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}

// createTopic handles POST /api/topics.
func (s *Server) createTopic(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	payload, err := params.ParseNewTopic(body)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	topic, err := s.topicRepo.Create(r.Context(), &domain.Topic{
		Slug:        payload.Slug,
		Description: payload.Description,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]topicResponse{
		"newTopic": domainTopicToResponse(topic),
	})
}

// deleteTopic handles DELETE /api/topics/{slug}.
func (s *Server) deleteTopic(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if err := s.topicRepo.Delete(r.Context(), slug); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listUsers handles GET /api/users. A username query parameter restricts the
// listing to one user; unknown query keys are ignored.
func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")

	users, err := s.userRepo.List(r.Context(), username)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	resp := listUsersResponse{Users: make([]userResponse, 0, len(users))}
	for _, u := range users {
		resp.Users = append(resp.Users, domainUserToResponse(u))
	}
	writeJSON(w, http.StatusOK, resp)
}
