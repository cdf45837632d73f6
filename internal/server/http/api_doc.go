package httpserver

import "net/http"

// endpointDoc describes one API endpoint for the GET /api catalogue.
type endpointDoc struct {
	Description   string                 `json:"description"`
	Queries       []string               `json:"queries,omitempty"`
	ExampleBody   map[string]interface{} `json:"exampleRequest,omitempty"`
	ExampleStatus int                    `json:"exampleStatus,omitempty"`
}

// apiCatalogue is the static payload served from GET /api. It is assembled
// once at package init; the handler only serializes it.
var apiCatalogue = map[string]endpointDoc{
	"GET /api": {
		Description: "serves up a json representation of all the available endpoints of the api",
	},
	"GET /api/topics": {
		Description: "serves an array of all topics",
	},
	"POST /api/topics": {
		Description: "creates a topic and serves it back",
		ExampleBody: map[string]interface{}{
			"slug":        "gardening",
			"description": "growing things",
		},
		ExampleStatus: http.StatusCreated,
	},
	"DELETE /api/topics/:slug": {
		Description: "removes a topic by slug",
	},
	"GET /api/articles": {
		Description: "serves an array of all articles, each with a comment count and a total count of the filtered set",
		Queries:     []string{"topic", "sort_by", "order", "limit", "p"},
	},
	"POST /api/articles": {
		Description: "creates an article and serves it back with its comment count",
		ExampleBody: map[string]interface{}{
			"author": "butter_bridge",
			"title":  "important new article",
			"body":   "something topical",
			"topic":  "cats",
		},
		ExampleStatus: http.StatusCreated,
	},
	"GET /api/articles/:article_id": {
		Description: "serves a single article including its body and comment count",
	},
	"PATCH /api/articles/:article_id": {
		Description: "applies a vote delta to an article and serves the updated article",
		ExampleBody: map[string]interface{}{"inc_votes": 1},
	},
	"DELETE /api/articles/:article_id": {
		Description: "removes an article and its comments",
	},
	"GET /api/articles/:article_id/comments": {
		Description: "serves the comments on an article, newest first",
		Queries:     []string{"limit", "p"},
	},
	"POST /api/articles/:article_id/comments": {
		Description: "adds a comment to an article and serves it back",
		ExampleBody: map[string]interface{}{
			"username": "butter_bridge",
			"body":     "great article",
		},
		ExampleStatus: http.StatusCreated,
	},
	"PATCH /api/comments/:comment_id": {
		Description: "applies a vote delta to a comment and serves the updated comment",
		ExampleBody: map[string]interface{}{"inc_votes": -1},
	},
	"DELETE /api/comments/:comment_id": {
		Description: "removes a comment",
	},
	"GET /api/users": {
		Description: "serves an array of all users",
		Queries:     []string{"username"},
	},
}

// getEndpoints handles GET /api.
func (s *Server) getEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"endpoints": apiCatalogue})
}
