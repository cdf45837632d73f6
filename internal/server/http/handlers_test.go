package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newshub/news-api/internal/domain"
	"github.com/newshub/news-api/internal/observability"
	"github.com/newshub/news-api/internal/repository"
)

// Mock repositories with overridable behavior per test.

type mockTopicRepo struct {
	listFn   func(ctx context.Context) ([]*domain.Topic, error)
	createFn func(ctx context.Context, topic *domain.Topic) (*domain.Topic, error)
	deleteFn func(ctx context.Context, slug string) error
}

func (m *mockTopicRepo) List(ctx context.Context) ([]*domain.Topic, error) {
	return m.listFn(ctx)
}

func (m *mockTopicRepo) Create(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
	return m.createFn(ctx, topic)
}

func (m *mockTopicRepo) Delete(ctx context.Context, slug string) error {
	return m.deleteFn(ctx, slug)
}

type mockArticleRepo struct {
	listFn        func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error)
	getByIDFn     func(ctx context.Context, articleID int) (*domain.Article, error)
	createFn      func(ctx context.Context, article *domain.Article) (*domain.Article, error)
	updateVotesFn func(ctx context.Context, articleID, delta int) (*domain.Article, error)
	deleteFn      func(ctx context.Context, articleID int) error
	existsFn      func(ctx context.Context, articleID int) (bool, error)
}

func (m *mockArticleRepo) List(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
	return m.listFn(ctx, filter)
}

func (m *mockArticleRepo) GetByID(ctx context.Context, articleID int) (*domain.Article, error) {
	return m.getByIDFn(ctx, articleID)
}

func (m *mockArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	return m.createFn(ctx, article)
}

func (m *mockArticleRepo) UpdateVotes(ctx context.Context, articleID, delta int) (*domain.Article, error) {
	return m.updateVotesFn(ctx, articleID, delta)
}

func (m *mockArticleRepo) Delete(ctx context.Context, articleID int) error {
	return m.deleteFn(ctx, articleID)
}

func (m *mockArticleRepo) Exists(ctx context.Context, articleID int) (bool, error) {
	return m.existsFn(ctx, articleID)
}

type mockCommentRepo struct {
	listByArticleFn func(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error)
	createFn        func(ctx context.Context, articleID int, username, body string) (*domain.Comment, error)
	updateVotesFn   func(ctx context.Context, commentID, delta int) (*domain.Comment, error)
	deleteFn        func(ctx context.Context, commentID int) error
}

func (m *mockCommentRepo) ListByArticle(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error) {
	return m.listByArticleFn(ctx, articleID, limit, offset)
}

func (m *mockCommentRepo) Create(ctx context.Context, articleID int, username, body string) (*domain.Comment, error) {
	return m.createFn(ctx, articleID, username, body)
}

func (m *mockCommentRepo) UpdateVotes(ctx context.Context, commentID, delta int) (*domain.Comment, error) {
	return m.updateVotesFn(ctx, commentID, delta)
}

func (m *mockCommentRepo) Delete(ctx context.Context, commentID int) error {
	return m.deleteFn(ctx, commentID)
}

type mockUserRepo struct {
	listFn func(ctx context.Context, username string) ([]*domain.User, error)
}

func (m *mockUserRepo) List(ctx context.Context, username string) ([]*domain.User, error) {
	return m.listFn(ctx, username)
}

type testDeps struct {
	topics   *mockTopicRepo
	articles *mockArticleRepo
	comments *mockCommentRepo
	users    *mockUserRepo
}

func newTestServer(t *testing.T, deps testDeps) *Server {
	t.Helper()

	if deps.topics == nil {
		deps.topics = &mockTopicRepo{}
	}
	if deps.articles == nil {
		deps.articles = &mockArticleRepo{}
	}
	if deps.comments == nil {
		deps.comments = &mockCommentRepo{}
	}
	if deps.users == nil {
		deps.users = &mockUserRepo{}
	}

	return NewServer(
		Config{
			Address:              "127.0.0.1:0",
			DefaultArticleImgURL: "https://img.example/default.png",
			MaxLimit:             100,
		},
		deps.topics,
		deps.articles,
		deps.comments,
		deps.users,
		nil,
		zerolog.Nop(),
		observability.NewMetrics("newsapi_test", prometheus.NewRegistry()),
	)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func errorMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope map[string]string
	decodeBody(t, rec, &envelope)
	return envelope["msg"]
}

func TestListTopics(t *testing.T) {
	s := newTestServer(t, testDeps{topics: &mockTopicRepo{
		listFn: func(ctx context.Context) ([]*domain.Topic, error) {
			return []*domain.Topic{
				{Slug: "mitch", Description: "The man"},
				{Slug: "cats", Description: "Not dogs"},
			}, nil
		},
	}})

	rec := doRequest(t, s, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp listTopicsResponse
	decodeBody(t, rec, &resp)
	require.Len(t, resp.Topics, 2)
	assert.Equal(t, "mitch", resp.Topics[0].Slug)
}

func TestCreateTopic(t *testing.T) {
	t.Run("creates and echoes the topic", func(t *testing.T) {
		s := newTestServer(t, testDeps{topics: &mockTopicRepo{
			createFn: func(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
				return topic, nil
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/topics",
			`{"slug": "euro 2024", "description": "football"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]topicResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "euro 2024", resp["newTopic"].Slug)
		assert.Equal(t, "football", resp["newTopic"].Description)
	})

	t.Run("missing field is a 400", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		rec := doRequest(t, s, http.MethodPost, "/api/topics", `{"slug": "lonely"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, errorMsg(t, rec), "description")
	})

	t.Run("duplicate slug is a 409", func(t *testing.T) {
		s := newTestServer(t, testDeps{topics: &mockTopicRepo{
			createFn: func(ctx context.Context, topic *domain.Topic) (*domain.Topic, error) {
				return nil, domain.NewAlreadyExistsError("topic", topic.Slug)
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/topics",
			`{"slug": "cats", "description": "again"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestDeleteTopic(t *testing.T) {
	t.Run("deletes an existing topic", func(t *testing.T) {
		s := newTestServer(t, testDeps{topics: &mockTopicRepo{
			deleteFn: func(ctx context.Context, slug string) error {
				assert.Equal(t, "cats", slug)
				return nil
			},
		}})

		rec := doRequest(t, s, http.MethodDelete, "/api/topics/cats", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})

	t.Run("unknown slug is a 404", func(t *testing.T) {
		s := newTestServer(t, testDeps{topics: &mockTopicRepo{
			deleteFn: func(ctx context.Context, slug string) error {
				return domain.NewNotFoundError("topic", slug)
			},
		}})

		rec := doRequest(t, s, http.MethodDelete, "/api/topics/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListArticles(t *testing.T) {
	t.Run("returns articles with aggregates", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
				assert.Equal(t, 10, filter.Limit)
				assert.Equal(t, 1, filter.Page)
				return []*domain.Article{
					{ArticleID: 1, Author: "butter_bridge", Title: "first", Topic: "mitch", CommentCount: 11, TotalCount: 13},
				}, 13, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/articles", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listArticlesResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Articles, 1)
		assert.Equal(t, 13, resp.TotalCount)
		assert.Equal(t, 11, resp.Articles[0].CommentCount)
		assert.Equal(t, 13, resp.Articles[0].TotalCount)
		assert.NotContains(t, rec.Body.String(), `"body"`)
	})

	t.Run("forwards filter values", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
				assert.Equal(t, "cats", filter.Topic)
				assert.Equal(t, "votes", filter.SortBy)
				assert.Equal(t, "asc", filter.Order)
				assert.Equal(t, 5, filter.Limit)
				assert.Equal(t, 2, filter.Page)
				return []*domain.Article{{ArticleID: 5, Topic: "cats", TotalCount: 6}}, 6, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet,
			"/api/articles?topic=cats&sort_by=votes&order=asc&limit=5&p=2", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bad sort_by is a 400", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
				return nil, 0, domain.NewValidationError("sort_by", "is not a sortable column")
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/articles?sort_by=height", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad limit is a 400 before any store call", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		rec := doRequest(t, s, http.MethodGet, "/api/articles?limit=banana", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("configured default limit applies when the query omits it", func(t *testing.T) {
		articles := &mockArticleRepo{
			listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
				assert.Equal(t, 7, filter.Limit)
				return []*domain.Article{}, 0, nil
			},
		}
		s := NewServer(
			Config{Address: "127.0.0.1:0", DefaultLimit: 7, MaxLimit: 100},
			&mockTopicRepo{}, articles, &mockCommentRepo{}, &mockUserRepo{},
			nil, zerolog.Nop(), nil,
		)

		rec := doRequest(t, s, http.MethodGet, "/api/articles", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("topic filter matching nothing is an empty 200", func(t *testing.T) {
		s := newTestServer(t, testDeps{
			articles: &mockArticleRepo{
				listFn: func(ctx context.Context, filter repository.ArticleFilter) ([]*domain.Article, int, error) {
					return []*domain.Article{}, 0, nil
				},
			},
		})

		// The same contract holds whether the topic exists with no
		// articles or does not exist at all.
		for _, topic := range []string{"paper", "not-a-topic"} {
			rec := doRequest(t, s, http.MethodGet, "/api/articles?topic="+topic, "")
			require.Equal(t, http.StatusOK, rec.Code, "topic %q", topic)

			var resp listArticlesResponse
			decodeBody(t, rec, &resp)
			assert.NotNil(t, resp.Articles, "topic %q", topic)
			assert.Empty(t, resp.Articles, "topic %q", topic)
			assert.Zero(t, resp.TotalCount, "topic %q", topic)
		}
	})
}

func TestGetArticle(t *testing.T) {
	t.Run("returns the article with comment count", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			getByIDFn: func(ctx context.Context, articleID int) (*domain.Article, error) {
				assert.Equal(t, 1, articleID)
				return &domain.Article{ArticleID: 1, Author: "butter_bridge", Body: "text", CommentCount: 11}, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/articles/1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]articleResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 1, resp["article"].ArticleID)
		assert.Equal(t, "text", resp["article"].Body)
		assert.Equal(t, 11, resp["article"].CommentCount)
	})

	t.Run("syntactically invalid ids are 400s", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		for _, id := range []string{"0", "-1", "3.14", "abc"} {
			rec := doRequest(t, s, http.MethodGet, "/api/articles/"+id, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code, "id %q", id)
		}
	})

	t.Run("well-formed missing id is a 404", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			getByIDFn: func(ctx context.Context, articleID int) (*domain.Article, error) {
				return nil, domain.NewNotFoundError("article", "999")
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/articles/999", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "article not found", errorMsg(t, rec))
	})
}

func TestCreateArticle(t *testing.T) {
	t.Run("applies the default image url", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			createFn: func(ctx context.Context, article *domain.Article) (*domain.Article, error) {
				assert.Equal(t, "https://img.example/default.png", article.ArticleImgURL)
				article.ArticleID = 14
				return article, nil
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/articles",
			`{"author": "rogersop", "title": "t", "body": "b", "topic": "cats"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]articleResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 14, resp["newArticle"].ArticleID)
		assert.Equal(t, "https://img.example/default.png", resp["newArticle"].ArticleImgURL)
	})

	t.Run("keeps a caller-supplied image url", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			createFn: func(ctx context.Context, article *domain.Article) (*domain.Article, error) {
				assert.Equal(t, "https://img.example/mine.png", article.ArticleImgURL)
				return article, nil
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/articles",
			`{"author": "rogersop", "title": "t", "body": "b", "topic": "cats", "article_img_url": "https://img.example/mine.png"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing field is a 400", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		rec := doRequest(t, s, http.MethodPost, "/api/articles",
			`{"author": "rogersop", "title": "t", "body": "b"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown author or topic is a 404 Invalid input", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			createFn: func(ctx context.Context, article *domain.Article) (*domain.Article, error) {
				return nil, domain.NewReferenceError("article", "author or topic does not exist")
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/articles",
			`{"author": "ghost", "title": "t", "body": "b", "topic": "cats"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid input", errorMsg(t, rec))
	})
}

func TestUpdateArticleVotes(t *testing.T) {
	t.Run("applies the delta", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			updateVotesFn: func(ctx context.Context, articleID, delta int) (*domain.Article, error) {
				assert.Equal(t, 1, articleID)
				assert.Equal(t, -100, delta)
				return &domain.Article{ArticleID: 1, Votes: 0}, nil
			},
		}})

		rec := doRequest(t, s, http.MethodPatch, "/api/articles/1", `{"inc_votes": -100}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]updatedArticleResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 1, resp["updatedArticle"].ArticleID)
	})

	t.Run("bad delta payloads are 400s", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		for _, body := range []string{
			`{}`,
			`{"inc_votes": "1"}`,
			`{"inc_votes": 1.5}`,
			`{"inc_votes": 1, "name": "Mitch"}`,
		} {
			rec := doRequest(t, s, http.MethodPatch, "/api/articles/1", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, "body %q", body)
		}
	})

	t.Run("unknown article is a 404", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			updateVotesFn: func(ctx context.Context, articleID, delta int) (*domain.Article, error) {
				return nil, domain.NewNotFoundError("article", "999")
			},
		}})

		rec := doRequest(t, s, http.MethodPatch, "/api/articles/999", `{"inc_votes": 1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteArticle(t *testing.T) {
	t.Run("deletes and returns no content", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			deleteFn: func(ctx context.Context, articleID int) error {
				assert.Equal(t, 1, articleID)
				return nil
			},
		}})

		rec := doRequest(t, s, http.MethodDelete, "/api/articles/1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("store inconsistency is a 500", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			deleteFn: func(ctx context.Context, articleID int) error {
				return domain.ErrStoreInconsistent
			},
		}})

		rec := doRequest(t, s, http.MethodDelete, "/api/articles/1", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", errorMsg(t, rec))
	})
}

func TestListArticleComments(t *testing.T) {
	t.Run("article with no comments is an empty 200", func(t *testing.T) {
		s := newTestServer(t, testDeps{
			articles: &mockArticleRepo{
				existsFn: func(ctx context.Context, articleID int) (bool, error) {
					return true, nil
				},
			},
			comments: &mockCommentRepo{
				listByArticleFn: func(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error) {
					return []*domain.Comment{}, nil
				},
			},
		})

		rec := doRequest(t, s, http.MethodGet, "/api/articles/2/comments", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listCommentsResponse
		decodeBody(t, rec, &resp)
		assert.NotNil(t, resp.Comments)
		assert.Empty(t, resp.Comments)
	})

	t.Run("unknown article is a 404", func(t *testing.T) {
		s := newTestServer(t, testDeps{articles: &mockArticleRepo{
			existsFn: func(ctx context.Context, articleID int) (bool, error) {
				return false, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/articles/999/comments", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "article not found", errorMsg(t, rec))
	})

	t.Run("passes the page window through", func(t *testing.T) {
		s := newTestServer(t, testDeps{
			articles: &mockArticleRepo{
				existsFn: func(ctx context.Context, articleID int) (bool, error) {
					return true, nil
				},
			},
			comments: &mockCommentRepo{
				listByArticleFn: func(ctx context.Context, articleID, limit, offset int) ([]*domain.Comment, error) {
					assert.Equal(t, 1, articleID)
					assert.Equal(t, 5, limit)
					assert.Equal(t, 10, offset)
					return []*domain.Comment{{CommentID: 7, ArticleID: 1}}, nil
				},
			},
		})

		rec := doRequest(t, s, http.MethodGet, "/api/articles/1/comments?limit=5&p=3", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("creates and returns the comment", func(t *testing.T) {
		s := newTestServer(t, testDeps{comments: &mockCommentRepo{
			createFn: func(ctx context.Context, articleID int, username, body string) (*domain.Comment, error) {
				assert.Equal(t, 1, articleID)
				assert.Equal(t, "butter_bridge", username)
				return &domain.Comment{CommentID: 19, Body: body, Author: username, ArticleID: articleID}, nil
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/articles/1/comments",
			`{"username": "butter_bridge", "body": "great read"}`)
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]commentResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, 19, resp["newComment"].CommentID)
	})

	t.Run("unknown article or author is a 404 Invalid input", func(t *testing.T) {
		s := newTestServer(t, testDeps{comments: &mockCommentRepo{
			createFn: func(ctx context.Context, articleID int, username, body string) (*domain.Comment, error) {
				return nil, domain.NewReferenceError("comment", "article or author does not exist")
			},
		}})

		rec := doRequest(t, s, http.MethodPost, "/api/articles/999/comments",
			`{"username": "ghost", "body": "boo"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid input", errorMsg(t, rec))
	})

	t.Run("missing body field is a 400", func(t *testing.T) {
		s := newTestServer(t, testDeps{})

		rec := doRequest(t, s, http.MethodPost, "/api/articles/1/comments",
			`{"username": "butter_bridge"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateCommentVotes(t *testing.T) {
	s := newTestServer(t, testDeps{comments: &mockCommentRepo{
		updateVotesFn: func(ctx context.Context, commentID, delta int) (*domain.Comment, error) {
			assert.Equal(t, 3, commentID)
			assert.Equal(t, 5, delta)
			return &domain.Comment{CommentID: 3, Votes: 105}, nil
		},
	}})

	rec := doRequest(t, s, http.MethodPatch, "/api/comments/3", `{"inc_votes": 5}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]commentResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 105, resp["updatedComment"].Votes)
}

func TestDeleteComment(t *testing.T) {
	t.Run("deletes and returns no content", func(t *testing.T) {
		s := newTestServer(t, testDeps{comments: &mockCommentRepo{
			deleteFn: func(ctx context.Context, commentID int) error {
				return nil
			},
		}})

		rec := doRequest(t, s, http.MethodDelete, "/api/comments/1", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("deleting twice yields a 404 the second time", func(t *testing.T) {
		deleted := false
		s := newTestServer(t, testDeps{comments: &mockCommentRepo{
			deleteFn: func(ctx context.Context, commentID int) error {
				if deleted {
					return domain.NewNotFoundError("comment", "1")
				}
				deleted = true
				return nil
			},
		}})

		first := doRequest(t, s, http.MethodDelete, "/api/comments/1", "")
		assert.Equal(t, http.StatusNoContent, first.Code)

		second := doRequest(t, s, http.MethodDelete, "/api/comments/1", "")
		assert.Equal(t, http.StatusNotFound, second.Code)
	})
}

func TestListUsers(t *testing.T) {
	t.Run("returns all users", func(t *testing.T) {
		s := newTestServer(t, testDeps{users: &mockUserRepo{
			listFn: func(ctx context.Context, username string) ([]*domain.User, error) {
				assert.Empty(t, username)
				return []*domain.User{{Username: "butter_bridge", Name: "jonny"}}, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/users", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listUsersResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Users, 1)
		assert.Equal(t, "butter_bridge", resp.Users[0].Username)
	})

	t.Run("forwards the username filter", func(t *testing.T) {
		s := newTestServer(t, testDeps{users: &mockUserRepo{
			listFn: func(ctx context.Context, username string) ([]*domain.User, error) {
				assert.Equal(t, "lurker", username)
				return []*domain.User{{Username: "lurker"}}, nil
			},
		}})

		rec := doRequest(t, s, http.MethodGet, "/api/users?username=lurker", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestGetEndpoints(t *testing.T) {
	s := newTestServer(t, testDeps{})

	rec := doRequest(t, s, http.MethodGet, "/api", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]map[string]endpointDoc
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp["endpoints"], "GET /api/articles")
	assert.Contains(t, resp["endpoints"], "POST /api/topics")
}

func TestInvalidPath(t *testing.T) {
	s := newTestServer(t, testDeps{})

	t.Run("unknown route", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodGet, "/api/bananas", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid path", errorMsg(t, rec))
	})

	t.Run("known route, wrong verb", func(t *testing.T) {
		rec := doRequest(t, s, http.MethodPut, "/api/topics", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Invalid path", errorMsg(t, rec))
	})
}

func TestUnhandledStoreErrorIsA500(t *testing.T) {
	s := newTestServer(t, testDeps{topics: &mockTopicRepo{
		listFn: func(ctx context.Context) ([]*domain.Topic, error) {
			return nil, errors.New("connection refused")
		},
	}})

	rec := doRequest(t, s, http.MethodGet, "/api/topics", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", errorMsg(t, rec))
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestUnhandledErrorLogCarriesRequestContext(t *testing.T) {
	var buf bytes.Buffer
	topics := &mockTopicRepo{
		listFn: func(ctx context.Context) ([]*domain.Topic, error) {
			return nil, errors.New("connection refused")
		},
	}
	s := NewServer(
		Config{Address: "127.0.0.1:0"},
		topics, &mockArticleRepo{}, &mockCommentRepo{}, &mockUserRepo{},
		nil, zerolog.New(&buf), nil,
	)

	rec := doRequest(t, s, http.MethodGet, "/api/topics", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"method":"GET"`)
	assert.Contains(t, out, `"path":"/api/topics"`)
	assert.Contains(t, out, `"request_id"`)
	assert.Contains(t, out, "connection refused")
}
