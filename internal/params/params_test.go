package params

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newshub/news-api/internal/domain"
)

func TestParseID(t *testing.T) {
	t.Run("accepts positive integers", func(t *testing.T) {
		id, err := ParseID("article_id", "42")
		require.NoError(t, err)
		assert.Equal(t, 42, id)
	})

	t.Run("accepts leading zeros", func(t *testing.T) {
		id, err := ParseID("article_id", "007")
		require.NoError(t, err)
		assert.Equal(t, 7, id)
	})

	t.Run("rejects bad values", func(t *testing.T) {
		bad := []string{"", "0", "-1", "+1", "1.5", "abc", "1e3", "1 ", " 1", "banana"}
		for _, v := range bad {
			_, err := ParseID("article_id", v)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "value %q", v)
		}
	})

	t.Run("carries the field name", func(t *testing.T) {
		_, err := ParseID("comment_id", "nope")
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "comment_id", verr.Field)
	})
}

func TestParseVoteDelta(t *testing.T) {
	t.Run("accepts integers of any sign", func(t *testing.T) {
		for body, want := range map[string]int{
			`{"inc_votes": 1}`:       1,
			`{"inc_votes": -100}`:    -100,
			`{"inc_votes": 0}`:       0,
			`{"inc_votes": 999999}`:  999999,
			`{"inc_votes": -999999}`: -999999,
		} {
			got, err := ParseVoteDelta([]byte(body))
			require.NoError(t, err, body)
			assert.Equal(t, want, got, body)
		}
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		bad := []string{
			`{}`,
			`{"inc_votes": "1"}`,
			`{"inc_votes": 1.5}`,
			`{"inc_votes": null}`,
			`{"inc_votes": 1, "name": "Mitch"}`,
			`{"votes": 1}`,
			`not json`,
			``,
			`{"inc_votes": 1}garbage`,
			`{"inc_votes": 1}{"inc_votes": 2}`,
		}
		for _, body := range bad {
			_, err := ParseVoteDelta([]byte(body))
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "body %q", body)
		}
	})
}

func TestParsePageWindow(t *testing.T) {
	t.Run("package defaults when absent", func(t *testing.T) {
		w, err := ParsePageWindow(url.Values{}, 0, 100)
		require.NoError(t, err)
		assert.Equal(t, PageWindow{Limit: 10, Page: 1}, w)
	})

	t.Run("configured default limit applies", func(t *testing.T) {
		w, err := ParsePageWindow(url.Values{}, 25, 100)
		require.NoError(t, err)
		assert.Equal(t, PageWindow{Limit: 25, Page: 1}, w)
	})

	t.Run("explicit limit overrides the default", func(t *testing.T) {
		q := url.Values{"limit": {"5"}, "p": {"3"}}
		w, err := ParsePageWindow(q, 25, 100)
		require.NoError(t, err)
		assert.Equal(t, PageWindow{Limit: 5, Page: 3}, w)
		assert.Equal(t, 10, w.Offset())
	})

	t.Run("caps limit at the maximum", func(t *testing.T) {
		q := url.Values{"limit": {"5000"}}
		w, err := ParsePageWindow(q, 10, 100)
		require.NoError(t, err)
		assert.Equal(t, 100, w.Limit)
	})

	t.Run("rejects non-numeric and non-positive values", func(t *testing.T) {
		for _, q := range []url.Values{
			{"limit": {"abc"}},
			{"limit": {"0"}},
			{"limit": {"-5"}},
			{"limit": {"2.5"}},
			{"p": {"abc"}},
			{"p": {"0"}},
			{"p": {"-1"}},
		} {
			_, err := ParsePageWindow(q, 10, 100)
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "query %v", q)
		}
	})
}

func TestParseNewComment(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		c, err := ParseNewComment([]byte(`{"username": "butter_bridge", "body": "great read"}`))
		require.NoError(t, err)
		assert.Equal(t, "butter_bridge", c.Username)
		assert.Equal(t, "great read", c.Body)
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		c, err := ParseNewComment([]byte(`{"username": "lurker", "body": "ok", "votes": 100}`))
		require.NoError(t, err)
		assert.Equal(t, "lurker", c.Username)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		for _, body := range []string{
			`{"username": "lurker"}`,
			`{"body": "no author"}`,
			`{}`,
			`garbage`,
		} {
			_, err := ParseNewComment([]byte(body))
			assert.ErrorIs(t, err, domain.ErrInvalidInput, "body %q", body)
		}
	})

	t.Run("error names the json field", func(t *testing.T) {
		_, err := ParseNewComment([]byte(`{"body": "no author"}`))
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "username", verr.Field)
	})
}

func TestParseNewArticle(t *testing.T) {
	t.Run("valid payload with image", func(t *testing.T) {
		a, err := ParseNewArticle([]byte(`{
			"author": "rogersop",
			"title": "Seven ways",
			"body": "text",
			"topic": "cats",
			"article_img_url": "https://example.com/cat.png"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/cat.png", a.ArticleImgURL)
	})

	t.Run("image url optional", func(t *testing.T) {
		a, err := ParseNewArticle([]byte(`{"author": "rogersop", "title": "t", "body": "b", "topic": "cats"}`))
		require.NoError(t, err)
		assert.Empty(t, a.ArticleImgURL)
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		_, err := ParseNewArticle([]byte(`{"author": "rogersop", "title": "t", "body": "b"}`))
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "topic", verr.Field)
	})
}

func TestParseNewTopic(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		tp, err := ParseNewTopic([]byte(`{"slug": "gardening", "description": "growing things"}`))
		require.NoError(t, err)
		assert.Equal(t, "gardening", tp.Slug)
	})

	t.Run("missing slug rejected", func(t *testing.T) {
		_, err := ParseNewTopic([]byte(`{"description": "no slug"}`))
		var verr *domain.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "slug", verr.Field)
	})
}
