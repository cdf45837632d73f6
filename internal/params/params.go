// Package params validates caller-supplied path, query and body parameters
// before any store call is made. Every rejection is a domain.ValidationError
// so the HTTP layer renders it as a 400.
package params

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/newshub/news-api/internal/domain"
)

// Pagination defaults applied when a listing request omits limit or p.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

var validate = validator.New()

// ParseID parses a resource id path parameter. The value must be a string of
// decimal digits representing an integer greater than zero; leading zeros are
// permitted. Everything else (signs, decimals, letters, zero, empty) is a
// validation error, never a store round trip.
func ParseID(field, value string) (int, error) {
	if value == "" {
		return 0, domain.NewValidationError(field, "is required")
	}
	for _, c := range value {
		if c < '0' || c > '9' {
			return 0, domain.NewValidationError(field, "must be a positive integer")
		}
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		// Digits only but out of int range.
		return 0, domain.NewValidationError(field, "must be a positive integer")
	}
	if id <= 0 {
		return 0, domain.NewValidationError(field, "must be a positive integer")
	}
	return id, nil
}

// ParseVoteDelta parses a PATCH body that must contain exactly the key
// inc_votes with an integer value. String-typed numbers, fractional values,
// missing keys and extra keys are all rejected. Any integer magnitude is
// accepted.
func ParseVoteDelta(body []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()

	var payload struct {
		IncVotes *int `json:"inc_votes"`
	}
	if err := dec.Decode(&payload); err != nil {
		return 0, domain.NewValidationError("inc_votes", "must be an integer")
	}
	// Reject trailing content after the object, e.g. `{"inc_votes":1}garbage`.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return 0, domain.NewValidationError("body", "must be a single JSON object")
	}
	if payload.IncVotes == nil {
		return 0, domain.NewValidationError("inc_votes", "is required")
	}
	return *payload.IncVotes, nil
}

// PageWindow holds a validated limit/page pair for listing requests.
type PageWindow struct {
	Limit int
	Page  int
}

// Offset returns the number of rows to skip for this window.
func (w PageWindow) Offset() int {
	return (w.Page - 1) * w.Limit
}

// ParsePageWindow extracts limit and p from query parameters. An absent limit
// falls back to defaultLimit (or DefaultLimit when defaultLimit is not
// positive), an absent p to DefaultPage; present keys must parse to positive
// integers. The limit is capped at maxLimit.
func ParsePageWindow(q url.Values, defaultLimit, maxLimit int) (PageWindow, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	w := PageWindow{Limit: defaultLimit, Page: DefaultPage}

	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return PageWindow{}, domain.NewValidationError("limit", "must be a positive integer")
		}
		w.Limit = n
	}
	if w.Limit > maxLimit {
		w.Limit = maxLimit
	}

	if raw := q.Get("p"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return PageWindow{}, domain.NewValidationError("p", "must be a positive integer")
		}
		w.Page = n
	}

	return w, nil
}

// NewComment is the request payload for creating a comment.
type NewComment struct {
	Username string `json:"username" validate:"required"`
	Body     string `json:"body" validate:"required"`
}

// NewArticle is the request payload for creating an article.
// ArticleImgURL is optional; the caller substitutes the configured
// placeholder when it is empty.
type NewArticle struct {
	Author        string `json:"author" validate:"required"`
	Title         string `json:"title" validate:"required"`
	Body          string `json:"body" validate:"required"`
	Topic         string `json:"topic" validate:"required"`
	ArticleImgURL string `json:"article_img_url"`
}

// NewTopic is the request payload for creating a topic.
type NewTopic struct {
	Slug        string `json:"slug" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// ParseNewComment decodes and validates a create-comment body.
func ParseNewComment(body []byte) (NewComment, error) {
	var payload NewComment
	if err := decodeStruct(body, &payload); err != nil {
		return NewComment{}, err
	}
	return payload, nil
}

// ParseNewArticle decodes and validates a create-article body.
func ParseNewArticle(body []byte) (NewArticle, error) {
	var payload NewArticle
	if err := decodeStruct(body, &payload); err != nil {
		return NewArticle{}, err
	}
	return payload, nil
}

// ParseNewTopic decodes and validates a create-topic body.
func ParseNewTopic(body []byte) (NewTopic, error) {
	var payload NewTopic
	if err := decodeStruct(body, &payload); err != nil {
		return NewTopic{}, err
	}
	return payload, nil
}

// decodeStruct unmarshals a JSON body into dst and applies its validate tags.
// Unknown body keys are ignored; missing or empty required fields are
// rejected with the offending field name.
func decodeStruct(body []byte, dst interface{}) error {
	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", "must be valid JSON")
	}
	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			field := jsonFieldName(dst, fieldErrs[0].StructField())
			return domain.NewValidationError(field, "is required")
		}
		return domain.NewValidationError("body", "is invalid")
	}
	return nil
}

// jsonFieldName maps a struct field name back to its json tag for error
// messages, so callers see "article_img_url" rather than "ArticleImgURL".
func jsonFieldName(dst interface{}, structField string) string {
	tag, ok := fieldTag(dst, structField)
	if !ok || tag == "" {
		return strings.ToLower(structField)
	}
	return tag
}

func fieldTag(dst interface{}, name string) (string, bool) {
	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	f, ok := t.FieldByName(name)
	if !ok {
		return "", false
	}
	tag := f.Tag.Get("json")
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag, true
}
