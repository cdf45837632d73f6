package httpserver

import (
	"time"

	"github.com/newshub/news-api/internal/domain"
)

// Response types for JSON serialization. Listed articles omit the body and
// carry the per-row aggregates; single-article responses include the body.

type topicResponse struct {
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type listTopicsResponse struct {
	Topics []topicResponse `json:"topics"`
}

type articleListItemResponse struct {
	ArticleID     int       `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
	TotalCount    int       `json:"total_count"`
}

type listArticlesResponse struct {
	Articles   []articleListItemResponse `json:"articles"`
	TotalCount int                       `json:"total_count"`
}

type articleResponse struct {
	ArticleID     int       `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
	CommentCount  int       `json:"comment_count"`
}

type updatedArticleResponse struct {
	ArticleID     int       `json:"article_id"`
	Author        string    `json:"author"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Topic         string    `json:"topic"`
	CreatedAt     time.Time `json:"created_at"`
	Votes         int       `json:"votes"`
	ArticleImgURL string    `json:"article_img_url"`
}

type commentResponse struct {
	CommentID int       `json:"comment_id"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	ArticleID int       `json:"article_id"`
	Votes     int       `json:"votes"`
	CreatedAt time.Time `json:"created_at"`
}

type listCommentsResponse struct {
	Comments []commentResponse `json:"comments"`
}

type userResponse struct {
	Username  string `json:"username"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
}

// Converter functions

func domainTopicToResponse(t *domain.Topic) topicResponse {
	return topicResponse{Slug: t.Slug, Description: t.Description}
}

func domainArticleToListItem(a *domain.Article) articleListItemResponse {
	return articleListItemResponse{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
		TotalCount:    a.TotalCount,
	}
}

func domainArticleToResponse(a *domain.Article) articleResponse {
	return articleResponse{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Body:          a.Body,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
	}
}

func domainArticleToUpdatedResponse(a *domain.Article) updatedArticleResponse {
	return updatedArticleResponse{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Body:          a.Body,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
	}
}

func domainCommentToResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		CommentID: c.CommentID,
		Body:      c.Body,
		Author:    c.Author,
		ArticleID: c.ArticleID,
		Votes:     c.Votes,
		CreatedAt: c.CreatedAt,
	}
}

func domainUserToResponse(u *domain.User) userResponse {
	return userResponse{Username: u.Username, Name: u.Name, AvatarURL: u.AvatarURL}
}
