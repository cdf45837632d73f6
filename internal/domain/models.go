// Package domain contains the core data types and error taxonomy for the news API.
package domain

import "time"

// Topic is a category articles are filed under. The slug is the unique key.
type Topic struct {
	Slug        string
	Description string
}

// User is an author of articles and comments. Users are read-only in this
// service; they are referenced by the author fields on articles and comments.
type User struct {
	Username  string
	Name      string
	AvatarURL string
}

// Article is a posted news article. ArticleID and CreatedAt are generated at
// insert and never change. Votes may go negative.
//
// CommentCount is derived (count of comments referencing the article) and only
// populated on reads that join comments. TotalCount is the number of rows
// matching the active listing filter regardless of the pagination window; it
// is populated on listing rows only.
type Article struct {
	ArticleID     int
	Author        string
	Title         string
	Body          string
	Topic         string
	CreatedAt     time.Time
	Votes         int
	ArticleImgURL string
	CommentCount  int
	TotalCount    int
}

// Comment is a comment on an article. CommentID and CreatedAt are generated
// at insert and never change.
type Comment struct {
	CommentID int
	Body      string
	Author    string
	ArticleID int
	Votes     int
	CreatedAt time.Time
}
