package models

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrPostNotFound is returned by a PostModel when no post matches the given id.
var ErrPostNotFound = errors.New("post not found")

type Post struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Author  string             `bson:"author" json:"author"`
	Title   string             `bson:"title" json:"title"`
	Content string             `bson:"content" json:"content"`
	Date    time.Time          `bson:"date" json:"date"`
}

// PostInput is the body of a create request.
type PostInput struct {
	Author  string `bson:"author" json:"author"`
	Title   string `bson:"title" json:"title"`
	Content string `bson:"content" json:"content"`
}

// PostUpdate carries the fields of an update request. Nil fields are left untouched.
type PostUpdate struct {
	Author  *string    `bson:"author,omitempty" json:"author,omitempty"`
	Title   *string    `bson:"title,omitempty" json:"title,omitempty"`
	Content *string    `bson:"content,omitempty" json:"content,omitempty"`
	Date    *time.Time `bson:"date,omitempty" json:"date,omitempty"`
}

func (u PostUpdate) IsEmpty() bool {
	return u.Author == nil && u.Title == nil && u.Content == nil && u.Date == nil
}

// Apply copies the non-nil fields of u onto p.
func (u PostUpdate) Apply(p *Post) {
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Date != nil {
		p.Date = *u.Date
	}
}

// PostModel is the persistence layer behind the post handlers. Every call
// returns either a result or an error, never both.
type PostModel interface {
	CreatePost(ctx context.Context, in PostInput) (*Post, error)
	GetAll(ctx context.Context) ([]Post, error)
	FindPostByID(ctx context.Context, id string) (*Post, error)
	UpdatePost(ctx context.Context, id string, update PostUpdate) (*Post, error)
}
