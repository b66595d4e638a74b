package database

import (
	"context"
	"sync"
	"time"

	"github.com/djmgmz/tdd-jest/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryPosts keeps posts in process memory in insertion order.
type MemoryPosts struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
	order []string
	now   func() time.Time
}

var _ models.PostModel = (*MemoryPosts)(nil)

func NewMemoryPosts() *MemoryPosts {
	return &MemoryPosts{
		posts: make(map[string]*models.Post),
		now:   time.Now,
	}
}

func (s *MemoryPosts) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	post := &models.Post{
		ID:      primitive.NewObjectID(),
		Author:  in.Author,
		Title:   in.Title,
		Content: in.Content,
		Date:    s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := post.ID.Hex()
	s.posts[id] = post
	s.order = append(s.order, id)

	out := *post
	return &out, nil
}

func (s *MemoryPosts) GetAll(ctx context.Context) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.order))
	for _, id := range s.order {
		posts = append(posts, *s.posts[id])
	}
	return posts, nil
}

func (s *MemoryPosts) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	out := *post
	return &out, nil
}

func (s *MemoryPosts) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, models.ErrPostNotFound
	}
	update.Apply(post)

	out := *post
	return &out, nil
}
