package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/djmgmz/tdd-jest/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostgresPosts stores each post as a JSONB document keyed by its id.
type PostgresPosts struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

var _ models.PostModel = (*PostgresPosts)(nil)

func NewPostgresPosts(ctx context.Context, dsn string, maxConns int32) (*PostgresPosts, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	_, err = pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS posts (
  seq BIGSERIAL,
  id TEXT PRIMARY KEY,
  doc JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_seq ON posts(seq);
`)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("create posts table: %w", err)
	}

	return &PostgresPosts{pool: pool, now: time.Now}, nil
}

func (s *PostgresPosts) Close() {
	s.pool.Close()
}

func (s *PostgresPosts) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	post := models.Post{
		ID:      primitive.NewObjectID(),
		Author:  in.Author,
		Title:   in.Title,
		Content: in.Content,
		Date:    s.now().UTC(),
	}

	raw, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("encode post: %w", err)
	}

	if _, err := s.pool.Exec(ctx, `INSERT INTO posts (id, doc) VALUES ($1, $2::jsonb)`, post.ID.Hex(), raw); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

func (s *PostgresPosts) GetAll(ctx context.Context) ([]models.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM posts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		var p models.Post
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	return posts, nil
}

func (s *PostgresPosts) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	return s.scanOne(ctx, id, `SELECT doc FROM posts WHERE id = $1`, id)
}

func (s *PostgresPosts) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	if update.IsEmpty() {
		return s.FindPostByID(ctx, id)
	}

	patch, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("encode update: %w", err)
	}

	// jsonb || keeps every key the patch does not carry
	return s.scanOne(ctx, id, `UPDATE posts SET doc = doc || $2::jsonb WHERE id = $1 RETURNING doc`, id, patch)
}

func (s *PostgresPosts) scanOne(ctx context.Context, id, query string, args ...any) (*models.Post, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, query, args...).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", id, err)
	}

	var p models.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode post %s: %w", id, err)
	}
	return &p, nil
}
