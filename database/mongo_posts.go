package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/djmgmz/tdd-jest/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPosts stores posts as documents in a MongoDB collection.
type MongoPosts struct {
	coll *mongo.Collection
	now  func() time.Time
}

var _ models.PostModel = (*MongoPosts)(nil)

func NewMongoPosts(coll *mongo.Collection) *MongoPosts {
	return &MongoPosts{coll: coll, now: time.Now}
}

func (s *MongoPosts) CreatePost(ctx context.Context, in models.PostInput) (*models.Post, error) {
	post := models.Post{
		ID:      primitive.NewObjectID(),
		Author:  in.Author,
		Title:   in.Title,
		Content: in.Content,
		// BSON dates keep millisecond precision.
		Date: s.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := s.coll.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &post, nil
}

func (s *MongoPosts) GetAll(ctx context.Context) ([]models.Post, error) {
	cursor, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

func (s *MongoPosts) FindPostByID(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPostNotFound
	}

	var post models.Post
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find post %s: %w", id, err)
	}
	return &post, nil
}

func (s *MongoPosts) UpdatePost(ctx context.Context, id string, update models.PostUpdate) (*models.Post, error) {
	// $set rejects an empty document
	if update.IsEmpty() {
		return s.FindPostByID(ctx, id)
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrPostNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var post models.Post
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": update}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post %s: %w", id, err)
	}
	return &post, nil
}
