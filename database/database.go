package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/djmgmz/tdd-jest/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var Posts *mongo.Collection

// ConnectMongo opens the shared client and binds the posts collection.
// Under the test execution mode it returns without connecting.
func ConnectMongo(cfg *config.Config) error {
	if cfg.IsTest() {
		log.Println("APP_ENV=test, skipping MongoDB connection")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}

	Client = client
	Posts = client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	log.Println("Connected to MongoDB successfully")
	return nil
}

// ConnectMongoWithRetry calls ConnectMongo up to cfg.Mongo.ConnectAttempts times.
func ConnectMongoWithRetry(cfg *config.Config, wait time.Duration) error {
	var err error
	for i := 1; i <= cfg.Mongo.ConnectAttempts; i++ {
		if err = ConnectMongo(cfg); err == nil {
			return nil
		}
		log.Printf("MongoDB connection attempt %d failed: %v", i, err)
		if i < cfg.Mongo.ConnectAttempts {
			time.Sleep(wait)
		}
	}
	return err
}

func DisconnectMongo() error {
	if Client == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := Client.Disconnect(ctx); err != nil {
		return err
	}
	Client = nil
	Posts = nil

	log.Println("Disconnected from MongoDB")
	return nil
}
