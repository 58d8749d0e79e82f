package main

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/geobooks/library-system/internal/infrastructure/db/mongo"
)

// ensureIndexes creates the indexes every repository relies on.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewBookRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewBorrowRepository(db).EnsureIndexes(ctx)
}
