package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geobooks/library-system/internal/core/domain"
	"github.com/geobooks/library-system/internal/core/ports"
)

const booksCollection = "books"

// BookRepository persists catalog entries in MongoDB.
type BookRepository struct {
	coll *mongo.Collection
}

func NewBookRepository(db *mongo.Database) *BookRepository {
	return &BookRepository{coll: db.Collection(booksCollection)}
}

type mongoBook struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Code        string             `bson:"code"`
	Author      string             `bson:"author"`
	Category    string             `bson:"category,omitempty"`
	Description string             `bson:"description,omitempty"`
	Image       string             `bson:"image"`
	Copies      int                `bson:"copies"`
	AddedAt     time.Time          `bson:"addedAt"`
	UpdatedAt   time.Time          `bson:"updatedAt,omitempty"`
}

func (mb mongoBook) toDomain() *domain.Book {
	return &domain.Book{
		ID:          mb.ID.Hex(),
		Name:        mb.Name,
		Code:        mb.Code,
		Author:      mb.Author,
		Category:    mb.Category,
		Description: mb.Description,
		Image:       mb.Image,
		Copies:      mb.Copies,
		AddedAt:     mb.AddedAt,
		UpdatedAt:   mb.UpdatedAt,
	}
}

func (r *BookRepository) Create(ctx context.Context, b *domain.Book) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBook{
		Name:        b.Name,
		Code:        b.Code,
		Author:      b.Author,
		Category:    b.Category,
		Description: b.Description,
		Image:       b.Image,
		Copies:      b.Copies,
		AddedAt:     b.AddedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert book: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *BookRepository) FindByID(ctx context.Context, id string) (*domain.Book, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBook
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BookRepository) List(ctx context.Context) ([]*domain.Book, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer cur.Close(ctx)

	books := make([]*domain.Book, 0)
	for cur.Next(ctx) {
		var mb mongoBook
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode book: %w", err)
		}
		books = append(books, mb.toDomain())
	}
	return books, cur.Err()
}

// Update applies a partial update. The image field is only written when the
// input carries a replacement URL.
func (r *BookRepository) Update(ctx context.Context, id string, input ports.UpdateBookInput) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"name":        input.Name,
		"code":        input.Code,
		"author":      input.Author,
		"category":    input.Category,
		"description": input.Description,
		"copies":      input.Copies,
		"updatedAt":   time.Now().UTC(),
	}
	if input.Image != "" {
		set["image"] = input.Image
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("update book: %w", err)
	}
	if res.MatchedCount == 0 {
		return 0, domain.ErrBookNotFound
	}
	return res.ModifiedCount, nil
}

func (r *BookRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// DecrementCopies takes one copy with a conditional update so stock can
// never go negative, even under concurrent borrows.
func (r *BookRepository) DecrementCopies(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrBookNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "copies": bson.M{"$gt": 0}},
		bson.M{"$inc": bson.M{"copies": -1}},
	)
	if err != nil {
		return fmt.Errorf("decrement copies: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the book is gone or stock is already at zero.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return domain.ErrNoCopiesAvailable
	}
	return nil
}

func (r *BookRepository) IncrementCopiesByCode(ctx context.Context, code string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"code": code},
		bson.M{"$inc": bson.M{"copies": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment copies: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBookNotFound
	}
	return nil
}

// EnsureIndexes creates the code index on the books collection. Codes are a
// human-readable catalog key and returns match on them.
func (r *BookRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "code", Value: 1}},
	})
	return err
}
