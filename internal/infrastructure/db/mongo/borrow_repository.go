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
)

const borrowsCollection = "borrows"

// BorrowRepository persists the borrow ledger in MongoDB.
type BorrowRepository struct {
	coll *mongo.Collection
}

func NewBorrowRepository(db *mongo.Database) *BorrowRepository {
	return &BorrowRepository{coll: db.Collection(borrowsCollection)}
}

type mongoBorrow struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Email      string             `bson:"email"`
	Roll       string             `bson:"roll"`
	BookID     string             `bson:"bookId"`
	BookName   string             `bson:"bookName"`
	BookCode   string             `bson:"bookCode"`
	Author     string             `bson:"author"`
	BorrowDate time.Time          `bson:"borrowDate"`
	Returned   bool               `bson:"returned"`
	ReturnDate *time.Time         `bson:"returnDate,omitempty"`
}

func (mb mongoBorrow) toDomain() *domain.BorrowRecord {
	return &domain.BorrowRecord{
		ID:         mb.ID.Hex(),
		Email:      mb.Email,
		Roll:       mb.Roll,
		BookID:     mb.BookID,
		BookName:   mb.BookName,
		BookCode:   mb.BookCode,
		Author:     mb.Author,
		BorrowDate: mb.BorrowDate,
		Returned:   mb.Returned,
		ReturnDate: mb.ReturnDate,
	}
}

func (r *BorrowRepository) Create(ctx context.Context, rec *domain.BorrowRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoBorrow{
		Email:      rec.Email,
		Roll:       rec.Roll,
		BookID:     rec.BookID,
		BookName:   rec.BookName,
		BookCode:   rec.BookCode,
		Author:     rec.Author,
		BorrowDate: rec.BorrowDate,
		Returned:   rec.Returned,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert borrow: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

func (r *BorrowRepository) FindByID(ctx context.Context, id string) (*domain.BorrowRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBorrowNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mb mongoBorrow
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mb); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBorrowNotFound
		}
		return nil, fmt.Errorf("find borrow: %w", err)
	}
	return mb.toDomain(), nil
}

func (r *BorrowRepository) ListByEmail(ctx context.Context, email string) ([]*domain.BorrowRecord, error) {
	return r.list(ctx, bson.M{"email": email})
}

func (r *BorrowRepository) ListAll(ctx context.Context) ([]*domain.BorrowRecord, error) {
	return r.list(ctx, bson.M{})
}

func (r *BorrowRepository) list(ctx context.Context, filter bson.M) ([]*domain.BorrowRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list borrows: %w", err)
	}
	defer cur.Close(ctx)

	recs := make([]*domain.BorrowRecord, 0)
	for cur.Next(ctx) {
		var mb mongoBorrow
		if err := cur.Decode(&mb); err != nil {
			return nil, fmt.Errorf("decode borrow: %w", err)
		}
		recs = append(recs, mb.toDomain())
	}
	return recs, cur.Err()
}

// MarkReturned flips the returned flag, matching only records that are still
// open so a double return never counts twice.
func (r *BorrowRepository) MarkReturned(ctx context.Context, id string, at time.Time) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrBorrowNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "returned": false},
		bson.M{"$set": bson.M{"returned": true, "returnDate": at}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark returned: %w", err)
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the borrower email and returned-flag indexes used by
// the history and return views.
func (r *BorrowRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
		{Keys: bson.D{{Key: "returned", Value: 1}}},
	})
	return err
}
