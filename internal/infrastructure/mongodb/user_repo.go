package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wpdmadhuranga/auth-service/internal/domain"
	"github.com/wpdmadhuranga/auth-service/internal/repository"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Hasher is the subset of the password hasher the repository needs.
type Hasher interface {
	Hash(plaintext string) (string, error)
}

type userDocument struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	IsActive     bool          `bson:"is_active"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     d.IsActive,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// UserRepository is the document-store implementation of
// repository.UserRepository. User IDs are ObjectIDs, exposed in hex
// string form. Its observable behavior must stay identical to the
// relational implementation.
type UserRepository struct {
	coll   *mongo.Collection
	hasher Hasher
}

func NewUserRepository(db *mongo.Database, hasher Hasher) *UserRepository {
	return &UserRepository{coll: db.Collection("users"), hasher: hasher}
}

// EnsureIndexes creates the uniqueness backstop for signup. The index
// is partial over active users, so a soft-deleted account frees its
// email for re-registration.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.D{{Key: "is_active", Value: true}}),
	})
	if err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	return nil
}

func (r *UserRepository) Create(ctx context.Context, name, email, plaintextPassword string) (*domain.User, error) {
	hash, err := r.hasher.Hash(plaintextPassword)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := userDocument{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return nil, fmt.Errorf("create user: unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = id
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := r.coll.FindOne(ctx, bson.M{"email": email, "is_active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	u, err := r.FindByIDWithPassword(ctx, id)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

func (r *UserRepository) FindByIDWithPassword(ctx context.Context, id string) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid, "is_active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"email": email, "is_active": true},
		options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) UpdateByID(ctx context.Context, id string, update repository.UpdateUser) (*domain.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Password != nil {
		hash, err := r.hasher.Hash(*update.Password)
		if err != nil {
			return nil, err
		}
		set["password_hash"] = hash
	}

	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "is_active": true},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	u := doc.toDomain()
	u.PasswordHash = ""
	return u, nil
}

func (r *UserRepository) SoftDeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return false, fmt.Errorf("soft delete user: %w", err)
	}
	return res.ModifiedCount > 0, nil
}

func (r *UserRepository) ListActive(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"is_active": true},
		options.Find().
			SetSort(bson.D{{Key: "created_at", Value: -1}}).
			SetLimit(int64(limit)).
			SetSkip(int64(offset)))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.User
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		u := doc.toDomain()
		u.PasswordHash = ""
		users = append(users, u)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) CountActive(ctx context.Context) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
