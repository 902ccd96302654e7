package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/parla-app/parla-backend/internal/database"
	"github.com/parla-app/parla-backend/internal/models"
)

// ErrUserNotFound is returned when no record exists for the given id.
var ErrUserNotFound = errors.New("user not found")

// UserStore is the record store contract the profile controller runs
// against: one record per user, whole-record writes.
type UserStore interface {
	Get(ctx context.Context, id string) (*models.User, error)
	// Put replaces the stored record in a single write.
	Put(ctx context.Context, u *models.User) error
	// ListUsernames returns every non-empty username except the one
	// belonging to excludeID. Used for the save-time uniqueness scan.
	ListUsernames(ctx context.Context, excludeID string) ([]string, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	UpdateAvatar(ctx context.Context, id, avatar string) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// MongoUserStore implements UserStore on the users collection.
type MongoUserStore struct{}

func NewMongoUserStore() *MongoUserStore {
	return &MongoUserStore{}
}

func (s *MongoUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := database.Users().FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	return &u, nil
}

func (s *MongoUserStore) Put(ctx context.Context, u *models.User) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := database.Users().ReplaceOne(ctx, bson.M{"_id": u.ID}, u, opts); err != nil {
		return fmt.Errorf("put user %s: %w", u.ID, err)
	}
	return nil
}

func (s *MongoUserStore) ListUsernames(ctx context.Context, excludeID string) ([]string, error) {
	filter := bson.M{
		"_id":      bson.M{"$ne": excludeID},
		"username": bson.M{"$exists": true, "$ne": ""},
	}
	opts := options.Find().SetProjection(bson.M{"username": 1})

	cursor, err := database.Users().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	defer cursor.Close(ctx)

	var usernames []string
	for cursor.Next(ctx) {
		var doc struct {
			Username string `bson:"username"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode username: %w", err)
		}
		usernames = append(usernames, doc.Username)
	}
	return usernames, cursor.Err()
}

func (s *MongoUserStore) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.setFields(ctx, id, bson.M{"password": passwordHash})
}

func (s *MongoUserStore) UpdateAvatar(ctx context.Context, id, avatar string) error {
	return s.setFields(ctx, id, bson.M{"avatar": avatar})
}

func (s *MongoUserStore) setFields(ctx context.Context, id string, fields bson.M) error {
	fields["updated_at"] = time.Now()
	res, err := database.Users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}
