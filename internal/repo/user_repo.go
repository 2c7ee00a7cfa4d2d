package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
)

var ErrEmailTaken = errors.New("email already registered")

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	u.CreatedAt = time.Now().UTC()
	res, err := s.colUsers.InsertOne(ctx, u)
	if IsDup(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var u domain.User
	err := s.colUsers.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &u, err
}

// DeleteAccount removes the profile and then the user in one transaction so a
// mid-sequence failure cannot orphan either document. Standalone deployments
// without replica sets reject transactions; those fall back to sequential
// deletes, profile first.
func (s *Store) DeleteAccount(ctx context.Context, userID primitive.ObjectID) error {
	sess, err := s.Client.StartSession()
	if err != nil {
		return s.deleteAccountSequential(ctx, userID)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := s.colProfiles.DeleteOne(sc, bson.M{"user": userID}); err != nil {
			return nil, err
		}
		if _, err := s.colUsers.DeleteOne(sc, bson.M{"_id": userID}); err != nil {
			return nil, err
		}
		return nil, nil
	})
	if err != nil && transactionsUnsupported(err) {
		return s.deleteAccountSequential(ctx, userID)
	}
	return err
}

func (s *Store) deleteAccountSequential(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := s.colProfiles.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return err
	}
	_, err := s.colUsers.DeleteOne(ctx, bson.M{"_id": userID})
	return err
}

func transactionsUnsupported(err error) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		// code 20 = IllegalOperation ("Transaction numbers are only allowed
		// on a replica set member or mongos")
		return ce.Code == 20 || strings.Contains(ce.Message, "Transaction")
	}
	return false
}
