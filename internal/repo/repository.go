package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
)

// UserRepo and ProfileRepo are the persistence seams the HTTP layer depends
// on. *Store implements both against MongoDB; tests supply in-memory fakes.
type UserRepo interface {
	CreateUser(ctx context.Context, u *domain.User) error
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) error
}

type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *domain.Profile) error
	FindProfileByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error)
	ListProfiles(ctx context.Context) ([]domain.Profile, error)
	UpdateProfileFields(ctx context.Context, userID primitive.ObjectID, upd domain.ProfileUpdate) (*domain.Profile, error)
	PushExperience(ctx context.Context, userID primitive.ObjectID, e domain.Experience) (*domain.Profile, error)
	PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error)
	PushEducation(ctx context.Context, userID primitive.ObjectID, e domain.Education) (*domain.Profile, error)
	PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error)
}

var (
	_ UserRepo    = (*Store)(nil)
	_ ProfileRepo = (*Store)(nil)
)
