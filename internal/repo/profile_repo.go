package repo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/TurkiHQ/DevConnecter/internal/domain"
)

var (
	ErrProfileExists = errors.New("profile already exists")
	ErrEntryNotFound = errors.New("entry not found")
)

func (s *Store) CreateProfile(ctx context.Context, p *domain.Profile) error {
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	res, err := s.colProfiles.InsertOne(ctx, p)
	if IsDup(err) {
		return ErrProfileExists
	}
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		p.ID = oid
	}
	return nil
}

func (s *Store) FindProfileByUser(ctx context.Context, userID primitive.ObjectID) (*domain.Profile, error) {
	var p domain.Profile
	err := s.colProfiles.FindOne(ctx, bson.M{"user": userID}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &p, err
}

func (s *Store) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	cur, err := s.colProfiles.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []domain.Profile{}
	for cur.Next(ctx) {
		var p domain.Profile
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, cur.Err()
}

// setDoc turns a sparse update into a $set document touching only the fields
// the caller supplied. Social links are set per platform, never as a whole
// object, so omitting one platform leaves the others alone.
func setDoc(upd domain.ProfileUpdate) bson.M {
	set := bson.M{"updated_at": time.Now().UTC()}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("company", upd.Company)
	put("website", upd.Website)
	put("location", upd.Location)
	put("bio", upd.Bio)
	put("status", upd.Status)
	put("githubusername", upd.GithubUsername)
	if upd.Skills != nil {
		set["skills"] = upd.Skills
	}
	put("social.youtube", upd.Youtube)
	put("social.twitter", upd.Twitter)
	put("social.facebook", upd.Facebook)
	put("social.linkedin", upd.Linkedin)
	put("social.instagram", upd.Instagram)
	return set
}

func (s *Store) UpdateProfileFields(ctx context.Context, userID primitive.ObjectID, upd domain.ProfileUpdate) (*domain.Profile, error) {
	res := s.colProfiles.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{"$set": setDoc(upd)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var p domain.Profile
	if err := res.Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *Store) PushExperience(ctx context.Context, userID primitive.ObjectID, e domain.Experience) (*domain.Profile, error) {
	return s.pushEntry(ctx, userID, "experience", e)
}

func (s *Store) PullExperience(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error) {
	return s.pullEntry(ctx, userID, "experience", entryID)
}

func (s *Store) PushEducation(ctx context.Context, userID primitive.ObjectID, e domain.Education) (*domain.Profile, error) {
	return s.pushEntry(ctx, userID, "education", e)
}

func (s *Store) PullEducation(ctx context.Context, userID, entryID primitive.ObjectID) (*domain.Profile, error) {
	return s.pullEntry(ctx, userID, "education", entryID)
}

// pushEntry prepends one entry ($position: 0 keeps the sub-collection
// most-recent-first) and returns the updated aggregate.
func (s *Store) pushEntry(ctx context.Context, userID primitive.ObjectID, field string, entry any) (*domain.Profile, error) {
	res := s.colProfiles.FindOneAndUpdate(ctx,
		bson.M{"user": userID},
		bson.M{
			"$push": bson.M{field: bson.M{"$each": bson.A{entry}, "$position": 0}},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var p domain.Profile
	if err := res.Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// pullEntry removes the entry whose id matches. A $pull that matches nothing
// is reported as ErrEntryNotFound instead of silently succeeding, so the
// caller can distinguish a stale id from a real removal.
func (s *Store) pullEntry(ctx context.Context, userID primitive.ObjectID, field string, entryID primitive.ObjectID) (*domain.Profile, error) {
	res, err := s.colProfiles.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$pull": bson.M{field: bson.M{"_id": entryID}}},
	)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrEntryNotFound
	}
	_, _ = s.colProfiles.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"updated_at": time.Now().UTC()}},
	)
	p, err := s.FindProfileByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}
