package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Profile is the aggregate: scalar attributes plus the two ordered
// sub-collections. It is persisted and mutated as one document.
type Profile struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"            json:"id"`
	UserID         primitive.ObjectID `bson:"user"                     json:"user"`
	Company        string             `bson:"company,omitempty"        json:"company,omitempty"`
	Website        string             `bson:"website,omitempty"        json:"website,omitempty"`
	Location       string             `bson:"location,omitempty"       json:"location,omitempty"`
	Bio            string             `bson:"bio,omitempty"            json:"bio,omitempty"`
	Status         string             `bson:"status"                   json:"status"`
	GithubUsername string             `bson:"githubusername,omitempty" json:"githubusername,omitempty"`
	Skills         []string           `bson:"skills"                   json:"skills"`
	Social         SocialLinks        `bson:"social,omitempty"         json:"social,omitempty"`
	Experience     []Experience       `bson:"experience"               json:"experience"`
	Education      []Education        `bson:"education"                json:"education"`
	CreatedAt      time.Time          `bson:"created_at"               json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at"               json:"updated_at"`
}

// SocialLinks is sparse: only platforms the user supplied are stored.
type SocialLinks struct {
	Youtube   string `bson:"youtube,omitempty"   json:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"   json:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"  json:"facebook,omitempty"`
	Linkedin  string `bson:"linkedin,omitempty"  json:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
}

// Experience and Education exist only nested inside a Profile; their ids are
// assigned on insert and are unique within the parent document.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id"                   json:"id"`
	Title       string             `bson:"title"                 json:"title"`
	Company     string             `bson:"company"               json:"company"`
	Location    string             `bson:"location,omitempty"    json:"location,omitempty"`
	From        time.Time          `bson:"from"                  json:"from"`
	To          *time.Time         `bson:"to,omitempty"          json:"to,omitempty"`
	Current     bool               `bson:"current"               json:"current"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
}

type Education struct {
	ID           primitive.ObjectID `bson:"_id"                   json:"id"`
	School       string             `bson:"school"                json:"school"`
	Degree       string             `bson:"degree"                json:"degree"`
	FieldOfStudy string             `bson:"fieldofstudy"          json:"fieldofstudy"`
	From         time.Time          `bson:"from"                  json:"from"`
	To           *time.Time         `bson:"to,omitempty"          json:"to,omitempty"`
	Current      bool               `bson:"current"               json:"current"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
}

// ProfileUpdate is a sparse field set: nil pointers mean "leave untouched".
// Built by the handler from only the attributes the caller supplied.
type ProfileUpdate struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GithubUsername *string
	Skills         []string
	Youtube        *string
	Twitter        *string
	Facebook       *string
	Linkedin       *string
	Instagram      *string
}

// ParseSkills splits a comma-delimited input into an ordered slice of
// trimmed skills. Empty elements are dropped.
func ParseSkills(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if sk := strings.TrimSpace(part); sk != "" {
			out = append(out, sk)
		}
	}
	return out
}
