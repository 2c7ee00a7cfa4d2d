package queue

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exchange and routing keys for profile-service events.
const (
	Exchange          = "profile.events"
	KeyUserRegistered = "user.registered"
	KeyAccountDeleted = "account.deleted"
)

type UserRegistered struct {
	UserID primitive.ObjectID `json:"user_id"`
	Email  string             `json:"email"`
	Name   string             `json:"name"`
}

type AccountDeleted struct {
	UserID primitive.ObjectID `json:"user_id"`
}
