package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CV is the single owned document per user. The payload is opaque: its shape
// is decided by the client and never validated here.
type CV struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	UserID    string             `json:"userId" bson:"user_id"`
	Data      interface{}        `json:"cvData" bson:"cv_data"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updated_at"`
}
