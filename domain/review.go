package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RoomID    string             `bson:"roomId" json:"roomId" validate:"required"`
	UserEmail string             `bson:"userEmail" json:"userEmail" validate:"required,email"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment"`
	Timestamp primitive.DateTime `bson:"timestamp" json:"timestamp"`
}
