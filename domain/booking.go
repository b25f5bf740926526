package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Booking struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	RoomID           string             `bson:"roomId" json:"roomId"`
	UserEmail        string             `bson:"userEmail" json:"userEmail"`
	Date             primitive.DateTime `bson:"date" json:"date"`
	ConfirmationCode string             `bson:"confirmationCode,omitempty" json:"confirmationCode,omitempty"`
	// Extra keeps whatever else the client sent with the booking.
	Extra map[string]interface{} `bson:",inline" json:"extra,omitempty"`
}
