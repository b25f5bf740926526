package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Room struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Price       float64            `bson:"price" json:"price"`
	Available   bool               `bson:"available" json:"available"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Guests      int                `bson:"guests,omitempty" json:"guests,omitempty"`
}

// FeaturedRoom is a room enriched with the rating computed by the
// featured-rooms aggregation. Room fields marshal flat, matching the
// plain room shape plus averageRating and reviewCount.
type FeaturedRoom struct {
	Room          `bson:",inline"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int     `json:"reviewCount"`
}

// CascadeResult reports how many documents a room deletion removed from
// each collection.
type CascadeResult struct {
	DeletedRoom     int64 `json:"deletedRoom"`
	DeletedReviews  int64 `json:"deletedReviews"`
	DeletedBookings int64 `json:"deletedBookings"`
}
