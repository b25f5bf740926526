package services

import (
	"context"

	"hotel-booking-server/domain"
)

type RoomService interface {
	InsertRoom(room *domain.Room, ctx context.Context) (string, error)
	GetAllRooms(email string, minPrice, maxPrice *float64, ctx context.Context) ([]*domain.Room, error)
	GetRoomByID(roomID string, ctx context.Context) (*domain.Room, error)
	GetRoomsByEmail(email string, ctx context.Context) ([]*domain.Room, error)
	GetFeaturedRooms(ctx context.Context) ([]*domain.FeaturedRoom, error)
	SetAvailability(roomID string, available bool, ctx context.Context) error
	DeleteRoomCascade(roomID string, ctx context.Context) (*domain.CascadeResult, error)
}
