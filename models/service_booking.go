package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCompleted = "Completed"
	BookingCancelled = "Cancelled"
)

type ServiceBooking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name          string             `bson:"name" json:"name" binding:"required"`
	Email         string             `bson:"email" json:"email" binding:"required,email"`
	Phone         string             `bson:"phone" json:"phone" binding:"required"`
	Address       string             `bson:"address" json:"address" binding:"required"`
	MachineType   string             `bson:"machineType" json:"machineType" binding:"required"`
	Brand         string             `bson:"brand" json:"brand" binding:"required"`
	Model         string             `bson:"model,omitempty" json:"model,omitempty"`
	Issue         string             `bson:"issue" json:"issue" binding:"required"`
	PreferredDate string             `bson:"preferredDate" json:"preferredDate" binding:"required"`
	PreferredTime string             `bson:"preferredTime" json:"preferredTime" binding:"required"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
