package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SellPending  = "Pending"
	SellApproved = "Approved"
	SellRejected = "Rejected"
	SellSold     = "Sold"
)

type SellRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID        primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	MachineType   string             `bson:"machineType" json:"machineType"`
	Brand         string             `bson:"brand" json:"brand"`
	Model         string             `bson:"model" json:"model"`
	Age           string             `bson:"age" json:"age"`
	Condition     string             `bson:"condition" json:"condition"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	ExpectedPrice float64            `bson:"expectedPrice" json:"expectedPrice"`
	Photos        []string           `bson:"photos" json:"photos"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
