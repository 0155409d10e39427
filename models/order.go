package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ItemTypeMachine = "machine"
	ItemTypePart    = "part"
)

const (
	PaymentMethodCOD  = "cod"
	PaymentMethodUPI  = "upi"
	PaymentMethodCard = "card"
)

const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

type OrderItem struct {
	ProductID int     `bson:"productId" json:"productId" binding:"required"`
	Name      string  `bson:"name" json:"name" binding:"required"`
	Price     float64 `bson:"price" json:"price" binding:"required"`
	Quantity  int     `bson:"quantity" json:"quantity" binding:"required,min=1"`
	Type      string  `bson:"type" json:"type" binding:"required,oneof=machine part"`
	Image     string  `bson:"image,omitempty" json:"image,omitempty"`
}

type ShippingDetails struct {
	Name    string `bson:"name" json:"name" binding:"required"`
	Phone   string `bson:"phone" json:"phone" binding:"required"`
	Email   string `bson:"email" json:"email" binding:"required,email"`
	Address string `bson:"address" json:"address" binding:"required"`
	City    string `bson:"city" json:"city" binding:"required"`
	State   string `bson:"state" json:"state" binding:"required"`
	Pincode string `bson:"pincode" json:"pincode" binding:"required"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID           string             `bson:"orderId" json:"orderId"`
	UserID            primitive.ObjectID `bson:"userId" json:"userId"`
	Items             []OrderItem        `bson:"items" json:"items"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	ShippingDetails   ShippingDetails    `bson:"shippingDetails" json:"shippingDetails"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus     string             `bson:"paymentStatus" json:"paymentStatus"`
	RazorpayOrderID   string             `bson:"razorpayOrderId,omitempty" json:"razorpayOrderId,omitempty"`
	RazorpayPaymentID string             `bson:"razorpayPaymentId,omitempty" json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string             `bson:"razorpaySignature,omitempty" json:"-"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderTransitions lists the allowed status moves. Cancellation is only
// possible before shipping; delivered and cancelled are terminal.
var OrderTransitions = map[string][]string{
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderShipped, OrderCancelled},
	OrderShipped:   {OrderDelivered},
	OrderDelivered: {},
	OrderCancelled: {},
}

// CanTransition reports whether an order status change is legal.
func CanTransition(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
