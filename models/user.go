package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Phone        string             `bson:"phone" json:"phone"`
	Password     string             `bson:"password" json:"-"`
	Role         string             `bson:"role" json:"role"`
	AccountID    string             `bson:"accountId,omitempty" json:"accountId,omitempty"`
	IsVerified   bool               `bson:"isVerified" json:"isVerified"`
	OTP          string             `bson:"otp,omitempty" json:"-"`
	OTPExpires   time.Time          `bson:"otpExpires,omitempty" json:"-"`
	ProfilePhoto string             `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Public is the wire shape returned by auth endpoints; it never carries
// credentials or OTP state.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID.Hex(),
		"name":         u.Name,
		"email":        u.Email,
		"phone":        u.Phone,
		"role":         u.Role,
		"accountId":    u.AccountID,
		"isVerified":   u.IsVerified,
		"profilePhoto": u.ProfilePhoto,
	}
}
