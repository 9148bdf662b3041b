// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the account document. Password and refresh token only leave
// the database when a query explicitly asks for them, and never reach
// the wire.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"          json:"id"`
	FirstName    string             `bson:"firstName"              json:"firstName"`
	LastName     string             `bson:"lastName"               json:"lastName"`
	Email        string             `bson:"email,omitempty"        json:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty"        json:"phone,omitempty"`
	Address      string             `bson:"address,omitempty"      json:"address,omitempty"`
	GoogleID     string             `bson:"googleId,omitempty"     json:"googleId,omitempty"`
	Role         string             `bson:"role"                   json:"role"`
	Avatar       string             `bson:"avatar,omitempty"       json:"avatar,omitempty"`
	OTP          *int               `bson:"otp,omitempty"          json:"-"`
	Password     string             `bson:"password,omitempty"     json:"-"`
	RefreshToken string             `bson:"refreshToken,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt"              json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"              json:"updatedAt"`
}
