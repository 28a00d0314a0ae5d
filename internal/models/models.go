package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address is an embedded shipping address. At most one entry per user
// carries IsDefault.
type Address struct {
	Type      string `bson:"type" json:"type"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	ZipCode   string `bson:"zipCode" json:"zipCode"`
	Country   string `bson:"country" json:"country"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// OTP is the single active one-time code for a user. Issuing a new code
// overwrites the previous one.
type OTP struct {
	Code      string     `bson:"code,omitempty" json:"-"`
	ExpiresAt *time.Time `bson:"expiresAt,omitempty" json:"-"`
}

type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password,omitempty" json:"-"`
	GoogleID      string               `bson:"googleId,omitempty" json:"googleId,omitempty"`
	Avatar        string               `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Phone         string               `bson:"phone,omitempty" json:"phone,omitempty"`
	OTP           OTP                  `bson:"otp" json:"-"`
	EmailVerified bool                 `bson:"isEmailVerified" json:"isEmailVerified"`
	Addresses     []Address            `bson:"addresses" json:"addresses"`
	Orders        []primitive.ObjectID `bson:"orders" json:"orders"`
	Cart          []primitive.ObjectID `bson:"cart" json:"cart"`
	Wishlist      []primitive.ObjectID `bson:"wishlist" json:"wishlist"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type Review struct {
	User      primitive.ObjectID `bson:"user" json:"user"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description" json:"description"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"originalPrice" json:"originalPrice"`
	Images        []string           `bson:"images" json:"images"`
	Category      primitive.ObjectID `bson:"category,omitempty" json:"category,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	InStock       bool               `bson:"inStock" json:"inStock"`
	Rating        float64            `bson:"rating" json:"rating"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Tags          []string           `bson:"tags" json:"tags"`
	Featured      bool               `bson:"featured" json:"featured"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type Category struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Image       string               `bson:"image" json:"image"`
	Products    []primitive.ObjectID `bson:"products" json:"products"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

type CartItem struct {
	Product  primitive.ObjectID `bson:"product" json:"product"`
	Quantity int                `bson:"quantity" json:"quantity"`
}

// Cart is one document per user, created lazily on first mutation.
type Cart struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User  primitive.ObjectID `bson:"user" json:"user"`
	Items []CartItem         `bson:"items" json:"items"`
}

// Wishlist holds a duplicate-free set of product references per user.
type Wishlist struct {
	ID       primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	User     primitive.ObjectID   `bson:"user" json:"user"`
	Products []primitive.ObjectID `bson:"products" json:"products"`
}

// PopulatedCartItem is a cart entry with the product reference resolved,
// the shape clients receive from GET /api/cart.
type PopulatedCartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}
