package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shynora-backend/internal/models"
)

type Carts struct {
	col      *mongo.Collection
	users    *Users
	products *Products
}

func NewCarts(db *mongo.Database, users *Users, products *Products) *Carts {
	return &Carts{col: db.Collection("carts"), users: users, products: products}
}

// GetOrCreate returns the user's cart, creating an empty one (and linking it
// on the user document) on first use.
func (s *Carts) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	var cart models.Cart
	err := s.col.FindOne(ctx, bson.M{"user": userID}).Decode(&cart)
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	cart = models.Cart{User: userID, Items: []models.CartItem{}}
	res, err := s.col.InsertOne(ctx, cart)
	if err != nil {
		return nil, err
	}
	cart.ID = res.InsertedID.(primitive.ObjectID)

	// Back-reference on the user document, best effort.
	if u, err := s.users.ByID(ctx, userID); err == nil {
		linked := false
		for _, id := range u.Cart {
			if id == cart.ID {
				linked = true
				break
			}
		}
		if !linked {
			u.Cart = append(u.Cart, cart.ID)
			_ = s.users.Update(ctx, u)
		}
	}
	return &cart, nil
}

// Add appends the product to the cart or bumps the existing quantity.
func (s *Carts) Add(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i, item := range cart.Items {
		if item.Product == productID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, models.CartItem{Product: productID, Quantity: quantity})
	}
	return cart, s.saveItems(ctx, userID, cart.Items)
}

// SetQuantity replaces the quantity of an existing item.
func (s *Carts) SetQuantity(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	found := false
	for i, item := range cart.Items {
		if item.Product == productID {
			cart.Items[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrNotFound
	}
	return cart, s.saveItems(ctx, userID, cart.Items)
}

func (s *Carts) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, item := range cart.Items {
		if item.Product == productID {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			break
		}
	}
	return cart, s.saveItems(ctx, userID, cart.Items)
}

func (s *Carts) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.saveItems(ctx, userID, []models.CartItem{})
}

func (s *Carts) saveItems(ctx context.Context, userID primitive.ObjectID, items []models.CartItem) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"items": items}},
		options.Update().SetUpsert(true))
	return err
}

// ItemsDetailed resolves product references for the user's cart. Items whose
// product no longer exists are skipped.
func (s *Carts) ItemsDetailed(ctx context.Context, userID primitive.ObjectID) ([]models.PopulatedCartItem, error) {
	cart, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.Product)
	}
	byID, err := s.products.byIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	populated := make([]models.PopulatedCartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		p, ok := byID[item.Product]
		if !ok {
			continue
		}
		populated = append(populated, models.PopulatedCartItem{Product: p, Quantity: item.Quantity})
	}
	return populated, nil
}
