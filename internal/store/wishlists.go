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

type Wishlists struct {
	col      *mongo.Collection
	users    *Users
	products *Products
}

func NewWishlists(db *mongo.Database, users *Users, products *Products) *Wishlists {
	return &Wishlists{col: db.Collection("wishlists"), users: users, products: products}
}

func (s *Wishlists) GetOrCreate(ctx context.Context, userID primitive.ObjectID) (*models.Wishlist, error) {
	var w models.Wishlist
	err := s.col.FindOne(ctx, bson.M{"user": userID}).Decode(&w)
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	w = models.Wishlist{User: userID, Products: []primitive.ObjectID{}}
	res, err := s.col.InsertOne(ctx, w)
	if err != nil {
		return nil, err
	}
	w.ID = res.InsertedID.(primitive.ObjectID)

	if u, err := s.users.ByID(ctx, userID); err == nil {
		linked := false
		for _, id := range u.Wishlist {
			if id == w.ID {
				linked = true
				break
			}
		}
		if !linked {
			u.Wishlist = append(u.Wishlist, w.ID)
			_ = s.users.Update(ctx, u)
		}
	}
	return &w, nil
}

// Add inserts the product reference; adding an already-present product is a
// no-op, the wishlist is a set.
func (s *Wishlists) Add(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	w, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, id := range w.Products {
		if id == productID {
			return w, nil
		}
	}
	w.Products = append(w.Products, productID)
	return w, s.saveProducts(ctx, userID, w.Products)
}

func (s *Wishlists) Remove(ctx context.Context, userID, productID primitive.ObjectID) (*models.Wishlist, error) {
	w, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i, id := range w.Products {
		if id == productID {
			w.Products = append(w.Products[:i], w.Products[i+1:]...)
			break
		}
	}
	return w, s.saveProducts(ctx, userID, w.Products)
}

func (s *Wishlists) saveProducts(ctx context.Context, userID primitive.ObjectID, products []primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"user": userID},
		bson.M{"$set": bson.M{"products": products}},
		options.Update().SetUpsert(true))
	return err
}

// ProductsDetailed resolves the wishlist's product references, skipping
// products that have been deleted.
func (s *Wishlists) ProductsDetailed(ctx context.Context, userID primitive.ObjectID) ([]models.Product, error) {
	w, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID, err := s.products.byIDs(ctx, w.Products)
	if err != nil {
		return nil, err
	}
	detailed := make([]models.Product, 0, len(w.Products))
	for _, id := range w.Products {
		if p, ok := byID[id]; ok {
			detailed = append(detailed, p)
		}
	}
	return detailed, nil
}
