package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shynora-backend/internal/models"
)

type Categories struct {
	col      *mongo.Collection
	products *mongo.Collection
}

func NewCategories(db *mongo.Database) *Categories {
	return &Categories{col: db.Collection("categories"), products: db.Collection("products")}
}

func (s *Categories) List(ctx context.Context) ([]models.Category, error) {
	cur, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var categories []models.Category
	if err := cur.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *Categories) ByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var c models.Category
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Categories) Create(ctx context.Context, c *models.Category) error {
	err := s.col.FindOne(ctx, bson.M{"name": c.Name}).Err()
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	if c.Products == nil {
		c.Products = []primitive.ObjectID{}
	}
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	res, err := s.col.InsertOne(ctx, c)
	if err != nil {
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *Categories) Update(ctx context.Context, c *models.Category) error {
	old, err := s.ByID(ctx, c.ID)
	if err != nil {
		return err
	}
	c.CreatedAt = old.CreatedAt
	c.UpdatedAt = time.Now()
	_, err = s.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

// Delete removes the category and detaches it from its products.
func (s *Categories) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.ByID(ctx, id); err != nil {
		return err
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	_, err := s.products.UpdateMany(ctx,
		bson.M{"category": id},
		bson.M{"$unset": bson.M{"category": ""}})
	return err
}
