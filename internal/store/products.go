package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shynora-backend/internal/models"
)

type Products struct {
	col        *mongo.Collection
	categories *mongo.Collection
}

func NewProducts(db *mongo.Database) *Products {
	return &Products{col: db.Collection("products"), categories: db.Collection("categories")}
}

// ListFilter is the query surface of GET /api/products.
type ListFilter struct {
	Category string
	Featured *bool
	InStock  *bool
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Page     int64
	Limit    int64
	Sort     string
}

func (s *Products) List(ctx context.Context, f ListFilter) ([]models.Product, int64, error) {
	query := bson.M{}

	if f.Category != "" {
		if id, err := primitive.ObjectIDFromHex(f.Category); err == nil {
			query["category"] = id
		}
	}
	if f.Featured != nil {
		query["featured"] = *f.Featured
	}
	if f.InStock != nil {
		query["inStock"] = *f.InStock
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		query["price"] = price
	}
	if f.Search != "" {
		regex := primitive.Regex{Pattern: f.Search, Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 20
	}

	opts := options.Find().
		SetSort(sortSpec(f.Sort)).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cur, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// sortSpec maps "-createdAt" style sort keys onto a Mongo sort document.
func sortSpec(sort string) bson.D {
	if sort == "" {
		sort = "-createdAt"
	}
	dir := 1
	if strings.HasPrefix(sort, "-") {
		dir = -1
		sort = sort[1:]
	}
	return bson.D{{Key: sort, Value: dir}}
}

func (s *Products) ByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Products) byIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Product, error) {
	byID := make(map[primitive.ObjectID]models.Product, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// Create inserts the product and adds it to its category's product list.
func (s *Products) Create(ctx context.Context, p *models.Product) error {
	if p.OriginalPrice == 0 {
		p.OriginalPrice = p.Price
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Reviews == nil {
		p.Reviews = []models.Review{}
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := s.col.InsertOne(ctx, p)
	if err != nil {
		return err
	}
	p.ID = res.InsertedID.(primitive.ObjectID)

	if !p.Category.IsZero() {
		_, err = s.categories.UpdateOne(ctx,
			bson.M{"_id": p.Category},
			bson.M{"$push": bson.M{"products": p.ID}})
	}
	return err
}

// Update replaces the product and keeps category back-references in sync
// when the product moves between categories.
func (s *Products) Update(ctx context.Context, p *models.Product) error {
	old, err := s.ByID(ctx, p.ID)
	if err != nil {
		return err
	}
	p.UpdatedAt = time.Now()
	p.CreatedAt = old.CreatedAt
	if _, err := s.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p); err != nil {
		return err
	}
	if old.Category != p.Category {
		if !old.Category.IsZero() {
			_, _ = s.categories.UpdateOne(ctx,
				bson.M{"_id": old.Category},
				bson.M{"$pull": bson.M{"products": p.ID}})
		}
		if !p.Category.IsZero() {
			_, _ = s.categories.UpdateOne(ctx,
				bson.M{"_id": p.Category},
				bson.M{"$push": bson.M{"products": p.ID}})
		}
	}
	return nil
}

func (s *Products) Delete(ctx context.Context, id primitive.ObjectID) error {
	p, err := s.ByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	if !p.Category.IsZero() {
		_, _ = s.categories.UpdateOne(ctx,
			bson.M{"_id": p.Category},
			bson.M{"$pull": bson.M{"products": id}})
	}
	return nil
}

func (s *Products) CategoryExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.categories.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
