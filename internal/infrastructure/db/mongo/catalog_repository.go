package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/greenharbor/greennest-backend/internal/core/domain"
)

const (
	plantsCollection     = "plants"
	categoriesCollection = "categories"
)

type PlantRepository struct {
	coll *mongo.Collection
}

func NewPlantRepository(db *mongo.Database) *PlantRepository {
	return &PlantRepository{coll: db.Collection(plantsCollection)}
}

type mongoPlant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       int64              `bson:"price"`
	Category    string             `bson:"category"`
	ImageURL    string             `bson:"image_url"`
	Stock       int                `bson:"stock"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func toDomainPlant(mp mongoPlant) *domain.Plant {
	return &domain.Plant{
		ID:          mp.ID.Hex(),
		Name:        mp.Name,
		Description: mp.Description,
		Price:       mp.Price,
		Category:    mp.Category,
		ImageURL:    mp.ImageURL,
		Stock:       mp.Stock,
		CreatedAt:   mp.CreatedAt,
	}
}

func (r *PlantRepository) Create(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPlant{
		Name:        plant.Name,
		Description: plant.Description,
		Price:       plant.Price,
		Category:    plant.Category,
		ImageURL:    plant.ImageURL,
		Stock:       plant.Stock,
		CreatedAt:   plant.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert plant: %w", err)
	}

	created := *plant
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *PlantRepository) FindByID(ctx context.Context, id string) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPlant
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlantNotFound
		}
		return nil, fmt.Errorf("find plant: %w", err)
	}
	return toDomainPlant(mp), nil
}

// List returns one page of plants plus the total match count. An empty
// category means no filter.
func (r *PlantRepository) List(ctx context.Context, category string, page, size int) ([]*domain.Plant, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if category != "" {
		filter["category"] = category
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count plants: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page-1) * int64(size)).
		SetLimit(int64(size)).
		SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list plants: %w", err)
	}
	defer cur.Close(ctx)

	plants := make([]*domain.Plant, 0, size)
	for cur.Next(ctx) {
		var mp mongoPlant
		if err := cur.Decode(&mp); err != nil {
			return nil, 0, fmt.Errorf("decode plant: %w", err)
		}
		plants = append(plants, toDomainPlant(mp))
	}
	return plants, total, cur.Err()
}

// Search matches the query case-insensitively against name and description.
func (r *PlantRepository) Search(ctx context.Context, query string) ([]*domain.Plant, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"description": pattern},
	}}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("search plants: %w", err)
	}
	defer cur.Close(ctx)

	plants := make([]*domain.Plant, 0)
	for cur.Next(ctx) {
		var mp mongoPlant
		if err := cur.Decode(&mp); err != nil {
			return nil, fmt.Errorf("decode plant: %w", err)
		}
		plants = append(plants, toDomainPlant(mp))
	}
	return plants, cur.Err()
}

func (r *PlantRepository) Update(ctx context.Context, plant *domain.Plant) (*domain.Plant, error) {
	oid, err := primitive.ObjectIDFromHex(plant.ID)
	if err != nil {
		return nil, domain.ErrPlantNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":        plant.Name,
		"description": plant.Description,
		"price":       plant.Price,
		"category":    plant.Category,
		"image_url":   plant.ImageURL,
		"stock":       plant.Stock,
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return nil, fmt.Errorf("update plant: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPlantNotFound
	}
	return plant, nil
}

func (r *PlantRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete plant: %w", err)
	}
	return nil
}

// EnsureIndexes creates the browse index for the plants collection.
func (r *PlantRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "category", Value: 1}},
	})
	return err
}

type CategoryRepository struct {
	coll *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{coll: db.Collection(categoriesCollection)}
}

type mongoCategory struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Name string             `bson:"name"`
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, mongoCategory{Name: category.Name})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrCategoryExists
		}
		return nil, fmt.Errorf("insert category: %w", err)
	}

	created := *category
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)

	categories := make([]*domain.Category, 0)
	for cur.Next(ctx) {
		var mc mongoCategory
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, &domain.Category{ID: mc.ID.Hex(), Name: mc.Name})
	}
	return categories, cur.Err()
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// EnsureIndexes creates the unique name index for categories.
func (r *CategoryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
