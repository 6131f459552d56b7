package catalog

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"inhotel/database"
	"inhotel/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo serves the catalog from the "hotels" collection for
// deployments that seed the catalog into MongoDB. Documents keep their
// insertion order.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	coll := database.MongoClient.Database("inhotel").Collection("hotels")
	return &MongoCatalogRepo{coll: coll}
}

func (r *MongoCatalogRepo) All(ctx context.Context) ([]models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (r *MongoCatalogRepo) Search(ctx context.Context, query string) ([]models.Hotel, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pattern := regexp.QuoteMeta(query)
	filter := bson.M{"$or": bson.A{
		bson.M{"name": bson.M{"$regex": pattern, "$options": "i"}},
		bson.M{"location": bson.M{"$regex": pattern, "$options": "i"}},
	}}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search hotels: %w", err)
	}
	defer cursor.Close(ctx)

	var hotels []models.Hotel
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}
