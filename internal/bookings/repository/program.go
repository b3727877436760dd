package repository

import (
	"context"
	"errors"
	"fmt"

	"resort/pkg/config"
	"resort/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgramRepository reads bookable program add-ons for pricing.
type ProgramRepository interface {
	FindByID(ctx context.Context, id string) (*model.Program, error)
}

type mongoProgramRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoProgramRepository(cfg *config.Config) ProgramRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoProgramRepository{
		cfg:        cfg,
		collection: db.Collection(ProgramsCollection),
	}
}

// FindByID tolerates both ObjectID and legacy string ids; callers skip
// programs that cannot be resolved rather than failing the booking.
func (r *mongoProgramRepository) FindByID(ctx context.Context, id string) (*model.Program, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var filter bson.M
	if objectID, err := primitive.ObjectIDFromHex(id); err == nil {
		filter = bson.M{"_id": objectID}
	} else {
		filter = bson.M{"$or": []bson.M{{"_id": id}, {"id": id}}}
	}

	var program model.Program
	err := r.collection.FindOne(ctx, filter).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, mongo.ErrNoDocuments
		}
		return nil, fmt.Errorf("failed to find program: %w", err)
	}
	return &program, nil
}
