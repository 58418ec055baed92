package schedule

import (
	"context"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DoctorMongoRepository struct {
	Collection *mongo.Collection
}

func NewDoctorMongoRepository(db *mongo.Database) contracts.DoctorRepository {
	return &DoctorMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionDoctors),
	}
}

func (r *DoctorMongoRepository) FindAvailabilityByDoctorID(ctx context.Context, doctorID int64) (*models.DoctorAvailability, error) {
	var availability models.DoctorAvailability
	err := r.Collection.FindOne(ctx, bson.M{"_id": doctorID}).Decode(&availability)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoFind(err)
	}
	return &availability, nil
}
