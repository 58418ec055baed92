package appointments

import (
	"context"
	"time"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Database) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionAppointments),
		Counters:   db.Collection(constvars.MongoCollectionCounters),
	}
}

// nextID allocates the next appointment id from a counters document. The
// upsert keeps the sequence self-initializing on an empty database.
func (r *AppointmentMongoRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": constvars.MongoCollectionAppointments},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoUpdate(err)
	}
	return counter.Seq, nil
}

func (r *AppointmentMongoRepository) Insert(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	appointment.ID = id

	_, err = r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoInsert(err)
	}
	return appointment, nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoFind(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"patient_id": patientID})
}

func (r *AppointmentMongoRepository) FindByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"doctor_id": doctorID})
}

func (r *AppointmentMongoRepository) FindByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"hospital_id": hospitalID})
}

func (r *AppointmentMongoRepository) FindByDoctorAndDate(ctx context.Context, doctorID int64, date string) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"doctor_id": doctorID, "appointment_date": date})
}

func (r *AppointmentMongoRepository) FindByStatusAndDate(ctx context.Context, status models.AppointmentStatus, date string) ([]models.Appointment, error) {
	return r.findMany(ctx, bson.M{"status": status, "appointment_date": date})
}

func (r *AppointmentMongoRepository) findMany(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "appointment_date", Value: 1},
		{Key: "appointment_time", Value: 1},
	})
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	return appointments, nil
}

func (r *AppointmentMongoRepository) UpdateStatusIf(
	ctx context.Context,
	id int64,
	fromStatuses []models.AppointmentStatus,
	to models.AppointmentStatus,
	extra map[string]interface{},
) (*models.Appointment, error) {
	set := bson.M{
		"status":     to,
		"updated_at": time.Now(),
	}
	for field, value := range extra {
		set[field] = value
	}

	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": fromStatuses},
	}

	var updated models.Appointment
	err := r.Collection.FindOneAndUpdate(ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Either the appointment is gone or it is no longer in an
			// expected source state. The caller distinguishes the two.
			return nil, nil
		}
		return nil, exceptions.ErrMongoUpdate(err)
	}
	return &updated, nil
}

func (r *AppointmentMongoRepository) UpdateSchedule(
	ctx context.Context,
	id int64,
	date, startTime, timeSlot string,
	extra map[string]interface{},
) (*models.Appointment, error) {
	set := bson.M{
		"appointment_date": date,
		"appointment_time": startTime,
		"time_slot":        timeSlot,
		"updated_at":       time.Now(),
	}
	for field, value := range extra {
		set[field] = value
	}

	var updated models.Appointment
	err := r.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoUpdate(err)
	}
	return &updated, nil
}
