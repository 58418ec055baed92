package notifications

import (
	"context"

	"medisync-service/internal/app/contracts"
	"medisync-service/internal/app/models"
	"medisync-service/internal/pkg/constvars"
	"medisync-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NotificationMongoRepository struct {
	Collection *mongo.Collection
	Counters   *mongo.Collection
}

func NewNotificationMongoRepository(db *mongo.Database) contracts.NotificationRepository {
	return &NotificationMongoRepository{
		Collection: db.Collection(constvars.MongoCollectionNotifications),
		Counters:   db.Collection(constvars.MongoCollectionCounters),
	}
}

func (r *NotificationMongoRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.Counters.FindOneAndUpdate(ctx,
		bson.M{"_id": constvars.MongoCollectionNotifications},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoUpdate(err)
	}
	return counter.Seq, nil
}

func (r *NotificationMongoRepository) Insert(ctx context.Context, notification *models.Notification) (*models.Notification, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	notification.ID = id

	_, err = r.Collection.InsertOne(ctx, notification)
	if err != nil {
		return nil, exceptions.ErrMongoInsert(err)
	}
	return notification, nil
}

func (r *NotificationMongoRepository) FindByUser(ctx context.Context, userID int64) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, exceptions.ErrMongoFind(err)
	}
	return notifications, nil
}

func (r *NotificationMongoRepository) MarkRead(ctx context.Context, id, userID int64) error {
	result, err := r.Collection.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return exceptions.ErrMongoUpdate(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrNotificationNotFound(nil)
	}
	return nil
}
