package models

import "time"

type Notification struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    int64     `bson:"user_id" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	IsRead    bool      `bson:"is_read" json:"isRead"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
