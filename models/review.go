package models

import "time"

type Review struct {
	ID         string    `bson:"id" json:"id"`
	BusinessID string    `bson:"businessId" json:"businessId"`
	UserID     string    `bson:"userId" json:"userId"`
	UserName   string    `bson:"userName" json:"userName"`
	UserAvatar string    `bson:"userAvatar" json:"userAvatar"`
	Rating     int       `bson:"rating" json:"rating" validate:"min=1,max=5"`
	Comment    string    `bson:"comment" json:"comment"`
	CreatedAt  time.Time `bson:"createdAt" json:"date"`
}
