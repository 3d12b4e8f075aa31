package models

import "time"

// Analytics holds the per-business counters. There is exactly one record per business.
type Analytics struct {
	BusinessID   string    `bson:"businessId" json:"businessId"`
	ProfileViews int64     `bson:"profileViews" json:"profileViews"`
	Inquiries    int64     `bson:"inquiries" json:"inquiries"`
	LastUpdated  time.Time `bson:"lastUpdated" json:"lastUpdated"`
}
