package repository

import (
	activityRepo "businessconnect/database/repository/activity"
	analyticsRepo "businessconnect/database/repository/analytics"
	businessRepo "businessconnect/database/repository/business"
	"businessconnect/database/repository/memory"
	reviewRepo "businessconnect/database/repository/review"
	userRepo "businessconnect/database/repository/user"
)

// Re-export the repository interfaces and constructors.
type UserRepository = userRepo.UserRepository

var NewMongoUserRepo = userRepo.NewMongoUserRepo

type BusinessRepository = businessRepo.BusinessRepository

type PublicFilter = businessRepo.PublicFilter

var NewMongoBusinessRepo = businessRepo.NewMongoBusinessRepo

type ReviewRepository = reviewRepo.ReviewRepository

var NewMongoReviewRepo = reviewRepo.NewMongoReviewRepo

type AnalyticsRepository = analyticsRepo.AnalyticsRepository

type AnalyticsCounter = analyticsRepo.Counter

var NewMongoAnalyticsRepo = analyticsRepo.NewMongoAnalyticsRepo

type ActivityRepository = activityRepo.ActivityRepository

var NewMongoActivityRepo = activityRepo.NewMongoActivityRepo

// Repositories is the full set of collections the services work against.
type Repositories struct {
	Users      UserRepository
	Businesses BusinessRepository
	Reviews    ReviewRepository
	Analytics  AnalyticsRepository
	Activities ActivityRepository
}

// NewMongoRepositories builds every repository on the global Mongo client.
func NewMongoRepositories() Repositories {
	return Repositories{
		Users:      NewMongoUserRepo(),
		Businesses: NewMongoBusinessRepo(),
		Reviews:    NewMongoReviewRepo(),
		Analytics:  NewMongoAnalyticsRepo(),
		Activities: NewMongoActivityRepo(),
	}
}

// NewMemoryRepositories builds process-local repositories.
func NewMemoryRepositories() Repositories {
	store := memory.NewStore()
	return Repositories{
		Users:      store.Users,
		Businesses: store.Businesses,
		Reviews:    store.Reviews,
		Analytics:  store.Analytics,
		Activities: store.Activities,
	}
}
