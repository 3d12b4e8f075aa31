// Command seed fills a database with demo owners, businesses, products and reviews.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"businessconnect/config"
	"businessconnect/database"
	"businessconnect/database/repository"
	"businessconnect/models"
	"businessconnect/services/activity"
	"businessconnect/services/analytics"
	"businessconnect/services/business"
	"businessconnect/services/policy"
	"businessconnect/services/review"
	"businessconnect/services/storage"
	"businessconnect/services/user"

	"go.mongodb.org/mongo-driver/bson"
)

const seedPassword = "$Password1234"

// catalog lists the services and sample products seeded per category.
var catalog = map[string]map[string][]business.ProductInput{
	"Coffee & Beverages": {
		"Coffee": {{Name: "Latte", Price: 4.5}, {Name: "Espresso", Price: 3}},
		"Tea":    {{Name: "Chai", Price: 3.5}},
	},
	"Technology Repair": {
		"Phone Repair":  {{Name: "Screen Replacement", Price: 80}},
		"Laptop Repair": {{Name: "Battery Swap", Price: 120}},
	},
	"Beauty & Spa": {
		"Massage": {{Name: "Deep Tissue 60min", Price: 70}},
		"Nails":   {{Name: "Gel Manicure", Price: 35}},
	},
	"Food & Dining": {
		"Lunch":    {{Name: "Chef's Special", Price: 12}},
		"Catering": {{Name: "Office Platter", Price: 90}},
	},
}

var themes = []string{"light", "dark", "blue", "green"}

func main() {
	config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if database.UseMemoryStore() {
		log.Fatal("seed: DATABASE_URL points at the in-memory store; nothing would persist")
	}
	database.InitDB()
	defer func() { _ = database.Disconnect(context.Background()) }()

	// Clear existing directory data. Users are kept so logins survive a reseed.
	for _, name := range []string{"businesses", "reviews", "analytics", "activities"} {
		if _, err := database.DB().Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}
	repos := repository.NewMongoRepositories()

	activitySvc := activity.NewActivityService(repos.Activities)
	analyticsSvc := analytics.NewAnalyticsService(repos.Analytics, analytics.ViewPolicyAllReads, 0, nil)
	userSvc := user.NewUserService(repos.Users, activitySvc)
	businessSvc := business.NewBusinessService(repos.Businesses, repos.Reviews, analyticsSvc, activitySvc, storage.Unconfigured())
	reviewSvc := review.NewReviewService(repos.Reviews, repos.Businesses, repos.Users, activitySvc)

	owner := seedUser(ctx, userSvc, "Demo Owner", "owner@example.com", models.RoleBusinessOwner)
	reviewers := make([]policy.Actor, 0, 5)
	for i := 1; i <= 5; i++ {
		reviewers = append(reviewers, seedUser(ctx, userSvc,
			fmt.Sprintf("Demo Customer %d", i), fmt.Sprintf("customer_%d@example.com", i), models.RoleUser))
	}

	created := 0
	for category, services := range catalog {
		for n := 1; n <= 3; n++ {
			name := fmt.Sprintf("%s %d", strings.SplitN(category, " ", 2)[0], n)
			serviceNames := make([]string, 0, len(services))
			for s := range services {
				serviceNames = append(serviceNames, s)
			}

			b, err := businessSvc.Create(ctx, owner, business.CreateBusinessRequest{
				Name:        name,
				Icon:        "store",
				Contact:     models.Contact{Phone: fmt.Sprintf("+2547000%05d", created), Email: fmt.Sprintf("biz_%d@example.com", created)},
				Location:    "Sample City",
				PageName:    fmt.Sprintf("demo-%s-%d", pageSlug(category), n),
				Theme:       themes[rand.Intn(len(themes))],
				Description: fmt.Sprintf("A demo %s business.", strings.ToLower(category)),
				Category:    category,
				Services:    serviceNames,
				Hours:       map[string]string{"mon-fri": "08:00-18:00", "sat": "09:00-14:00"},
			})
			if err != nil {
				log.Fatalf("Failed to create business %s: %v", name, err)
			}

			for service, products := range services {
				for _, p := range products {
					if _, err := businessSvc.AddProduct(ctx, owner, b.ID, business.ProductRequest{Service: service, Product: &p}); err != nil {
						log.Fatalf("Failed to add product %s to %s: %v", p.Name, name, err)
					}
				}
			}

			for _, reviewer := range reviewers[:rand.Intn(len(reviewers))+1] {
				_, err := reviewSvc.Create(ctx, reviewer, b.ID, review.CreateReviewRequest{
					Rating:  float64(rand.Intn(3) + 3),
					Comment: "Seeded review",
				})
				if err != nil {
					log.Fatalf("Failed to review %s: %v", name, err)
				}
			}
			created++
		}
	}
	fmt.Printf("Seeded %d businesses owned by %s (password %q)\n", created, owner.ID, seedPassword)
}

// seedUser registers a demo account, or signs in when it already exists.
func seedUser(ctx context.Context, svc user.UserService, name, email string, role models.Role) policy.Actor {
	resp, err := svc.Register(ctx, user.RegisterRequest{Name: name, Email: email, Password: seedPassword, Role: role}, user.SessionMeta{UserAgent: "seed"})
	if err != nil {
		resp, err = svc.Login(ctx, user.LoginRequest{Email: email, Password: seedPassword, Device: "seed"}, user.SessionMeta{})
		if err != nil {
			log.Fatalf("Failed to prepare user %s: %v", email, err)
		}
	}
	return policy.Actor{ID: resp.ID, Name: resp.Name, Role: resp.Role}
}

func pageSlug(category string) string {
	slug := strings.ToLower(category)
	slug = strings.NewReplacer(" & ", "-", " ", "-").Replace(slug)
	return slug
}
