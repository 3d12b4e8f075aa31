package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"businessconnect/config"
	"businessconnect/database/repository"
	"businessconnect/handlers"
	"businessconnect/middleware"
	"businessconnect/services/activity"
	"businessconnect/services/analytics"
	"businessconnect/services/business"
	"businessconnect/services/review"
	"businessconnect/services/storage"
	"businessconnect/services/user"
	"businessconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.ClientURL = "http://localhost:5173"

	repos := repository.NewMemoryRepositories()
	activitySvc := activity.NewActivityService(repos.Activities)
	analyticsSvc := analytics.NewAnalyticsService(repos.Analytics, analytics.ViewPolicyAllReads, 0, nil)
	userSvc := user.NewUserService(repos.Users, activitySvc)
	businessSvc := business.NewBusinessService(repos.Businesses, repos.Reviews, analyticsSvc, activitySvc, storage.Unconfigured())
	reviewSvc := review.NewReviewService(repos.Reviews, repos.Businesses, repos.Users, activitySvc)

	r := gin.New()
	r.Use(utils.ErrorHandler())
	r.Use(middleware.RequestLogger())
	RegisterRoutes(r, handlers.NewHandlerBundle(userSvc, businessSvc, reviewSvc), userSvc)
	return r
}

func do(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func registerUser(t *testing.T, r http.Handler, email, role string) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/users/register", "", gin.H{
		"name":     "Test " + role,
		"email":    email,
		"password": "secret123",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), utils.AuthCookieName+"=")
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestBusinessLifecycle(t *testing.T) {
	r := newTestRouter(t)
	ownerToken := registerUser(t, r, "owner@example.com", "business_owner")
	customerToken := registerUser(t, r, "customer@example.com", "user")

	newBusiness := gin.H{
		"name":     "Brew House",
		"icon":     "coffee",
		"contact":  gin.H{"phone": "+254700000000", "email": "hello@brew.house"},
		"location": "Nairobi",
		"pageName": "brewhouse",
		"category": "Coffee & Beverages",
		"services": []string{"Coffee"},
		"images":   []string{"https://img.example/front.png"},
	}

	w := do(t, r, http.MethodPost, "/api/businesses", "", newBusiness)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = do(t, r, http.MethodPost, "/api/businesses", customerToken, newBusiness)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodPost, "/api/businesses", ownerToken, newBusiness)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.Equal(t, map[string]interface{}{"Coffee": []interface{}{}}, created["products"])

	w = do(t, r, http.MethodGet, "/api/businesses/get-all", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode(t, w)
	assert.Equal(t, float64(1), listing["totalBusinesses"])
	first := listing["businesses"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "https://img.example/front.png", first["image"])

	w = do(t, r, http.MethodGet, "/api/businesses/BrewHouse", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, decode(t, w)["id"])

	w = do(t, r, http.MethodPost, "/api/businesses/"+id+"/products", ownerToken, gin.H{
		"service": "Coffee",
		"product": gin.H{"name": "Latte", "price": 4.5},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	products := decode(t, w)["products"].(map[string]interface{})["Coffee"].([]interface{})
	require.Len(t, products, 1)
	latte := products[0].(map[string]interface{})
	assert.Equal(t, 4.5, latte["price"])
	assert.Equal(t, float64(0), latte["rating"])
	productID := latte["id"].(string)

	w = do(t, r, http.MethodPost, "/api/businesses/"+id+"/products", customerToken, gin.H{
		"service": "Coffee",
		"product": gin.H{"name": "Mocha", "price": 5},
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, r, http.MethodDelete, "/api/businesses/"+id+"/products/"+productID, ownerToken, gin.H{"service": "Coffee"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = do(t, r, http.MethodDelete, "/api/businesses/"+id+"/products/"+productID, ownerToken, gin.H{"service": "Coffee"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodPost, "/api/businesses/"+id+"/reviews", customerToken, gin.H{"rating": 4, "comment": "Great latte"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = do(t, r, http.MethodPost, "/api/businesses/"+id+"/reviews", customerToken, gin.H{"rating": 2})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You have already reviewed this business", decode(t, w)["message"])

	w = do(t, r, http.MethodGet, "/api/businesses/"+id+"/reviews", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Contains(t, reviews[0], "date")
	assert.Equal(t, "Test user", reviews[0]["userName"])

	w = do(t, r, http.MethodPost, "/api/businesses/"+id+"/inquiries", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/businesses/stats", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)
	// One public list read and one single read.
	assert.Equal(t, float64(2), stats["profileViews"])
	assert.Equal(t, float64(1), stats["inquiries"])
	assert.Equal(t, float64(1), stats["servicesOffered"])

	w = do(t, r, http.MethodPut, "/api/businesses/"+id, ownerToken, gin.H{"services": []string{"Tea"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, map[string]interface{}{"Tea": []interface{}{}}, decode(t, w)["products"])

	w = do(t, r, http.MethodDelete, "/api/businesses/"+id, customerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = do(t, r, http.MethodDelete, "/api/businesses/"+id, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Business deleted successfully", decode(t, w)["message"])

	w = do(t, r, http.MethodGet, "/api/businesses/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/users/activities", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var activities []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &activities))
	require.NotEmpty(t, activities)
	assert.Equal(t, "business_delete", activities[0]["type"])
}

func TestUserSessionFlow(t *testing.T) {
	r := newTestRouter(t)
	registerUser(t, r, "una@example.com", "user")

	w := do(t, r, http.MethodPost, "/api/users/login", "", gin.H{"email": "una@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodPost, "/api/users/login", "", gin.H{"email": "una@example.com", "password": "secret123", "device": "Phone"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = do(t, r, http.MethodGet, "/api/users/sessions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sessions []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sessions))
	require.Len(t, sessions, 2)
	assert.NotContains(t, sessions[0], "tokenHash")

	w = do(t, r, http.MethodPut, "/api/users/profile", token, gin.H{"bio": "Coffee lover"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Coffee lover", decode(t, w)["bio"])

	w = do(t, r, http.MethodPost, "/api/users/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Anonymous logout only clears the cookie.
	w = do(t, r, http.MethodPost, "/api/users/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadImage_Unavailable(t *testing.T) {
	r := newTestRouter(t)
	token := registerUser(t, r, "owner@example.com", "business_owner")

	w := do(t, r, http.MethodPost, "/api/businesses/upload/image", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r := newTestRouter(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	utils.StartHealthMonitor(ctx, nil, nil)

	w := do(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
