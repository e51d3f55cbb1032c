// internal/handlers/review_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hydrolink/hydrolink-backend/internal/middleware"
	"github.com/hydrolink/hydrolink-backend/internal/models"
	"github.com/hydrolink/hydrolink-backend/internal/services"
	"github.com/hydrolink/hydrolink-backend/internal/utils"
)

type ReviewHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	router  *gin.Engine
	author  models.User
	other   models.User
	admin   models.User
	product models.Product
}

func (suite *ReviewHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Review{},
	))
	suite.db = db

	suite.author = suite.createUser("mgarcia", "mgarcia@example.com", models.UserRoleCustomer)
	suite.other = suite.createUser("jlopez", "jlopez@example.com", models.UserRoleCustomer)
	suite.admin = suite.createUser("admin", "admin@hydrolink.com", models.UserRoleAdmin)

	suite.product = models.Product{
		Name:   "Nutrient Solution A+B",
		Price:  24.50,
		Active: true,
	}
	suite.Require().NoError(db.Create(&suite.product).Error)

	reviewHandler := NewReviewHandler(services.NewReviewService(db))

	router := gin.New()
	router.Use(middleware.I18nMiddleware())

	reviews := router.Group("/v1/reviews")
	{
		reviews.GET("", reviewHandler.GetReviews)
		reviews.GET("/product/:productId", reviewHandler.GetProductReviews)
		reviews.GET("/user/:userId", middleware.AuthRequired(), reviewHandler.GetUserReviews)
		reviews.GET("/:id", reviewHandler.GetReview)

		protected := reviews.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.POST("", reviewHandler.CreateReview)
			protected.PUT("/:id", reviewHandler.UpdateReview)
			protected.DELETE("/:id", reviewHandler.DeleteReview)
		}
	}
	suite.router = router
}

func (suite *ReviewHandlerTestSuite) createUser(username, email string, role models.UserRole) models.User {
	user := models.User{
		Username: username,
		Email:    email,
		Role:     role,
		Active:   true,
	}
	suite.Require().NoError(user.SetPassword("Secret123!"))
	suite.Require().NoError(suite.db.Create(&user).Error)
	return user
}

func (suite *ReviewHandlerTestSuite) tokenFor(user models.User) string {
	token, err := utils.GenerateJWT(user.ID, user.Username, string(user.Role), 1)
	suite.Require().NoError(err)
	return token
}

func (suite *ReviewHandlerTestSuite) request(method, path string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+suite.tokenFor(*user))
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReviewHandlerTestSuite) createReviewBody(rating int, text string) map[string]interface{} {
	return map[string]interface{}{
		"author_id":  suite.author.ID.String(),
		"product_id": suite.product.ID.String(),
		"rating":     rating,
		"text":       text,
	}
}

func (suite *ReviewHandlerTestSuite) parseBody(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func (suite *ReviewHandlerTestSuite) postReview(rating int, text string) string {
	w := suite.request(http.MethodPost, "/v1/reviews", suite.createReviewBody(rating, text), &suite.author)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := suite.parseBody(w)
	data := response["data"].(map[string]interface{})
	review := data["review"].(map[string]interface{})
	return review["id"].(string)
}

func (suite *ReviewHandlerTestSuite) TestCreateReview() {
	w := suite.request(http.MethodPost, "/v1/reviews", suite.createReviewBody(4, "Muy recomendable"), &suite.author)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	response := suite.parseBody(w)
	assert.True(suite.T(), response["success"].(bool))

	review := response["data"].(map[string]interface{})["review"].(map[string]interface{})
	assert.Equal(suite.T(), float64(4), review["rating"])
	assert.Equal(suite.T(), "Muy recomendable", review["text"])
	assert.Equal(suite.T(), "Nutrient Solution A+B", review["product_name"])
}

func (suite *ReviewHandlerTestSuite) TestCreateReviewRequiresAuth() {
	w := suite.request(http.MethodPost, "/v1/reviews", suite.createReviewBody(4, ""), nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestCreateReviewRejectsBadToken() {
	req, _ := http.NewRequest(http.MethodPost, "/v1/reviews", bytes.NewBufferString("{}"))
	req.Header.Set("Authorization", "Bearer not-a-token")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestCreateReviewOutOfRangeRating() {
	for _, rating := range []int{0, 6} {
		w := suite.request(http.MethodPost, "/v1/reviews", suite.createReviewBody(rating, ""), &suite.author)
		suite.Require().Equal(http.StatusBadRequest, w.Code, "rating %d", rating)

		response := suite.parseBody(w)
		errObj := response["error"].(map[string]interface{})
		assert.Equal(suite.T(), "VALIDATION_ERROR", errObj["code"])
	}
}

func (suite *ReviewHandlerTestSuite) TestCreateReviewUnknownProduct() {
	body := suite.createReviewBody(3, "")
	body["product_id"] = "3f2f80a4-92cd-4f2e-9a38-04b2a1a7ee10"

	w := suite.request(http.MethodPost, "/v1/reviews", body, &suite.author)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestDuplicateReviewConflicts() {
	suite.postReview(5, "Excelente")

	w := suite.request(http.MethodPost, "/v1/reviews", suite.createReviewBody(1, "Otra vez"), &suite.author)
	suite.Require().Equal(http.StatusConflict, w.Code)

	response := suite.parseBody(w)
	errObj := response["error"].(map[string]interface{})
	assert.Equal(suite.T(), "CONFLICT", errObj["code"])
}

func (suite *ReviewHandlerTestSuite) TestGetReviewsIsPublic() {
	suite.postReview(5, "")

	w := suite.request(http.MethodGet, "/v1/reviews", nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	response := suite.parseBody(w)
	assert.True(suite.T(), response["success"].(bool))
	assert.Len(suite.T(), response["data"].([]interface{}), 1)
	assert.Equal(suite.T(), "1", w.Header().Get("X-Total-Count"))
}

func (suite *ReviewHandlerTestSuite) TestGetReviewRoundTrip() {
	id := suite.postReview(3, "Cumple lo prometido")

	w := suite.request(http.MethodGet, "/v1/reviews/"+id, nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	review := suite.parseBody(w)["data"].(map[string]interface{})["review"].(map[string]interface{})
	assert.Equal(suite.T(), id, review["id"])
	assert.Equal(suite.T(), float64(3), review["rating"])
	assert.Equal(suite.T(), "Cumple lo prometido", review["text"])
	assert.Equal(suite.T(), suite.product.ID.String(), review["product_id"])

	author := review["author"].(map[string]interface{})
	assert.Equal(suite.T(), suite.author.ID.String(), author["id"])
}

func (suite *ReviewHandlerTestSuite) TestGetUnknownReview() {
	w := suite.request(http.MethodGet, "/v1/reviews/24b19dff-10c4-4bd4-a6a5-0f6759f6f23c", nil, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestGetProductReviewsWithStatistics() {
	suite.postReview(4, "")

	path := fmt.Sprintf("/v1/reviews/product/%s", suite.product.ID)
	w := suite.request(http.MethodGet, path, nil, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	data := suite.parseBody(w)["data"].(map[string]interface{})
	assert.Len(suite.T(), data["reviews"].([]interface{}), 1)

	stats := data["statistics"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), stats["total_reviews"])
	assert.Equal(suite.T(), float64(4), stats["average_rating"])

	distribution := stats["rating_distribution"].(map[string]interface{})
	assert.Len(suite.T(), distribution, 5)
	assert.Equal(suite.T(), float64(1), distribution["4"])
	assert.Equal(suite.T(), float64(0), distribution["1"])
}

func (suite *ReviewHandlerTestSuite) TestGetUserReviewsSelfOnly() {
	suite.postReview(5, "")

	path := fmt.Sprintf("/v1/reviews/user/%s", suite.author.ID)

	// Anonymous callers are rejected
	w := suite.request(http.MethodGet, path, nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	// A different customer may not read someone else's listing
	w = suite.request(http.MethodGet, path, nil, &suite.other)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// The author may
	w = suite.request(http.MethodGet, path, nil, &suite.author)
	suite.Require().Equal(http.StatusOK, w.Code)
	data := suite.parseBody(w)["data"].(map[string]interface{})
	assert.Len(suite.T(), data["reviews"].([]interface{}), 1)

	// So may an admin
	w = suite.request(http.MethodGet, path, nil, &suite.admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestUpdateReviewOwnership() {
	id := suite.postReview(4, "Original")
	body := map[string]interface{}{"rating": 1, "text": "Cambiado"}

	// Non-author gets 403
	w := suite.request(http.MethodPut, "/v1/reviews/"+id, body, &suite.other)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	// Author gets 204
	w = suite.request(http.MethodPut, "/v1/reviews/"+id, body, &suite.author)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/v1/reviews/"+id, nil, nil)
	review := suite.parseBody(w)["data"].(map[string]interface{})["review"].(map[string]interface{})
	assert.Equal(suite.T(), float64(1), review["rating"])
	assert.Equal(suite.T(), "Cambiado", review["text"])
}

func (suite *ReviewHandlerTestSuite) TestUpdateUnknownReview() {
	body := map[string]interface{}{"rating": 2, "text": ""}
	w := suite.request(http.MethodPut, "/v1/reviews/24b19dff-10c4-4bd4-a6a5-0f6759f6f23c", body, &suite.author)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *ReviewHandlerTestSuite) TestDeleteReviewOwnership() {
	id := suite.postReview(4, "")

	w := suite.request(http.MethodDelete, "/v1/reviews/"+id, nil, &suite.other)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, "/v1/reviews/"+id, nil, &suite.author)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w = suite.request(http.MethodGet, "/v1/reviews/"+id, nil, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestReviewHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReviewHandlerTestSuite))
}
