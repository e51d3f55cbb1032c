// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hydrolink/hydrolink-backend/internal/database"
	"github.com/hydrolink/hydrolink-backend/internal/models"
	"github.com/hydrolink/hydrolink-backend/internal/utils"
)

// ReviewService owns the review store: the one-review-per-(author, product)
// invariant, rating statistics, and owner-only mutation.
type ReviewService struct {
	db *gorm.DB
}

type CreateReviewRequest struct {
	AuthorID  uuid.UUID `json:"author_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Rating    int       `json:"rating" validate:"required,rating"`
	Text      string    `json:"text,omitempty" validate:"max=1000"`
}

type UpdateReviewRequest struct {
	Rating int    `json:"rating" validate:"required,rating"`
	Text   string `json:"text,omitempty" validate:"max=1000"`
}

type ReviewAuthor struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ReviewResponse is the joined shape the frontend consumes: the review plus
// the author display name/email and product name.
type ReviewResponse struct {
	ID          uuid.UUID    `json:"id"`
	Text        string       `json:"text"`
	Rating      int          `json:"rating"`
	Stars       string       `json:"stars"`
	CreatedAt   time.Time    `json:"created_at"`
	ProductID   uuid.UUID    `json:"product_id"`
	ProductName string       `json:"product_name"`
	Author      ReviewAuthor `json:"author"`
}

type ProductReviewsResponse struct {
	Reviews    []ReviewResponse         `json:"reviews"`
	Statistics *models.ReviewStatistics `json:"statistics"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{
		db: db,
	}
}

// ListReviews returns reviews across all products, newest first unless the
// caller asked for another sortable column.
func (s *ReviewService) ListReviews(params utils.PaginationParams) ([]ReviewResponse, int64, error) {
	query := s.db.Model(&models.Review{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	query = query.Preload("Author").Preload("Product")
	query = utils.ApplySort(query, params, []string{"created_at", "rating"})
	query = utils.ApplyPagination(query, params)

	var reviews []models.Review
	if err := query.Find(&reviews).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return s.toResponses(reviews), total, nil
}

func (s *ReviewService) GetReview(id uuid.UUID) (*ReviewResponse, error) {
	var review models.Review
	if err := s.db.Preload("Author").Preload("Product").
		First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("review not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	resp := s.toResponse(&review)
	return &resp, nil
}

// GetProductReviews returns a product's reviews, newest first, together with
// the statistics derived from that filtered list. A product with no reviews
// yields zeroed statistics with the full 1..5 distribution.
func (s *ReviewService) GetProductReviews(productID uuid.UUID) (*ProductReviewsResponse, error) {
	var reviews []models.Review
	if err := s.db.Preload("Author").Preload("Product").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch product reviews: %w", err)
	}

	responses := s.toResponses(reviews)

	return &ProductReviewsResponse{
		Reviews:    responses,
		Statistics: ComputeStatistics(responses),
	}, nil
}

func (s *ReviewService) GetUserReviews(authorID uuid.UUID) ([]ReviewResponse, error) {
	var reviews []models.Review
	if err := s.db.Preload("Author").Preload("Product").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch user reviews: %w", err)
	}

	return s.toResponses(reviews), nil
}

// CreateReview checks, in order: request shape and rating range, author
// existence, product existence, then the duplicate pre-check. The unique
// (author_id, product_id) index remains the authoritative guard, so a create
// losing a race still comes back as the duplicate error.
func (s *ReviewService) CreateReview(req *CreateReviewRequest) (*ReviewResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	review := &models.Review{
		AuthorID:  req.AuthorID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Text:      req.Text,
	}

	// Checks and insert share one transaction
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		// Verify the author exists
		var author models.User
		if err := tx.First(&author, "id = ?", req.AuthorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("author not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		// Verify the product exists
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		// Pre-check for an existing review; gives a clean error outside of races
		var existing models.Review
		err := tx.Where("author_id = ? AND product_id = ?", req.AuthorID, req.ProductID).
			First(&existing).Error
		if err == nil {
			return errors.New("you have already reviewed this product")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Create(review).Error; err != nil {
			// Two concurrent creates for the same pair: the unique index wins
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errors.New("you have already reviewed this product")
			}
			return fmt.Errorf("failed to create review: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Load relationships for the response
	if err := s.db.Preload("Author").Preload("Product").
		First(review, "id = ?", review.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to load created review: %w", err)
	}

	resp := s.toResponse(review)
	return &resp, nil
}

// UpdateReview mutates rating and text only; id, author, product, and
// created_at stay untouched. Only the author may update.
func (s *ReviewService) UpdateReview(id uuid.UUID, callerID uuid.UUID, req *UpdateReviewRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("review not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if review.AuthorID != callerID {
		return errors.New("unauthorized to update this review")
	}

	updates := map[string]interface{}{
		"rating": req.Rating,
		"text":   req.Text,
	}

	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}

	return nil
}

// DeleteReview permanently removes a review. Only the author may delete.
func (s *ReviewService) DeleteReview(id uuid.UUID, callerID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("review not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if review.AuthorID != callerID {
		return errors.New("unauthorized to delete this review")
	}

	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	return nil
}

// ComputeStatistics aggregates a list of reviews: count, average rounded to
// one decimal (half away from zero), and the per-rating distribution with
// all five keys always present.
func ComputeStatistics(reviews []ReviewResponse) *models.ReviewStatistics {
	distribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}

	if len(reviews) == 0 {
		return &models.ReviewStatistics{
			TotalReviews:       0,
			AverageRating:      0,
			RatingDistribution: distribution,
		}
	}

	sum := 0
	for _, review := range reviews {
		distribution[review.Rating]++
		sum += review.Rating
	}

	average := float64(sum) / float64(len(reviews))

	return &models.ReviewStatistics{
		TotalReviews:       len(reviews),
		AverageRating:      math.Round(average*10) / 10,
		RatingDistribution: distribution,
	}
}

// Helper methods

func (s *ReviewService) toResponse(review *models.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID,
		Text:        review.Text,
		Rating:      review.Rating,
		Stars:       models.RenderStars(review.Rating),
		CreatedAt:   review.CreatedAt,
		ProductID:   review.ProductID,
		ProductName: review.Product.Name,
		Author: ReviewAuthor{
			ID:    review.Author.ID,
			Name:  review.Author.DisplayName(),
			Email: review.Author.Email,
		},
	}
}

func (s *ReviewService) toResponses(reviews []models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, s.toResponse(&reviews[i]))
	}
	return responses
}
