// internal/handlers/review.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hydrolink/hydrolink-backend/internal/i18n"
	"github.com/hydrolink/hydrolink-backend/internal/models"
	"github.com/hydrolink/hydrolink-backend/internal/services"
	"github.com/hydrolink/hydrolink-backend/internal/utils"
)

type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GET /reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	reviews, total, err := h.reviewService.ListReviews(params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(reviews, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /reviews/:id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	review, err := h.reviewService.GetReview(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"review": review,
	})
}

// GET /reviews/product/:productId
func (h *ReviewHandler) GetProductReviews(c *gin.Context) {
	idStr := c.Param("productId")
	productID, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID", nil)
		return
	}

	result, err := h.reviewService.GetProductReviews(productID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews":    result.Reviews,
		"statistics": result.Statistics,
	})
}

// GET /reviews/user/:userId
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	idStr := c.Param("userId")
	userID, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	callerIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	// Callers may only list their own reviews unless they are admins
	role, _ := utils.GetUserRoleFromContext(c)
	if callerIDStr != userID.String() && role != string(models.UserRoleAdmin) {
		utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyAccessDenied))
		return
	}

	reviews, err := h.reviewService.GetUserReviews(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
	})
}

// POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	review, err := h.reviewService.CreateReview(&req)
	if err != nil {
		if strings.Contains(err.Error(), "already reviewed") {
			utils.ConflictResponse(c, i18n.T(lang, i18n.KeyReviewDuplicate))
			return
		}
		if strings.Contains(err.Error(), "author not found") {
			utils.NotFoundResponse(c, "user")
			return
		}
		if strings.Contains(err.Error(), "product not found") {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReviewCreated),
		"review":  review,
	})
}

// PUT /reviews/:id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var req services.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if err := h.reviewService.UpdateReview(id, callerID, &req); err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyReviewNotOwner))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.NoContentResponse(c)
}

// DELETE /reviews/:id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid review ID", nil)
		return
	}

	callerID, ok := callerUUID(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(id, callerID); err != nil {
		if strings.Contains(err.Error(), "unauthorized") {
			utils.ForbiddenResponse(c, i18n.T(lang, i18n.KeyReviewNotOwner))
			return
		}
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "review")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.NoContentResponse(c)
}

// callerUUID resolves the authenticated caller id or writes the error
// response itself.
func callerUUID(c *gin.Context) (uuid.UUID, bool) {
	callerIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	callerID, err := uuid.Parse(callerIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return uuid.Nil, false
	}

	return callerID, true
}
