// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Authentication
	KeyAuthRequired     = "auth.required"
	KeyAuthInvalidToken = "auth.invalid_token"
	KeyAuthTokenExpired = "auth.token_expired"
	KeyAccessDenied     = "auth.access_denied"

	// Reviews
	KeyReviewCreated   = "review.created"
	KeyReviewNotFound  = "review.not_found"
	KeyReviewDuplicate = "review.duplicate"
	KeyReviewNotOwner  = "review.not_owner"

	// Collaborators; the *.not_found keys are also reached through the
	// resource+".not_found" convention in the response helpers
	KeyUserNotFound    = "user.not_found"
	KeyProductNotFound = "product.not_found"

	// Validation
	KeyValidationInvalid = "validation.invalid"
)
