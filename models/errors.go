package models

// RuleError is a business rule violation. Its reason is meant for the caller,
// unlike store or transport failures.
type RuleError struct {
	Reason string
}

func (e *RuleError) Error() string { return e.Reason }

var (
	ErrAccessDenied       = &RuleError{"access denied"}
	ErrSelfRoleChange     = &RuleError{"you cannot change role for yourself"}
	ErrUsernameTaken      = &RuleError{"username is already taken"}
	ErrEmptyCart          = &RuleError{"user cart is empty"}
	ErrForeignAddress     = &RuleError{"address does not belong to the user"}
	ErrAlreadyInCart      = &RuleError{"food is already in the cart"}
	ErrAlreadyFavorite    = &RuleError{"food is already in favorites"}
	ErrInvalidCount       = &RuleError{"count must be positive"}
	ErrInvalidPrice       = &RuleError{"price must not be negative"}
	ErrEmptyFeedback      = &RuleError{"either rating or comment must be provided"}
	ErrInvalidRating      = &RuleError{"rating must be between 0 and 5"}
	ErrFeedbackNotAllowed = &RuleError{"there is no completed order with such ID that owned by the user"}
	ErrFeedbackExists     = &RuleError{"feedback for the order is already submitted"}
	ErrPreviewTooLarge    = &RuleError{"preview image is too large"}
)
