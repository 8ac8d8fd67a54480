package service

import "errors"

var (
	ErrRequirementNotFound      = errors.New("requirement not found")
	ErrBidNotFound              = errors.New("bid not found")
	ErrBidItemNotFound          = errors.New("bid item not found")
	ErrCommissionRecordNotFound = errors.New("commission record is not provisioned for the bid")

	ErrNoItems              = errors.New("at least one line item is required")
	ErrEmptyItemName        = errors.New("item name is required")
	ErrEmptyUnit            = errors.New("unit is required")
	ErrNonPositiveQuantity  = errors.New("quantity must be greater than zero")
	ErrNegativeUnitPrice    = errors.New("unit price can't be negative")
	ErrItemNotInRequirement = errors.New("bid line references an item outside the requirement")
	ErrDuplicateBidItem     = errors.New("requirement item is quoted more than once in the bid")

	ErrRequirementNotOpen        = errors.New("requirement is not open for bidding")
	ErrRequirementDeadlinePassed = errors.New("requirement deadline has passed")
	ErrBidNotPending             = errors.New("bid is not pending")
	ErrBidNotAccepted            = errors.New("bid is not accepted")
	ErrInvalidStatusTransition   = errors.New("status transition is not allowed")

	ErrInvalidDispatchQuantity      = errors.New("dispatched quantity must be non-negative with at most two decimal places")
	ErrDispatchExceedsCommitted     = errors.New("dispatched quantity exceeds committed quantity")
	ErrSingleDispatchOnMultiItemBid = errors.New("single-total dispatch requires a bid with exactly one item")

	// ErrDispatchConflict means another writer updated the bid between read
	// and write; the whole dispatch is safe to retry.
	ErrDispatchConflict = errors.New("bid was modified concurrently, retry the dispatch")
)
