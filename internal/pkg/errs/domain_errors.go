package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Lookup errors
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrBranchNotFound      = errors.New("branch not found")
	ErrAddOnNotFound       = errors.New("add-on not found")
	ErrReservationNotFound = errors.New("reservation not found")

	// Booking errors
	ErrInvalidDateRange      = errors.New("invalid date range")
	ErrVehicleUnavailable    = errors.New("vehicle unavailable")
	ErrVehicleInMaintenance  = errors.New("vehicle under maintenance")
	ErrReservationConflict   = errors.New("reservation date conflict")
	ErrInvalidTotalCost      = errors.New("invalid total cost")
	ErrReservationNotOwned   = errors.New("reservation does not belong to user")
	ErrInvalidStatusChange   = errors.New("invalid reservation status change")
	ErrReservationNotPending = errors.New("reservation is not pending")

	// Payment errors
	ErrPaymentDeclined      = errors.New("payment declined")
	ErrPaymentNotApproved   = errors.New("payment not approved")
	ErrPaymentWindowExpired = errors.New("payment window expired")
	ErrPaymentGateway       = errors.New("payment gateway failure")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
