package weather

import "errors"

// Every failure in the record lifecycle maps onto one of these sentinels so
// the API layer can pick a status code with errors.Is instead of string
// matching. Collaborators wrap them with fmt.Errorf("...: %w", ...).
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDateOrder  = errors.New("end date must be after start date")
	ErrRangeTooLarge     = errors.New("date range cannot exceed 5 days")

	ErrLocationNotFound = errors.New("location not found")
	ErrUpstream         = errors.New("weather provider request failed")

	ErrRecordNotFound   = errors.New("record not found")
	ErrStoreUnavailable = errors.New("record store unavailable")
)
