package server

const (
	// Validation (1xxx)
	ErrCodeInvalidArgument = 1000
	ErrCodeInvalidJSON     = 1001
	ErrCodeRequestTooLarge = 1002
	ErrCodeInvalidQuery    = 1003
	ErrCodeInvalidID       = 1004
	ErrCodeInvalidState    = 1005
	ErrCodeInvalidLabel    = 1006
	ErrCodeMissingRequired = 1007
	ErrCodeInvalidColumn   = 1008

	// Domain state (2xxx)
	ErrCodeItemNotFound        = 2001
	ErrCodeContributorNotFound = 2002
	ErrCodeBoardNotFound       = 2003
	ErrCodeTokenNotFound       = 2004
	ErrCodeItemIDExists        = 2101
	ErrCodeConflict            = 2102

	// Auth (3xxx)
	ErrCodeUnauthorized = 3001
	ErrCodeForbidden    = 3002

	// Internal/system (4xxx)
	ErrCodeInternal       = 4001
	ErrCodeStoreFailure   = 4002
	ErrCodeNotImplemented = 4003
)

func defaultErrorCodeByStatus(status int) int {
	switch status {
	case 400:
		return ErrCodeInvalidArgument
	case 401:
		return ErrCodeUnauthorized
	case 403:
		return ErrCodeForbidden
	case 404:
		return ErrCodeItemNotFound
	case 409:
		return ErrCodeConflict
	case 500:
		return ErrCodeInternal
	case 501:
		return ErrCodeNotImplemented
	default:
		return 0
	}
}
