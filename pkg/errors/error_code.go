package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Configuration errors (100-199)
	ErrCodeConfigurationError ErrorCode = 100
	ErrCodeInvalidParameter   ErrorCode = 101
	ErrCodeInvalidPeriod      ErrorCode = 102
	ErrCodeInvalidMultiplier  ErrorCode = 103
	ErrCodeInvalidThreshold   ErrorCode = 104
	ErrCodeInvalidWarmup      ErrorCode = 105
	ErrCodeInvalidVersion     ErrorCode = 106
	ErrCodeMissingParameter   ErrorCode = 107

	// Data errors (200-299)
	ErrCodeDataError             ErrorCode = 200
	ErrCodeDataNotFound          ErrorCode = 201
	ErrCodeDataSourceUnavailable ErrorCode = 202
	ErrCodeQueryFailed           ErrorCode = 203
	ErrCodeMisalignedRows        ErrorCode = 204
	ErrCodeUnorderedTimestamps   ErrorCode = 205

	// Indicator errors (300-399)
	ErrCodeIndicatorNotFound      ErrorCode = 300
	ErrCodeIndicatorAlreadyExists ErrorCode = 301
	ErrCodeIndicatorCalculation   ErrorCode = 302

	// Signal engine errors (400-499)
	ErrCodeSimulationFailed ErrorCode = 400

	// Validation errors (500-599)
	ErrCodeLookaheadViolation ErrorCode = 500

	// Backtest errors (600-699)
	ErrCodeBacktestConfigError  ErrorCode = 600
	ErrCodeBacktestNoSignals    ErrorCode = 601
	ErrCodeBacktestWriteFailed  ErrorCode = 602
	ErrCodeBacktestInvalidTrade ErrorCode = 603

	// Output errors (700-799)
	ErrCodeWriteFailed ErrorCode = 700
)
