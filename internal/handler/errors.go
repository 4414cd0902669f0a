package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain
// consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgUnauthorized          = "Authentication required"

	// Parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidLimit      = "Invalid limit parameter"
	ErrMsgInvalidOffset     = "Invalid offset parameter"
	ErrMsgInvalidBetID      = "Invalid bet ID"
	ErrMsgInvalidRoundID    = "Invalid round ID"
)

// Success messages for API responses
const (
	MsgDepositRecorded    = "Deposit recorded"
	MsgWithdrawalRecorded = "Withdrawal recorded"
	MsgConversionDone     = "Conversion completed"
	MsgBetPlaced          = "Bet placed"
	MsgBetResolved        = "Bet resolved"
)
