package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeSerializationFailure signals a serializable transaction conflict
	PgErrorCodeSerializationFailure = "40001"
	// PgErrorCodeDeadlockDetected signals the server broke a lock cycle
	PgErrorCodeDeadlockDetected = "40P01"
	// PgErrorCodeCheckViolation signals a CHECK constraint rejection, e.g. a
	// balance driven below zero
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginLedgerTransaction = "failed to begin ledger transaction"
	ErrMsgFailedToCommitTransaction      = "failed to commit transaction"
)

// Error Messages - Wallet Operations
const (
	ErrMsgFailedToInsertWallet   = "failed to insert wallet"
	ErrMsgFailedToUpdateWallet   = "failed to update wallet balances"
	ErrMsgFailedToGetWallet      = "failed to get wallet"
	ErrMsgFailedToListWallets    = "failed to list wallets"
	ErrMsgFailedToInsertJournal  = "failed to append transaction"
	ErrMsgFailedToListJournal    = "failed to list transactions"
)

// Error Messages - Round Operations
const (
	ErrMsgFailedToInsertRound     = "failed to insert round"
	ErrMsgFailedToGetRound        = "failed to get round"
	ErrMsgFailedToUpdateRound     = "failed to update round state"
	ErrMsgFailedToSaveOutcome     = "failed to save round outcome"
	ErrMsgFailedToListRounds      = "failed to list rounds"
	ErrMsgFailedToGetRoundStats   = "failed to get round stats"
)

// Error Messages - Bet Operations
const (
	ErrMsgFailedToInsertBet = "failed to insert bet"
	ErrMsgFailedToGetBet    = "failed to get bet"
	ErrMsgFailedToSettleBet = "failed to settle bet"
	ErrMsgFailedToListBets  = "failed to list bets"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToInsertUser        = "failed to insert user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToGetUserByUsername = "failed to get user by username"
)
