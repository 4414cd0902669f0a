package user

// WelcomeDepositUSD is the demo balance credited to every new account
const WelcomeDepositUSD = 10000

// BcryptCost uses the library default; raise it only with a migration plan
// for existing hashes
const BcryptCost = 10

// Credential bounds enforced at registration
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
)
