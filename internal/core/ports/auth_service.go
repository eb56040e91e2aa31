package ports

import "context"

// SignupResult echoes back the registered identity.
type SignupResult struct {
	Username string
	Email    string
}

// AuthService covers registration and token exchange.
//
// Signup always attempts confirmation-code delivery when an account with the
// exact (username, email) pair exists, even though the duplicate registration
// itself still fails with domain.ErrUserExists. Existing users re-request
// their code this way.
type AuthService interface {
	Signup(ctx context.Context, username, email string) (*SignupResult, error)
	// ObtainToken exchanges a confirmation code for a signed access token.
	ObtainToken(ctx context.Context, username, code string) (string, error)
}
