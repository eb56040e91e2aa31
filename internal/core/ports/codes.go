package ports

import "context"

// CodeStore holds one-time confirmation codes between signup and token
// exchange. Codes are stored hashed; Verify consumes the code on success.
type CodeStore interface {
	// Issue generates, stores and returns a fresh plaintext code for the
	// user, replacing any previous one.
	Issue(ctx context.Context, username string) (string, error)
	// Verify checks code against the stored value. A match deletes the code
	// and returns nil; a mismatch or missing/expired code returns
	// domain.ErrInvalidCode.
	Verify(ctx context.Context, username, code string) error
}

// CodeSender delivers a confirmation code to the user. The transport is a
// collaborator concern; implementations may log, queue or mail the code.
type CodeSender interface {
	Send(ctx context.Context, email, username, code string) error
}
