package identity

import "context"

// Token is the subset of an identity-provider token the auth bridge cares
// about: the provider's subject id and the verified phone number.
type Token struct {
	UID         string
	PhoneNumber string
}

// Verifier checks an identity proof token issued by the external provider.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*Token, error)
}
