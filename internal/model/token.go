package model

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	Issue(principal Principal) (string, error)
	Verify(token string) (Principal, error)
}
