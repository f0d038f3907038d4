// ABOUTME: Identity projection decoded from the current access token
// ABOUTME: Claims are read without signature verification; the server enforces validity

package session

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned when an identity is requested with no token held.
var ErrNoToken = errors.New("no access token held")

// Identity is the read-only view of the logged-in user, recomputed on
// demand from the access token. It is never stored separately, so role
// changes take effect on the next token.
type Identity struct {
	ID          int64
	Username    string
	Role        string
	IsSuperuser bool
	IsStaff     bool
	BranchID    *int64
	BranchName  string
}

// accessClaims mirrors the backend's token payload.
type accessClaims struct {
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	UserType    string `json:"user_type"`
	IsSuperuser bool   `json:"is_superuser"`
	IsStaff     bool   `json:"is_staff"`
	BranchID    *int64 `json:"branch_id,omitempty"`
	BranchName  string `json:"branch_name,omitempty"`
	jwt.RegisteredClaims
}

// Identity decodes the current token into an Identity view.
func (s *Store) Identity() (*Identity, error) {
	token := s.AccessToken()
	if token == "" {
		return nil, ErrNoToken
	}

	claims, err := decodeClaims(token)
	if err != nil {
		return nil, err
	}

	role := claims.UserType
	if claims.IsSuperuser {
		role = "SUPER_ADMIN"
	}

	return &Identity{
		ID:          claims.UserID,
		Username:    claims.Username,
		Role:        role,
		IsSuperuser: claims.IsSuperuser,
		IsStaff:     claims.IsStaff,
		BranchID:    claims.BranchID,
		BranchName:  claims.BranchName,
	}, nil
}

// LoggedIn reports whether a token is held and its expiry is in the future.
func (s *Store) LoggedIn() bool {
	token := s.AccessToken()
	if token == "" {
		return false
	}
	claims, err := decodeClaims(token)
	if err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.After(time.Now())
}

// decodeClaims parses the token payload without verifying the signature.
// The console holds no signing key; the backend rejects tampered tokens.
func decodeClaims(token string) (*accessClaims, error) {
	claims := &accessClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return claims, nil
}
