package services

import (
	"context"

	"github.com/dmitrijs2005/userhub/internal/common"
)

// TokenIssuer is satisfied by auth.TokenManager.
type TokenIssuer interface {
	Issue(userID, username string) (string, error)
}

// AuthService verifies credentials and issues access tokens.
type AuthService struct {
	users  *UserService
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewAuthService(users *UserService, hasher PasswordHasher, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// SignIn returns an access token for valid credentials. An unknown username
// and a wrong password both yield the same common.ErrInvalidCredentials.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (string, error) {
	user, ok, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrInvalidCredentials
	}

	match, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return "", err
	}
	if !match {
		return "", common.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.UserName)
	if err != nil {
		return "", err
	}
	return token, nil
}
