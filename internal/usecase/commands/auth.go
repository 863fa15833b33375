package commands

import (
	"context"

	"villabook/internal/domain/guest"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"
	"villabook/internal/pkg/password"
)

var ErrInvalidCredentials = errs.New("invalid credentials")

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type AuthCommands interface {
	Login(ctx context.Context, email, pass string) (*LoginResult, error)
}

type authCommandsImpl struct {
	operators OperatorReadStore
	tokens    TokenIssuer
}

func NewAuthCommands(operators OperatorReadStore, tokens TokenIssuer) AuthCommands {
	return &authCommandsImpl{operators: operators, tokens: tokens}
}

func (c *authCommandsImpl) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	op, err := c.operators.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same error as a wrong password so the response does not leak
			// which emails exist.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperation)
	}

	if err := password.ComparePassword(op.PasswordHash, pass); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := guest.NewRole(op.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCredentials)
	}

	token, err := c.tokens.GenerateToken(op.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, Role: op.Role}, nil
}
