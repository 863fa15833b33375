//go:build unit

package commands_test

import (
	"context"
	"testing"

	"villabook/internal/domain/guest"
	"villabook/internal/infra"
	"villabook/internal/pkg/errs"
	"villabook/internal/pkg/password"
	"villabook/internal/usecase/commands"
	"villabook/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOperators struct {
	byEmail map[string]*queries.OperatorView
}

func (f *fakeOperators) FindByEmail(_ context.Context, email string) (*queries.OperatorView, error) {
	op, ok := f.byEmail[email]
	if !ok {
		return nil, infra.WrapRepoErr("operator not found", errs.New("no rows"), infra.KindNotFound)
	}
	return op, nil
}

type fakeTokenIssuer struct{}

func (f *fakeTokenIssuer) GenerateToken(userID uuid.UUID, role guest.Role) (string, error) {
	return "token-" + role.String(), nil
}

func TestLogin(t *testing.T) {
	hash, err := password.HashPassword("secret123")
	require.NoError(t, err)

	operators := &fakeOperators{byEmail: map[string]*queries.OperatorView{
		"admin@villabook.local": {
			ID:           uuid.New(),
			Email:        "admin@villabook.local",
			Role:         "admin",
			PasswordHash: hash,
		},
	}}
	cmd := commands.NewAuthCommands(operators, &fakeTokenIssuer{})

	t.Run("valid credentials issue a token", func(t *testing.T) {
		result, err := cmd.Login(context.Background(), "admin@villabook.local", "secret123")
		require.NoError(t, err)
		assert.Equal(t, "token-admin", result.Token)
		assert.Equal(t, "admin", result.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := cmd.Login(context.Background(), "admin@villabook.local", "wrong")
		assertErrIs(t, err, commands.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to the same error", func(t *testing.T) {
		_, err := cmd.Login(context.Background(), "nobody@villabook.local", "secret123")
		assertErrIs(t, err, commands.ErrInvalidCredentials)
	})
}
