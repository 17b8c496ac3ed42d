package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostelmate/marketplace-api/internal/email"
	"github.com/hostelmate/marketplace-api/internal/kvstore"
	"github.com/hostelmate/marketplace-api/internal/model"
	"github.com/hostelmate/marketplace-api/internal/store"
	pkgauth "github.com/hostelmate/marketplace-api/pkg/auth"
	"github.com/hostelmate/marketplace-api/pkg/errors"
	"github.com/hostelmate/marketplace-api/pkg/logger"
	"github.com/hostelmate/marketplace-api/pkg/security"
)

func newTestService(t *testing.T) (*Service, *store.Factory, context.Context) {
	t.Helper()
	kv := kvstore.NewMemory()
	log := logger.Nop()
	stores := store.NewFactory(kv, log)
	svc := NewService(
		kv,
		stores,
		security.NewBcryptHasher(4),
		pkgauth.NewJWTService("test-secret", 1),
		email.NewService(email.Config{Enabled: false}),
		log,
	)
	return svc, stores, context.Background()
}

func TestRegisterCreatesAggregateAndToken(t *testing.T) {
	svc, stores, ctx := newTestService(t)

	aggregate, token, err := svc.Register(ctx, RegisterInput{
		Email:    "Ana@Example.com",
		Password: "correct-horse",
		Name:     "Ana Silva",
		Type:     model.UserTypeVolunteer,
		Country:  "Portugal",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, aggregate.Volunteer)
	assert.Nil(t, aggregate.Hostel)
	assert.Equal(t, "ana@example.com", aggregate.Volunteer.Email)

	stored, err := stores.ForUser(aggregate.ID).Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, aggregate.ID, stored.ID)
	assert.NotNil(t, stored.SavedItems)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, ctx := newTestService(t)

	in := RegisterInput{
		Email:    "tom@example.com",
		Password: "long-enough",
		Name:     "Tom",
		Type:     model.UserTypeHostel,
	}
	_, _, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, in)
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegisterRejectsUnknownType(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, _, err := svc.Register(ctx, RegisterInput{
		Email:    "x@example.com",
		Password: "long-enough",
		Name:     "X",
		Type:     model.UserType("admin"),
	})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLogin(t *testing.T) {
	svc, _, ctx := newTestService(t)

	registered, _, err := svc.Register(ctx, RegisterInput{
		Email:    "sofia@example.com",
		Password: "segretissimo",
		Name:     "Sofia",
		Type:     model.UserTypeHostel,
	})
	require.NoError(t, err)

	aggregate, token, err := svc.Login(ctx, "SOFIA@example.com", "segretissimo")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, aggregate.ID)

	_, _, err = svc.Login(ctx, "sofia@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	require.Error(t, err)
	assert.True(t, errors.IsUnauthorized(err))
}
