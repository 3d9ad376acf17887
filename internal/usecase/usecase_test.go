package usecase

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/BitSparkCode/online-shop-api/internal/auth"
	"github.com/BitSparkCode/online-shop-api/internal/domain"
	"github.com/BitSparkCode/online-shop-api/internal/repository/memory"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fixture struct {
	store  *memory.Store
	tokens *auth.TokenService
	auth   AuthUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := quietLogger()
	store := memory.NewStore(logger)
	tokens := auth.NewTokenService("test-secret")
	return &fixture{
		store:  store,
		tokens: tokens,
		auth:   NewAuthUseCase(store.Users(), auth.NewPasswordHasher(bcrypt.MinCost), tokens, logger),
	}
}

func TestRegister_DefaultsRoleAndHashesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, "alice", "pw", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "pw", user.PasswordHash)

	stored, err := f.store.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pw")))
}

func TestRegister_PasswordTooLong(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), "bob", string(make([]byte, 100)), "")
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, "alice", "pw", "")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		token, err := f.auth.Login(ctx, "alice", "pw")
		require.NoError(t, err)

		identity, err := f.tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, domain.Identity{Username: "alice", Role: domain.RoleUser}, identity)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "alice", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "nobody", "pw")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestLogin_DuplicateUsernameUsesOldestRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, "dup", "first", "")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "dup", "second", domain.RoleAdmin)
	require.NoError(t, err)

	token, err := f.auth.Login(ctx, "dup", "first")
	require.NoError(t, err)
	identity, err := f.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, identity.Role)

	_, err = f.auth.Login(ctx, "dup", "second")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestResetPassword_UpdatesEveryMatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.auth.Register(ctx, "dup", "a", "")
	require.NoError(t, err)
	_, err = f.auth.Register(ctx, "dup", "b", "")
	require.NoError(t, err)

	n, err := f.auth.ResetPassword(ctx, "dup", "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = f.auth.Login(ctx, "dup", "fresh")
	assert.NoError(t, err)

	n, err = f.auth.ResetPassword(ctx, "ghost", "fresh")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.auth.SeedAdmin(ctx, "admin"))
	require.NoError(t, f.auth.SeedAdmin(ctx, "other"))

	admin, err := f.store.Users().GetUserByUsername(ctx, domain.AdminUsername)
	require.NoError(t, err)
	assert.Equal(t, int64(1), admin.ID)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	n, err := f.store.Users().UpdatePassword(ctx, domain.AdminUsername, admin.PasswordHash)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n, "second seed must not add a row")

	_, err = f.auth.Login(ctx, domain.AdminUsername, "admin")
	assert.NoError(t, err)
}

type brokenUsers struct{}

var errStore = errors.New("connection refused")

func (brokenUsers) CreateUser(context.Context, *domain.User) (*domain.User, error) {
	return nil, errStore
}

func (brokenUsers) GetUserByUsername(context.Context, string) (*domain.User, error) {
	return nil, errStore
}

func (brokenUsers) UpdatePassword(context.Context, string, string) (int64, error) {
	return 0, errStore
}

func TestAuth_StoreErrorsPropagate(t *testing.T) {
	uc := NewAuthUseCase(brokenUsers{}, auth.NewPasswordHasher(bcrypt.MinCost), auth.NewTokenService("s"), quietLogger())
	ctx := context.Background()

	_, err := uc.Register(ctx, "a", "b", "")
	assert.ErrorIs(t, err, errStore)

	_, err = uc.Login(ctx, "a", "b")
	assert.ErrorIs(t, err, errStore)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.ResetPassword(ctx, "a", "b")
	assert.ErrorIs(t, err, errStore)

	assert.ErrorIs(t, uc.SeedAdmin(ctx, "admin"), errStore)
}

func TestCategoryUseCase(t *testing.T) {
	store := memory.NewStore(quietLogger())
	uc := NewCategoryUseCase(store.Categories(), quietLogger())
	ctx := context.Background()

	list, err := uc.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	created, err := uc.CreateCategory(ctx, &domain.Category{Name: "Books"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	updated, err := uc.UpdateCategory(ctx, &domain.Category{ID: created.ID, Name: "Comics"})
	require.NoError(t, err)
	assert.Equal(t, "Comics", updated.Name)

	got, err := uc.GetCategoryByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Comics", got.Name)

	ghost, err := uc.UpdateCategory(ctx, &domain.Category{ID: 99, Name: "Ghost"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), ghost.ID)

	require.NoError(t, uc.DeleteCategory(ctx, created.ID))
	require.NoError(t, uc.DeleteCategory(ctx, created.ID))

	_, err = uc.GetCategoryByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_UnenforcedCategory(t *testing.T) {
	store := memory.NewStore(quietLogger())
	categories := NewCategoryUseCase(store.Categories(), quietLogger())
	products := NewProductUseCase(store.Products(), quietLogger())
	ctx := context.Background()

	orphan, err := products.CreateProduct(ctx, &domain.Product{Name: "Pen", Price: 1.5, CategoryID: 999})
	require.NoError(t, err)
	assert.Equal(t, int64(999), orphan.CategoryID)

	cat, err := categories.CreateCategory(ctx, &domain.Category{Name: "Office"})
	require.NoError(t, err)
	p, err := products.CreateProduct(ctx, &domain.Product{Name: "Stapler", Price: 9, CategoryID: cat.ID})
	require.NoError(t, err)

	require.NoError(t, categories.DeleteCategory(ctx, cat.ID))

	got, err := products.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID)

	list, err := products.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, orphan.ID, list[0].ID)

	_, err = products.UpdateProduct(ctx, &domain.Product{ID: 42, Name: "x"})
	require.NoError(t, err)
	require.NoError(t, products.DeleteProduct(ctx, 42))
}
