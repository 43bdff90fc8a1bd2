package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/fighters-hub/internal/migrations"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

// setupTestDatabase поднимает PostgreSQL в контейнере и применяет миграции.
func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("fighters"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	path, err := filepath.Abs("../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, path))

	return storage
}

// TestDataFactory создает тестовые данные напрямую через репозитории.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// truncate очищает все таблицы между подтестами.
func (f *TestDataFactory) truncate(t *testing.T) {
	t.Helper()
	_, err := f.storage.DB.Exec(`TRUNCATE accounts, news RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
}

// CreateFighter создает аккаунт с профилем.
func (f *TestDataFactory) CreateFighter(t *testing.T, username string, verified bool, weight *int) *models.Account {
	t.Helper()
	ctx := context.Background()

	acc, err := f.storage.CreateAccount(ctx, models.Account{
		Username:     username,
		PhoneNumber:  "+7" + uuid.NewString()[:10],
		PasswordHash: "hashedpassword",
		IsVerified:   verified,
	})
	require.NoError(t, err)

	_, err = f.storage.CreateProfile(ctx, models.Profile{
		AccountUID: acc.UID,
		Username:   username,
		FullName:   username,
		Weight:     weight,
		IsVerified: verified,
	})
	require.NoError(t, err)
	return acc
}

// UpdateProfile меняет профиль бойца через mutate.
func (f *TestDataFactory) UpdateProfile(t *testing.T, uid string, mutate func(p *models.Profile)) {
	t.Helper()
	ctx := context.Background()
	p, err := f.storage.GetProfile(ctx, uid)
	require.NoError(t, err)
	mutate(p)
	require.NoError(t, f.storage.UpdateProfile(ctx, p))
}

func intp(v int) *int { return &v }
