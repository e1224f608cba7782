// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/infrastructure/postgres"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB manages a testcontainers PostgreSQL instance.
type TestDB struct {
	Container testcontainers.Container
	DB        *gorm.DB
	DSN       string
}

// NewTestDB starts a PostgreSQL container and returns a migrated connection.
// The test is skipped when no container runtime is reachable.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	container, err := tcPostgres.Run(ctx,
		"postgres:15-alpine",
		tcPostgres.WithDatabase("test_flexibill"),
		tcPostgres.WithUsername("test"),
		tcPostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	if err := postgres.Migrate(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{Container: container, DB: db, DSN: dsn}
}

var userSeq atomic.Int64

// UserBuilder creates test users with a builder pattern.
type UserBuilder struct {
	name         string
	mobileNumber string
	deviceID     string
	email        *string
}

// NewUserBuilder creates a UserBuilder with unique default values.
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		name:         "Test User",
		mobileNumber: fmt.Sprintf("9%09d", userSeq.Add(1)),
		deviceID:     "device-1",
	}
}

func (b *UserBuilder) WithMobileNumber(m string) *UserBuilder {
	b.mobileNumber = m
	return b
}

func (b *UserBuilder) WithEmail(e string) *UserBuilder {
	b.email = &e
	return b
}

// Build inserts the user and returns it.
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:         b.name,
		MobileNumber: b.mobileNumber,
		DeviceID:     b.deviceID,
		Email:        b.email,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}
