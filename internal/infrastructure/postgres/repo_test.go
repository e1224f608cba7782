package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/flexibill/internal/domain"
	"github.com/flexibill/internal/infrastructure/postgres"
	"github.com/flexibill/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLicense(userID uint, key string) *domain.License {
	by := "admin"
	return &domain.License{
		Key:       key,
		ValidTill: time.Now().Add(365 * 24 * time.Hour).UTC(),
		UserID:    userID,
		IssuedBy:  "admin",
		IsActive:  true,
		Audit:     domain.Audit{CreatedBy: &by},
	}
}

func TestUserRepo_Create(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepo(testDB.DB)
	ctx := context.Background()

	tests := []struct {
		name    string
		user    *domain.User
		wantErr bool
	}{
		{
			name:    "successful creation",
			user:    &domain.User{Name: "Asha", MobileNumber: "9876543210", DeviceID: "d1"},
			wantErr: false,
		},
		{
			name:    "duplicate mobile number",
			user:    &domain.User{Name: "Other", MobileNumber: "9876543210", DeviceID: "d2"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(ctx, tt.user)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotZero(t, tt.user.ID)
			}
		})
	}
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepo(testDB.DB)
	ctx := context.Background()

	testutil.NewUserBuilder().WithEmail("a@b.com").Build(t, testDB.DB)
	email := "a@b.com"
	err := repo.Create(ctx, &domain.User{Name: "x", MobileNumber: "1", DeviceID: "d", Email: &email})
	assert.Error(t, err)

	// Email is optional; many users may leave it empty.
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "y", MobileNumber: "2", DeviceID: "d"}))
	require.NoError(t, repo.Create(ctx, &domain.User{Name: "z", MobileNumber: "3", DeviceID: "d"}))
}

func TestUserRepo_GetByMobileNumber(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepo(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().WithMobileNumber("9000000001").Build(t, testDB.DB)

	tests := []struct {
		name    string
		mobile  string
		wantErr error
	}{
		{name: "existing user", mobile: "9000000001"},
		{name: "non-existent user", mobile: "nope", wantErr: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.GetByMobileNumber(ctx, tt.mobile)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
			assert.Equal(t, user.Name, got.Name)
		})
	}
}

func TestUserRepo_Get(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewUserRepo(testDB.DB)
	ctx := context.Background()

	user := testutil.NewUserBuilder().Build(t, testDB.DB)

	got, err := repo.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.MobileNumber, got.MobileNumber)

	_, err = repo.Get(ctx, user.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserRepo_DeleteRestrictedByLicenses(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	users := postgres.NewUserRepo(testDB.DB)
	licenses := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, licenses.Create(ctx, newLicense(owner.ID, "KEY-1")))

	assert.Error(t, users.Delete(ctx, owner.ID))

	loner := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, users.Delete(ctx, loner.ID))
	assert.ErrorIs(t, users.Delete(ctx, loner.ID), domain.ErrNotFound)
}

func TestLicenseRepo_CreateRequiresExistingUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)

	err := repo.Create(context.Background(), newLicense(424242, "ORPHAN"))
	assert.Error(t, err)
}

func TestLicenseRepo_CreateSetsAuditTimes(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	l := newLicense(owner.ID, "KEY-A")
	require.NoError(t, repo.Create(ctx, l))

	got, err := repo.GetByKey(ctx, "KEY-A")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.False(t, got.CreatedTime.IsZero())
	assert.False(t, got.LastUpdatedTime.IsZero())
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, "admin", *got.CreatedBy)
	assert.Nil(t, got.LastUpdatedBy)
}

func TestLicenseRepo_DuplicateKey(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, repo.Create(ctx, newLicense(owner.ID, "DUP")))
	assert.Error(t, repo.Create(ctx, newLicense(owner.ID, "DUP")))
}

func TestLicenseRepo_ListByUser(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()

	a := testutil.NewUserBuilder().Build(t, testDB.DB)
	b := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, repo.Create(ctx, newLicense(a.ID, "A-1")))
	require.NoError(t, repo.Create(ctx, newLicense(a.ID, "A-2")))
	require.NoError(t, repo.Create(ctx, newLicense(b.ID, "B-1")))

	got, err := repo.ListByUser(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A-2", got[0].Key)
	assert.Equal(t, "A-1", got[1].Key)

	none, err := repo.ListByUser(ctx, b.ID+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestLicenseRepo_Deactivate(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()

	owner := testutil.NewUserBuilder().Build(t, testDB.DB)
	require.NoError(t, repo.Create(ctx, newLicense(owner.ID, "KEY-D")))
	before, err := repo.GetByKey(ctx, "KEY-D")
	require.NoError(t, err)

	require.NoError(t, repo.Deactivate(ctx, "KEY-D", "support"))

	after, err := repo.GetByKey(ctx, "KEY-D")
	require.NoError(t, err)
	assert.False(t, after.IsActive)
	require.NotNil(t, after.LastUpdatedBy)
	assert.Equal(t, "support", *after.LastUpdatedBy)
	assert.False(t, after.LastUpdatedTime.Before(before.LastUpdatedTime))

	assert.ErrorIs(t, repo.Deactivate(ctx, "missing", "support"), domain.ErrNotFound)
}

func TestLicenseRepo_CreateAssignsKey(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repo := postgres.NewLicenseRepo(testDB.DB)
	ctx := context.Background()
	u := testutil.NewUserBuilder().Build(t, testDB.DB)

	a := newLicense(u.ID, "")
	b := newLicense(u.ID, "")
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.Len(t, a.Key, 26)
	assert.NotEqual(t, a.Key, b.Key)
	got, err := repo.GetByKey(ctx, a.Key)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
}
