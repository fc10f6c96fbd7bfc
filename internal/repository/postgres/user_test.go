//go:build integration

package postgres

import (
	"context"
	"testing"

	"github.com/comida-compartida/donation-service/internal/apperrors"
	"github.com/comida-compartida/donation-service/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	created := seedUser(t, "donor-1", domain.RoleDonor)

	got, err := repo.GetUserByID(ctx, testDB, "donor-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Email, got.Email)
	assert.Equal(t, domain.RoleDonor, got.Role)
	assert.Equal(t, 5.0, got.Rating)
	assert.Zero(t, got.TotalDonations)

	_, err = repo.GetUserByID(ctx, testDB, "missing-user")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	first := seedUser(t, "donor-1", domain.RoleDonor)

	duplicate := *first
	duplicate.ID = "donor-2"

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.CreateUser(ctx, tx, &duplicate)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUserRepository_SetRole(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	seedUser(t, "u1", domain.RoleBeneficiary)

	require.NoError(t, repo.SetRole(ctx, "u1", domain.RoleDonor))

	got, err := repo.GetUserByID(ctx, testDB, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleDonor, got.Role)

	err = repo.SetRole(ctx, "missing-user", domain.RoleDonor)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUserRepository_IncrementTotalDonations(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	truncateTables(t, testDB)
	repo := NewUserRepository(testDB, logger)
	ctx := context.Background()

	seedUser(t, "donor-1", domain.RoleDonor)

	withTx(t, func(tx *sqlx.Tx) error {
		return repo.IncrementTotalDonations(ctx, tx, "donor-1")
	})
	withTx(t, func(tx *sqlx.Tx) error {
		return repo.IncrementTotalDonations(ctx, tx, "donor-1")
	})

	got, err := repo.GetUserByID(ctx, testDB, "donor-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalDonations)

	tx, err := testDB.Beginx()
	require.NoError(t, err)
	defer tx.Rollback()

	err = repo.IncrementTotalDonations(ctx, tx, "missing-user")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
