package application

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	myErr "bicocerto/internal/types/errors"
)

func TestApplicationDBRepository_Apply(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationDBRepository(db, zaptest.NewLogger(t).Sugar())

	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id, status FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "status"}).AddRow("owner-1", "open"))

		mock.ExpectQuery(`INSERT INTO application`).
			WithArgs(sqlmock.AnyArg(), "lst-1", "user-2").
			WillReturnRows(sqlmock.NewRows([]string{"id", "listing_id", "applicant_id", "created_at"}).
				AddRow("app-1", "lst-1", "user-2", time.Now()))

		a, err := repo.Apply(context.Background(), "lst-1", "user-2")
		require.NoError(t, err)
		require.Equal(t, "app-1", a.ID)
	})

	t.Run("listing_not_found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id, status FROM listing`).
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Apply(context.Background(), "ghost", "user-2")
		require.ErrorIs(t, err, myErr.ErrNotFound)
	})

	t.Run("own_listing", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id, status FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "status"}).AddRow("owner-1", "open"))

		_, err := repo.Apply(context.Background(), "lst-1", "owner-1")
		require.ErrorIs(t, err, myErr.ErrOwnListing)
	})

	t.Run("listing_closed", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id, status FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "status"}).AddRow("owner-1", "closed"))

		_, err := repo.Apply(context.Background(), "lst-1", "user-2")
		require.ErrorIs(t, err, myErr.ErrListingClosed)
	})

	t.Run("duplicate_application", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id, status FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id", "status"}).AddRow("owner-1", "open"))

		mock.ExpectQuery(`INSERT INTO application`).
			WithArgs(sqlmock.AnyArg(), "lst-1", "user-2").
			WillReturnError(&pq.Error{Code: "23505"})

		_, err := repo.Apply(context.Background(), "lst-1", "user-2")
		require.ErrorIs(t, err, myErr.ErrAlreadyApplied)
	})
}

func TestApplicationDBRepository_ListByListing(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationDBRepository(db, zaptest.NewLogger(t).Sugar())

	t.Run("owner_sees_applicants_in_order", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))

		rows := sqlmock.NewRows([]string{"id", "listing_id", "applicant_id", "created_at", "name", "rating"}).
			AddRow("app-1", "lst-1", "user-2", time.Now().Add(-time.Hour), "Bruno", 4.2).
			AddRow("app-2", "lst-1", "user-3", time.Now(), "Carla", 3.8)

		mock.ExpectQuery(`SELECT a.id, a.listing_id`).
			WithArgs("lst-1").
			WillReturnRows(rows)

		got, err := repo.ListByListing(context.Background(), "lst-1", "owner-1")
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, "Bruno", got[0].ApplicantName)
	})

	t.Run("stranger_is_rejected", func(t *testing.T) {
		mock.ExpectQuery(`SELECT owner_id FROM listing`).
			WithArgs("lst-1").
			WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow("owner-1"))

		_, err := repo.ListByListing(context.Background(), "lst-1", "stranger")
		require.ErrorIs(t, err, myErr.ErrNotOwner)
	})
}

func TestApplicationDBRepository_ListByApplicant(t *testing.T) {
	t.Parallel()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicationDBRepository(db, zaptest.NewLogger(t).Sugar())

	rows := sqlmock.NewRows([]string{"id", "listing_id", "applicant_id", "created_at", "title", "status", "name"}).
		AddRow("app-1", "lst-1", "user-2", time.Now(), "Pintura", "open", "Ana")

	mock.ExpectQuery(`SELECT a.id, a.listing_id`).
		WithArgs("user-2").
		WillReturnRows(rows)

	got, err := repo.ListByApplicant(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Pintura", got[0].ListingTitle)
	require.Equal(t, "Ana", got[0].OwnerName)
}
