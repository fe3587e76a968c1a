package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-booking/internal/config"
	"github.com/iliyamo/restaurant-booking/internal/database"
	"github.com/iliyamo/restaurant-booking/internal/model"
)

func TestIsDuplicate(t *testing.T) {
	assert.True(t, isDuplicate(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}))
	assert.False(t, isDuplicate(&mysql.MySQLError{Number: 1146}))
	assert.False(t, isDuplicate(assert.AnError))
}

// Integration test: requires a MySQL database with the migrations applied.
// Skipped unless TEST_DB_HOST is set.
func TestReceiptRepo_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping receipt archive integration test in short mode")
	}
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("skipping receipt archive integration test: TEST_DB_HOST not set")
	}
	port := os.Getenv("TEST_DB_PORT")
	if port == "" {
		port = "3306"
	}
	db, err := database.Open(config.DBConfig{
		User: os.Getenv("TEST_DB_USER"),
		Pass: os.Getenv("TEST_DB_PASS"),
		Host: host,
		Port: port,
		Name: os.Getenv("TEST_DB_NAME"),
	})
	require.NoError(t, err)
	defer db.Close()

	repo := NewReceiptRepo(db)
	ctx := context.Background()
	rc := model.Receipt{
		ID:        "RCP-" + uuid.NewString(),
		SessionID: uuid.NewString(),
		SeatID:    "B2",
		Lines: []model.CartLine{
			{MenuItem: model.MenuItem{ID: "b1", Name: "Masala Dosa", Price: 120}, Quantity: 1},
			{MenuItem: model.MenuItem{ID: "v2", Name: "Filter Coffee", Price: 80}, Quantity: 2},
		},
		Subtotal: 280,
		Tax:      14,
		Total:    294,
		PlacedAt: time.Now().UTC().Truncate(time.Second).Add(time.Hour),
	}
	require.NoError(t, repo.Create(ctx, rc))
	defer func() { _, _ = db.ExecContext(ctx, `DELETE FROM order_receipts WHERE id = ?`, rc.ID) }()

	assert.ErrorIs(t, repo.Create(ctx, rc), ErrConflict)

	got, err := repo.Get(ctx, rc.ID)
	require.NoError(t, err)
	assert.Equal(t, "B2", got.SeatID)
	assert.Len(t, got.Lines, 2)

	_, err = repo.Get(ctx, "RCP-missing")
	assert.ErrorIs(t, err, ErrReceiptNotFound)

	list, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, rc.ID, list[0].ID)
	assert.Equal(t, 294, list[0].Total)
	assert.Len(t, list[0].Lines, 2)
}
