package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-booking/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.DBConfig{User: "app", Host: "db", Port: "3306", Name: "restaurant"}
	assert.Equal(t, "app@tcp(db:3306)/restaurant?charset=utf8mb4&parseTime=true&loc=UTC", DSN(cfg))

	cfg.Pass = "pw"
	assert.Equal(t, "app:pw@tcp(db:3306)/restaurant?charset=utf8mb4&parseTime=true&loc=UTC", DSN(cfg))
}
