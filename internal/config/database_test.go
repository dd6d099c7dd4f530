package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBConfigDSN(t *testing.T) {
	cfg := &DBConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "app",
		Password: "secret",
		Name:     "interviews",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=app password=secret dbname=interviews port=5432 sslmode=disable",
		cfg.DSN(),
	)
}
