package database

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  PostgresConfig
		want string
	}{
		{
			name: "defaults to sslmode disable",
			cfg:  PostgresConfig{Host: "localhost", Port: 5432, User: "soccer", Password: "secret", Database: "soccer"},
			want: "host='localhost' port=5432 user='soccer' password='secret' dbname='soccer' sslmode='disable'",
		},
		{
			name: "quotes special characters",
			cfg:  PostgresConfig{Host: "db", Port: 5433, User: "ops", Password: `it's a \secret`, Database: "clubs", SSLMode: "require"},
			want: `host='db' port=5433 user='ops' password='it\'s a \\secret' dbname='clubs' sslmode='require'`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.DSN())
		})
	}
}

func TestPingUsesWrappedPool(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	ps := NewPostgresServiceFromDB(db, nil)
	mock.ExpectPing()
	require.NoError(t, ps.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(stderrors.New("connection refused"))
	assert.Error(t, ps.Ping(context.Background()))

	mock.ExpectClose()
	require.NoError(t, ps.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
