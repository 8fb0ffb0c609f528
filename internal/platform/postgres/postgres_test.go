package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionsFromEnv_Driver(t *testing.T) {
	t.Setenv("POSTGRES_DRIVER", "")
	require.Equal(t, DriverPGX, OptionsFromEnv().Driver)

	t.Setenv("POSTGRES_DRIVER", " PQ ")
	require.Equal(t, DriverPQ, OptionsFromEnv().Driver)
}

func TestConnectWithOptions_RejectsUnknownDriver(t *testing.T) {
	_, err := ConnectWithOptions(context.Background(), "postgres://localhost/henri", Options{Driver: "mysql"})
	require.ErrorContains(t, err, `unsupported postgres driver "mysql"`)

	_, err = ConnectWithOptions(context.Background(), " ", Options{})
	require.Error(t, err)
}
