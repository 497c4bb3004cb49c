//go:build integration_pg

// Package pgtest starts disposable postgres containers for integration tests
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type options struct {
	initSQL []string
}

// Option tunes Start
type Option func(*options)

// WithInitSQL runs statements once the database accepts connections, in order
func WithInitSQL(sql ...string) Option {
	return func(o *options) { o.initSQL = append(o.initSQL, sql...) }
}

// Start runs a throwaway postgres and returns its DSN
// the container is terminated on test cleanup
func Start(t *testing.T, opts ...Option) string {
	t.Helper()
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "residences",
				"POSTGRES_PASSWORD": "residences",
				"POSTGRES_DB":       "residences",
			},
			// the entrypoint restarts the server once, wait for the second ready line
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("postgres container: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	endpoint, err := c.PortEndpoint(ctx, "5432/tcp", "")
	if err != nil {
		t.Fatalf("postgres endpoint: %v", err)
	}
	dsn := fmt.Sprintf("postgres://residences:residences@%s/residences?sslmode=disable", endpoint)

	if len(o.initSQL) > 0 {
		conn, err := pgx.Connect(ctx, dsn)
		if err != nil {
			t.Fatalf("postgres connect: %v", err)
		}
		defer func() { _ = conn.Close(context.Background()) }()
		for i, stmt := range o.initSQL {
			if _, err := conn.Exec(ctx, stmt); err != nil {
				t.Fatalf("init sql #%d: %v", i, err)
			}
		}
	}
	return dsn
}
