// Package common provides shared test infrastructure
package common

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const defaultSurrealImage = "surrealdb/surrealdb:v3.0.0"

var (
	surrealOnce      sync.Once
	surrealContainer *SurrealDBContainer
	surrealError     error
)

// SurrealDBContainer wraps the SurrealDB instance the tests talk to: either a
// throwaway container or, when GMC_TEST_SURREALDB_ADDR is set, an instance
// someone already has running (CI caches one across packages this way).
type SurrealDBContainer struct {
	container testcontainers.Container
	address   string
}

// StartSurrealDB returns the shared SurrealDB instance for the test run.
// Uses sync.Once so at most one container is created per process. The
// container runs with in-memory storage, so every run starts from an empty
// datastore; per-test isolation comes from the unique database names the
// callers pick. GMC_TEST_SURREALDB_IMAGE overrides the image tag.
func StartSurrealDB(t *testing.T) *SurrealDBContainer {
	t.Helper()

	surrealOnce.Do(func() {
		if addr := os.Getenv("GMC_TEST_SURREALDB_ADDR"); addr != "" {
			surrealContainer = &SurrealDBContainer{address: addr}
			return
		}
		surrealContainer, surrealError = startContainer()
	})

	if surrealError != nil {
		t.Fatalf("SurrealDB container failed: %v", surrealError)
	}

	return surrealContainer
}

func startContainer() (*SurrealDBContainer, error) {
	ctx := context.Background()

	image := os.Getenv("GMC_TEST_SURREALDB_IMAGE")
	if image == "" {
		image = defaultSurrealImage
	}

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{"8000/tcp"},
		Cmd:          []string{"start", "--user", "root", "--pass", "root", "memory"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("8000/tcp"),
			wait.ForLog("Started web server"),
		).WithDeadline(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("start SurrealDB container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("get SurrealDB host: %w", err)
	}

	mappedPort, err := container.MappedPort(ctx, "8000/tcp")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("get SurrealDB port: %w", err)
	}

	return &SurrealDBContainer{
		container: container,
		address:   fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
	}, nil
}

// Address returns the WebSocket RPC address for SurrealDB.
func (c *SurrealDBContainer) Address() string {
	return c.address
}

// Cleanup terminates the container. Call from TestMain if needed; a no-op
// when the tests were pointed at an external instance.
func (c *SurrealDBContainer) Cleanup() {
	if c != nil && c.container != nil {
		c.container.Terminate(context.Background())
	}
}
