package testhelper

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

// RedisEnv names an existing Redis to test against instead of starting a container.
const RedisEnv = "TEST_REDIS_URL"

var (
	redisOnce    sync.Once
	sharedRedis  string
	redisInitErr error
)

// SetupTestRedis returns the redis:// URL of a Redis shared by the whole
// test run. Integration tests are skipped under -short.
func SetupTestRedis(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}

	redisOnce.Do(func() {
		sharedRedis, redisInitErr = prepareRedis()
	})
	if redisInitErr != nil {
		t.Fatalf("testhelper: setup test redis: %v", redisInitErr)
	}

	return sharedRedis
}

func prepareRedis() (string, error) {
	if url := os.Getenv(RedisEnv); url != "" {
		return url, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	host, port, err := startContainer(ctx, testcontainers.ContainerRequest{
		Image:      "redis:7-alpine",
		WaitingFor: wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
	}, "6379/tcp")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("redis://%s:%s/0", host, port), nil
}
