package testhelper

import (
	"context"
	"fmt"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
)

// startContainer runs req and returns host:port of the mapped containerPort.
func startContainer(ctx context.Context, req testcontainers.ContainerRequest, containerPort nat.Port) (string, string, error) {
	req.ExposedPorts = []string{string(containerPort)}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", "", fmt.Errorf("start %s: %w", req.Image, err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		return "", "", fmt.Errorf("%s host: %w", req.Image, err)
	}

	port, err := c.MappedPort(ctx, containerPort)
	if err != nil {
		return "", "", fmt.Errorf("%s mapped port: %w", req.Image, err)
	}

	return host, port.Port(), nil
}
