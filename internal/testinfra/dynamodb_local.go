// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultDynamoDBLocalImage is the AWS DynamoDB Local image.
	DefaultDynamoDBLocalImage = "amazon/dynamodb-local:2.5.2"

	// DefaultDynamoDBLocalPort is the port DynamoDB Local listens on.
	DefaultDynamoDBLocalPort = "8000"
)

// DynamoDBLocalContainer is a running DynamoDB Local instance.
type DynamoDBLocalContainer struct {
	testcontainers.Container
	// Endpoint is the http://host:port URL for dynamodb.Options.BaseEndpoint.
	Endpoint string
}

// DynamoDBLocalOption configures the container.
type DynamoDBLocalOption func(*dynamoConfig)

type dynamoConfig struct {
	image        string
	startTimeout time.Duration
}

// WithDynamoDBImage overrides the image.
func WithDynamoDBImage(image string) DynamoDBLocalOption {
	return func(c *dynamoConfig) {
		c.image = image
	}
}

// WithDynamoDBStartTimeout sets how long to wait for the port to open.
func WithDynamoDBStartTimeout(timeout time.Duration) DynamoDBLocalOption {
	return func(c *dynamoConfig) {
		c.startTimeout = timeout
	}
}

// NewDynamoDBLocalContainer starts DynamoDB Local in in-memory shared-db mode.
func NewDynamoDBLocalContainer(ctx context.Context, opts ...DynamoDBLocalOption) (*DynamoDBLocalContainer, error) {
	cfg := &dynamoConfig{
		image:        DefaultDynamoDBLocalImage,
		startTimeout: 60 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultDynamoDBLocalPort + "/tcp"},
		Cmd:          []string{"-jar", "DynamoDBLocal.jar", "-inMemory", "-sharedDb"},
		WaitingFor: wait.ForListeningPort(DefaultDynamoDBLocalPort + "/tcp").
			WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create dynamodb-local container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, DefaultDynamoDBLocalPort+"/tcp")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &DynamoDBLocalContainer{
		Container: container,
		Endpoint:  fmt.Sprintf("http://%s:%s", host, port.Port()),
	}, nil
}
