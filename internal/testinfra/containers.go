// CinemaPulse - Movie Reviews, Ratings and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemapulse

//go:build integration

package testinfra

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

// dockerAvailable reports whether `docker info` answers within five seconds.
func dockerAvailable() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return exec.CommandContext(ctx, "docker", "info").Run() == nil
}

// StartDynamoDBLocal runs DynamoDB Local for the lifetime of t and returns
// its endpoint. The test is skipped when Docker is not reachable.
//
// Static AWS credentials are exported for t, since DynamoDB Local accepts any
// key but the SDK credential chain still needs one.
func StartDynamoDBLocal(t *testing.T, opts ...DynamoDBLocalOption) string {
	t.Helper()
	if !dockerAvailable() {
		t.Skip("docker not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()
	ddb, err := NewDynamoDBLocalContainer(ctx, opts...)
	if err != nil {
		t.Fatalf("start dynamodb-local: %v", err)
	}
	t.Cleanup(func() {
		if err := ddb.Terminate(context.Background()); err != nil {
			t.Logf("terminate dynamodb-local: %v", err)
		}
	})

	t.Setenv("AWS_ACCESS_KEY_ID", "local")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "local")
	return ddb.Endpoint
}
