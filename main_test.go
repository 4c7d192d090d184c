package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerCount(t *testing.T) {
	t.Setenv("WORKER_COUNT", "")
	assert.Equal(t, defaultWorkerCount, workerCount())

	t.Setenv("WORKER_COUNT", "5")
	assert.Equal(t, 5, workerCount())

	t.Setenv("WORKER_COUNT", "zero")
	assert.Equal(t, defaultWorkerCount, workerCount())

	t.Setenv("WORKER_COUNT", "0")
	assert.Equal(t, defaultWorkerCount, workerCount())
}
