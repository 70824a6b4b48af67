package internal

import (
	"context"
	"errors"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUniqueStringSlice(t *testing.T) {
	got := UniqueStringSlice([]string{"b", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)

	assert.Empty(t, UniqueStringSlice(nil))
}

func TestAssertNoError(t *testing.T) {
	assert.NotPanics(t, func() { AssertNoError(nil) })
	assert.Panics(t, func() { AssertNoError(errors.New("boom")) })
}

func TestSignalAwareContext_ParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx := SignalAwareContext(parent, syscall.SIGUSR1)

	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled")
	}
}

func TestSignalAwareContext_Signal(t *testing.T) {
	ctx := SignalAwareContext(context.Background(), syscall.SIGUSR1)

	assert.NoError(t, syscall.Kill(syscall.Getpid(), syscall.SIGUSR1))

	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("context was not cancelled by signal")
	}
}
