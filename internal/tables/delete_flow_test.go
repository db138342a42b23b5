package tables

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteFlowCancelLeavesRowsUntouched(t *testing.T) {
	calls := 0
	flow := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		calls++
		return &DeleteResult{Success: true}, nil
	})

	require.NoError(t, flow.Trigger(Row{"id": "1"}))
	assert.Equal(t, StateConfirming, flow.State())

	flow.Cancel()
	assert.Equal(t, StateIdle, flow.State())
	assert.Zero(t, calls, "cancel must not invoke the delete handler")
}

func TestDeleteFlowSuccess(t *testing.T) {
	flow := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		return &DeleteResult{Success: true, Message: "deleted"}, nil
	})

	require.NoError(t, flow.Trigger(Row{"id": "1"}))
	res, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, StateIdle, flow.State())
}

func TestDeleteFlowFailureReturnsToConfirming(t *testing.T) {
	flow := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		return &DeleteResult{Success: false, Message: "referenced by orders"}, nil
	})

	require.NoError(t, flow.Trigger(Row{"id": "1"}))
	res, err := flow.Confirm(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, StateConfirming, flow.State(), "failure must re-offer confirmation, not close")

	// The handler error path behaves the same way.
	flow2 := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		return nil, errors.New("backend down")
	})
	require.NoError(t, flow2.Trigger(Row{"id": "2"}))
	_, err = flow2.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateConfirming, flow2.State())
}

func TestDeleteFlowSingleInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	flow := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		close(started)
		<-release
		return &DeleteResult{Success: true}, nil
	})

	require.NoError(t, flow.Trigger(Row{"id": "1"}))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = flow.Confirm(context.Background())
	}()

	<-started
	assert.Equal(t, StateDeleting, flow.State())
	assert.Error(t, flow.Trigger(Row{"id": "2"}), "trigger must be rejected while deleting")
	_, err := flow.Confirm(context.Background())
	assert.Error(t, err, "second confirm must be rejected while deleting")

	close(release)
	<-done
	assert.Equal(t, StateIdle, flow.State())
}

func TestDeleteFlowClosedIsNoOp(t *testing.T) {
	release := make(chan struct{})
	flow := NewDeleteFlow(func(ctx context.Context, row Row) (*DeleteResult, error) {
		<-release
		return &DeleteResult{Success: true}, nil
	})

	require.NoError(t, flow.Trigger(Row{"id": "1"}))

	done := make(chan *DeleteResult, 1)
	go func() {
		res, _ := flow.Confirm(context.Background())
		done <- res
	}()

	flow.Close()
	close(release)

	// The late handler response is swallowed after teardown.
	assert.Nil(t, <-done)
	assert.Equal(t, StateIdle, flow.State())
	assert.NoError(t, flow.Trigger(Row{"id": "2"}))
	assert.Equal(t, StateIdle, flow.State(), "closed flow ignores triggers")
}
