package tables

import (
	"context"
	"fmt"
	"sync"
)

type DeleteState string

const (
	StateIdle       DeleteState = "idle"
	StateConfirming DeleteState = "confirming"
	StateDeleting   DeleteState = "deleting"
)

type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// DeleteFunc is the injected destructive action.
type DeleteFunc func(ctx context.Context, row Row) (*DeleteResult, error)

// DeleteFlow guards a destructive action behind an explicit confirm step:
//
//	Idle -> Confirming -> Deleting -> Idle        (success)
//	                               -> Confirming  (failure, re-offer)
//
// At most one delete is in flight; Trigger and Confirm are rejected while
// deleting. After Close every transition is a no-op, so a late handler
// response cannot touch a disposed view.
type DeleteFlow struct {
	mu       sync.Mutex
	state    DeleteState
	target   Row
	onDelete DeleteFunc
	closed   bool
}

func NewDeleteFlow(onDelete DeleteFunc) *DeleteFlow {
	return &DeleteFlow{
		state:    StateIdle,
		onDelete: onDelete,
	}
}

func (f *DeleteFlow) State() DeleteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Trigger opens the confirmation step for a row. No backend call happens yet.
func (f *DeleteFlow) Trigger(row Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	if f.state != StateIdle {
		return fmt.Errorf("delete already in progress")
	}
	f.state = StateConfirming
	f.target = row
	return nil
}

// Cancel abandons the confirmation and returns to Idle without side effects.
func (f *DeleteFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateConfirming {
		f.state = StateIdle
		f.target = nil
	}
}

// Confirm runs the injected delete. On success the flow closes back to Idle;
// on a failed result or an error it returns to Confirming so the user gets
// explicit feedback and may retry.
func (f *DeleteFlow) Confirm(ctx context.Context) (*DeleteResult, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, nil
	}
	if f.state != StateConfirming {
		f.mu.Unlock()
		return nil, fmt.Errorf("nothing to confirm")
	}
	f.state = StateDeleting
	row := f.target
	f.mu.Unlock()

	res, err := f.onDelete(ctx, row)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		// Late response after teardown: drop it.
		return nil, nil
	}

	if err != nil {
		f.state = StateConfirming
		return nil, err
	}
	if res == nil || !res.Success {
		f.state = StateConfirming
		if res == nil {
			res = &DeleteResult{Success: false}
		}
		return res, nil
	}

	f.state = StateIdle
	f.target = nil
	return res, nil
}

// Close tears the flow down; any in-flight or later result becomes a no-op.
func (f *DeleteFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.state = StateIdle
	f.target = nil
}
