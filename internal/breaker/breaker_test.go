// Radiolite - Radio Station Directory Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/radiolite

package breaker

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

func TestBreaker_OpensAfterFailureRatio(t *testing.T) {
	t.Parallel()

	b := NewWithSettings[int]("test-open", Settings{MinRequests: 4, FailureRatio: 0.5, Timeout: time.Hour})
	boom := errors.New("boom")

	for i := 0; i < 4; i++ {
		if _, err := b.Execute(func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want boom", i, err)
		}
	}

	if got := b.State(); got != "open" {
		t.Fatalf("State() = %q, want open", got)
	}

	called := false
	_, err := b.Execute(func() (int, error) {
		called = true
		return 1, nil
	})
	if !IsRejection(err) {
		t.Errorf("err = %v, want rejection", err)
	}
	if called {
		t.Error("wrapped function ran while circuit was open")
	}
}

func TestBreaker_StaysClosedBelowMinimum(t *testing.T) {
	t.Parallel()

	b := New[string]("test-closed")
	for i := 0; i < 5; i++ {
		_, _ = b.Execute(func() (string, error) { return "", errors.New("fail") })
	}
	if got := b.State(); got != "closed" {
		t.Errorf("State() = %q, want closed", got)
	}

	v, err := b.Execute(func() (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Errorf("Execute() = %q, %v", v, err)
	}
	if b.Name() != "test-closed" {
		t.Errorf("Name() = %q", b.Name())
	}
}

func TestStateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state gobreaker.State
		want  string
		value float64
	}{
		{gobreaker.StateClosed, "closed", 0},
		{gobreaker.StateHalfOpen, "half-open", 1},
		{gobreaker.StateOpen, "open", 2},
		{gobreaker.State(99), "unknown", -1},
	}
	for _, tt := range tests {
		if got := StateString(tt.state); got != tt.want {
			t.Errorf("StateString(%d) = %q, want %q", tt.state, got, tt.want)
		}
		if got := stateToFloat(tt.state); got != tt.value {
			t.Errorf("stateToFloat(%d) = %v, want %v", tt.state, got, tt.value)
		}
	}
}

func TestIsRejection(t *testing.T) {
	t.Parallel()

	if !IsRejection(gobreaker.ErrOpenState) || !IsRejection(gobreaker.ErrTooManyRequests) {
		t.Error("breaker errors should be rejections")
	}
	if IsRejection(errors.New("other")) {
		t.Error("plain error is not a rejection")
	}
}
