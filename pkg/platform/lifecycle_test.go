package platform

import (
	"context"
	"fmt"
	"testing"
)

func TestLifecycle_StartRunsCallbacksInOrder(t *testing.T) {
	lc := NewLifecycle()

	var order []int
	lc.OnStart(func(context.Context) error { order = append(order, 1); return nil })
	lc.OnStart(func(context.Context) error { order = append(order, 2); return nil })

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("start order = %v, want [1 2]", order)
	}
}

func TestLifecycle_DoubleStartFails(t *testing.T) {
	lc := NewLifecycle()
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.Start(context.Background()); err == nil {
		t.Error("second Start() must fail")
	}
}

func TestLifecycle_StopRunsInReverseOrder(t *testing.T) {
	lc := NewLifecycle()

	var order []int
	lc.OnStop(func(context.Context) error { order = append(order, 1); return nil })
	lc.OnStop(func(context.Context) error { order = append(order, 2); return nil })

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("stop order = %v, want [2 1]", order)
	}
}

func TestLifecycle_StopWithoutStartIsNoop(t *testing.T) {
	lc := NewLifecycle()

	ran := false
	lc.OnStop(func(context.Context) error { ran = true; return nil })

	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if ran {
		t.Error("stop callbacks must not run before Start")
	}
}

func TestLifecycle_FailedStartRollsBack(t *testing.T) {
	lc := NewLifecycle()

	rolledBack := false
	lc.OnStop(func(context.Context) error { rolledBack = true; return nil })
	lc.OnStart(func(context.Context) error { return fmt.Errorf("boom") })

	if err := lc.Start(context.Background()); err == nil {
		t.Fatal("Start() must surface the callback error")
	}
	if !rolledBack {
		t.Error("failed start must run stop callbacks")
	}

	// The lifecycle never reached started, so Stop stays a no-op.
	rolledBack = false
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if rolledBack {
		t.Error("Stop after failed Start must not re-run callbacks")
	}
}

func TestLifecycle_StopCallbackErrorsDoNotAbort(t *testing.T) {
	lc := NewLifecycle()

	secondRan := false
	lc.OnStop(func(context.Context) error { secondRan = true; return nil })
	lc.OnStop(func(context.Context) error { return fmt.Errorf("flaky teardown") })

	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !secondRan {
		t.Error("a failing stop callback must not block the rest")
	}
}
