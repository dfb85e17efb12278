package game

import "testing"

func TestDeferred_FiresOnExactTick(t *testing.T) {
	var q deferredQueue
	q.schedule(3, deferredEvent{kind: deferInterceptorWave})
	for tick := 1; tick <= 2; tick++ {
		if due := q.advance(); len(due) != 0 {
			t.Fatalf("tick %d: event fired early", tick)
		}
	}
	due := q.advance()
	if len(due) != 1 || due[0].kind != deferInterceptorWave {
		t.Fatalf("tick 3: expected the wave event, got %v", due)
	}
	if q.size() != 0 {
		t.Fatalf("due event left in queue")
	}
}

func TestDeferred_ZeroDelayBumpedToOne(t *testing.T) {
	var q deferredQueue
	q.schedule(0, deferredEvent{kind: deferOffensiveMissile})
	q.schedule(-5, deferredEvent{kind: deferOffensiveMissile})
	if due := q.advance(); len(due) != 2 {
		t.Fatalf("expected both events next tick, got %d", len(due))
	}
}

func TestDeferred_InsertionOrderKept(t *testing.T) {
	var q deferredQueue
	q.schedule(2, deferredEvent{kind: deferOffensiveMissile, index: 1})
	q.schedule(1, deferredEvent{kind: deferOffensiveMissile, index: 2})
	q.schedule(2, deferredEvent{kind: deferOffensiveMissile, index: 3})

	if due := q.advance(); len(due) != 1 || due[0].index != 2 {
		t.Fatalf("tick 1: got %v", due)
	}
	due := q.advance()
	if len(due) != 2 || due[0].index != 1 || due[1].index != 3 {
		t.Fatalf("tick 2: expected indices 1,3 in order, got %v", due)
	}
}

func TestDeferred_ScheduledDuringProcessingWaits(t *testing.T) {
	var q deferredQueue
	q.schedule(1, deferredEvent{kind: deferInterceptorWave})
	for _, ev := range q.advance() {
		// A handler rescheduling with no delay must not run in this pass.
		q.schedule(0, ev)
	}
	if q.pending(deferInterceptorWave) != 1 {
		t.Fatalf("rescheduled event missing")
	}
	if due := q.advance(); len(due) != 1 {
		t.Fatalf("rescheduled event should fire on the following tick")
	}
}

func TestDeferred_ClearedOnTerminal(t *testing.T) {
	ts := quietSim(WithTimeLeft(5))
	if ts.Engine.deferred.size() == 0 {
		t.Fatal("reset should schedule the first interceptor wave")
	}
	ts.RunTicks(10)
	if !ts.Engine.Phase().Terminal() {
		t.Fatalf("expected timeout, phase=%s", ts.Engine.Phase())
	}
	if n := ts.Engine.deferred.size(); n != 0 {
		t.Fatalf("terminal phase left %d deferred events", n)
	}
}
