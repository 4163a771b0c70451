package event

import "testing"

func TestBusDeliversInRegistrationOrder(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe("ping", func(Event) { got = append(got, "a") })
	b.Subscribe("ping", func(Event) { got = append(got, "b") })
	b.Subscribe("pong", func(Event) { got = append(got, "x") })

	b.Emit("ping", nil)

	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestBusNestedPublishRunsInline(t *testing.T) {
	b := NewBus()
	var got []string
	b.Subscribe("outer", func(Event) {
		got = append(got, "outer-start")
		b.Emit("inner", nil)
		got = append(got, "outer-end")
	})
	b.Subscribe("inner", func(Event) { got = append(got, "inner") })

	b.Emit("outer", nil)

	want := []string{"outer-start", "inner", "outer-end"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestBusSubscriptionChangesDuringDispatch(t *testing.T) {
	b := NewBus()
	calls := 0
	var late *Subscription
	b.Subscribe("tick", func(Event) {
		calls++
		if late == nil {
			late = b.Subscribe("tick", func(Event) { calls += 10 })
		}
	})

	b.Emit("tick", nil)
	if calls != 1 {
		t.Fatalf("handler added during dispatch should wait for next publish, calls=%d", calls)
	}
	b.Emit("tick", nil)
	if calls != 12 {
		t.Fatalf("expected 12, got %d", calls)
	}
}

func TestSubscriptionUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	sub := b.Subscribe("tick", func(Event) { calls++ })

	if !sub.Unsubscribe() {
		t.Fatalf("first unsubscribe should report removal")
	}
	if sub.Unsubscribe() {
		t.Fatalf("second unsubscribe should be a no-op")
	}
	b.Emit("tick", nil)
	if calls != 0 {
		t.Fatalf("expected no calls after unsubscribe, got %d", calls)
	}
	if b.Count("tick") != 0 {
		t.Fatalf("expected empty topic, got %d", b.Count("tick"))
	}
}

func TestScopeCloseDropsAllHandlers(t *testing.T) {
	b := NewBus()
	s := NewScope(b)
	calls := 0
	s.On("a", func(Event) { calls++ })
	s.On("b", func(Event) { calls++ })
	b.Subscribe("a", func(Event) { calls += 100 })

	s.Close()
	s.On("a", func(Event) { calls++ })

	b.Emit("a", nil)
	b.Emit("b", nil)
	if calls != 100 {
		t.Fatalf("expected only the unscoped handler to run, calls=%d", calls)
	}
	if !s.Closed() {
		t.Fatalf("scope should report closed")
	}
}

func TestNilBusIsInert(t *testing.T) {
	var b *Bus
	b.Emit("x", 1)
	if sub := b.Subscribe("x", func(Event) {}); sub.Unsubscribe() {
		t.Fatalf("nil bus subscription should not unsubscribe anything")
	}
}
