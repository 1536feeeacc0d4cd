package eventbus

import "testing"

func TestBusPublishSubscribe(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Publish(Event{Type: PlanWarning, Payload: PlanWarningPayload{Message: "late start"}})
	e := <-ch
	if e.Type != PlanWarning {
		t.Fatalf("expected %s got %s", PlanWarning, e.Type)
	}
	p, ok := e.Payload.(PlanWarningPayload)
	if !ok || p.Message != "late start" {
		t.Fatalf("unexpected payload %v", e.Payload)
	}
	bus.Unsubscribe(ch)
}

func TestBusClose(t *testing.T) {
	bus := New()
	ch1 := bus.Subscribe()
	ch2 := bus.Subscribe()
	bus.Close()
	if _, ok := <-ch1; ok {
		t.Fatalf("expected ch1 closed")
	}
	if _, ok := <-ch2; ok {
		t.Fatalf("expected ch2 closed")
	}
}

func TestBusUnsubscribeAfterClose(t *testing.T) {
	bus := New()
	ch := bus.Subscribe()
	bus.Close()
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("panic on Unsubscribe after Close: %v", r)
		}
	}()
	bus.Unsubscribe(ch)
}
