package timer

import "testing"

func TestCountdownExpiresExactlyOnce(t *testing.T) {
	var c Countdown
	c.Start(3)

	if !c.Active() {
		t.Fatal("countdown should be active after Start")
	}
	if c.Advance() || c.Advance() {
		t.Fatal("countdown expired early")
	}
	if !c.Advance() {
		t.Fatal("countdown should expire on the third tick")
	}
	if c.Advance() {
		t.Fatal("expired countdown must not fire again")
	}
	if c.Active() || c.Remaining() != 0 {
		t.Errorf("expired countdown left active=%v remaining=%d", c.Active(), c.Remaining())
	}
}

func TestStopDisarms(t *testing.T) {
	var c Countdown
	c.Start(2)
	c.Stop()
	if c.Advance() {
		t.Fatal("stopped countdown must not expire")
	}
}

func TestInactiveAdvanceIsNoop(t *testing.T) {
	var c Countdown
	if c.Advance() {
		t.Fatal("zero-value countdown must not fire")
	}
}

func TestRestart(t *testing.T) {
	var c Countdown
	c.Start(1)
	if !c.Advance() {
		t.Fatal("should expire")
	}
	c.Start(2)
	if c.Advance() {
		t.Fatal("restarted countdown expired early")
	}
	if !c.Advance() {
		t.Fatal("restarted countdown should expire on second tick")
	}
}
