package rhythm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"
)

func newTestClock() (*VirtualClock, *clocktesting.FakeClock) {
	fc := clocktesting.NewFakeClock(time.Unix(1000, 0))
	return NewVirtualClock(fc), fc
}

func TestVirtualClockAdvancesOnTick(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	assert.Equal(t, 0.0, vc.CurrentTime())

	// nothing moves until the next tick
	fc.Step(500 * time.Millisecond)
	assert.Equal(t, 0.0, vc.CurrentTime())

	vc.Tick()
	assert.InDelta(t, 0.5, vc.CurrentTime(), 1e-9)
	assert.InDelta(t, 0.0, vc.PreviousTime(), 1e-9)
	assert.InDelta(t, 0.5, vc.Elapsed(), 1e-9)

	fc.Step(250 * time.Millisecond)
	vc.Tick()
	assert.InDelta(t, 0.75, vc.CurrentTime(), 1e-9)
	assert.InDelta(t, 0.5, vc.PreviousTime(), 1e-9)
}

func TestSetRateZeroFreezesTime(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	fc.Step(2 * time.Second)
	vc.Tick()
	require.InDelta(t, 2.0, vc.CurrentTime(), 1e-9)

	vc.SetRate(0)
	assert.InDelta(t, 2.0, vc.CurrentTime(), 1e-9)

	fc.Step(time.Hour)
	assert.InDelta(t, 2.0, vc.CurrentTime(), 1e-9)
	vc.Tick()
	assert.InDelta(t, 2.0, vc.CurrentTime(), 1e-9)
}

func TestSetRateHasNoJump(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	vc.SetRate(0)
	fc.Step(3 * time.Second)
	vc.Tick()
	require.InDelta(t, 0.0, vc.CurrentTime(), 1e-9)

	fc.Step(time.Second)
	vc.SetRate(1)
	assert.InDelta(t, 0.0, vc.CurrentTime(), 1e-9)
	assert.Equal(t, 1.0, vc.Factor())

	fc.Step(time.Second)
	vc.Tick()
	assert.InDelta(t, 1.0, vc.CurrentTime(), 1e-9)
}

func TestOverrideIsDeferredToNextTick(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	fc.Step(time.Second)
	vc.Tick()
	before := vc.CurrentTime()

	vc.RequestTimeOverride(10)
	assert.Equal(t, before, vc.CurrentTime())
	pending, ok := vc.PendingOverride()
	assert.True(t, ok)
	assert.Equal(t, 10.0, pending)

	fc.Step(100 * time.Millisecond)
	vc.Tick()
	assert.Equal(t, 10.0, vc.CurrentTime())
	assert.InDelta(t, before, vc.PreviousTime(), 1e-9)
	_, ok = vc.PendingOverride()
	assert.False(t, ok)

	// runs on from the override
	fc.Step(time.Second)
	vc.Tick()
	assert.InDelta(t, 11.0, vc.CurrentTime(), 1e-9)
	assert.InDelta(t, 10.0, vc.PreviousTime(), 1e-9)
}

func TestOverrideWhilePausedKeepsContinuity(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	vc.SetRate(0)
	vc.RequestTimeOverride(4)
	fc.Step(time.Second)
	vc.Tick()
	assert.Equal(t, 4.0, vc.CurrentTime())
	assert.Equal(t, 0.0, vc.PreviousTime())

	vc.RequestTimeOverride(1)
	vc.Tick()
	assert.Equal(t, NewTimeWindow(4, 1), vc.Window())
	assert.True(t, vc.Window().IsBackward())
}

func TestLatestOverrideWins(t *testing.T) {
	t.Parallel()

	vc, _ := newTestClock()
	vc.RequestTimeOverride(3)
	vc.RequestTimeOverride(7)
	vc.Tick()
	assert.Equal(t, 7.0, vc.CurrentTime())
}

func TestTickAt(t *testing.T) {
	t.Parallel()

	vc, fc := newTestClock()
	vc.TickAt(fc.Now().Add(1500 * time.Millisecond))
	assert.InDelta(t, 1.5, vc.CurrentTime(), 1e-9)
	assert.Equal(t, NewTimeWindow(0, vc.CurrentTime()), vc.Window())
}
