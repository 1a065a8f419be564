package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRules struct {
	steps      int
	variant    int
	level      int
	newGames   int
	flushErr   error
	variantErr error
	dieOnStep  bool
}

func (r *fakeRules) Step(l *Lifecycle, in *InputState) {
	r.steps++
	if r.dieOnStep {
		l.GameOver()
	}
}

func (r *fakeRules) ChangeVariant(delta int) error {
	r.variant += delta
	return r.variantErr
}

func (r *fakeRules) ChangeLevel(delta int) {
	r.level += delta
}

func (r *fakeRules) NewGame() error {
	r.newGames++
	return r.flushErr
}

func tickWith(t *testing.T, l *Lifecycle, in *InputState, press Intent) TickResult {
	t.Helper()
	if press != IntentNone {
		in.Press(press)
		in.Release(press)
	}
	res, err := l.Tick(in)
	require.NoError(t, err)
	return res
}

func TestLifecycleMenu(t *testing.T) {
	rules := &fakeRules{}
	l := NewLifecycle(Curtain{From: 0, To: 20}, rules)
	var in InputState

	assert.Equal(t, Status{Phase: PhaseMenu}, l.Status())
	assert.Equal(t, Continue, tickWith(t, l, &in, IntentNone))
	assert.Equal(t, 1, l.Status().Frames)

	assert.Equal(t, NextGame, tickWith(t, l, &in, IntentNext))
	assert.Equal(t, PrevGame, tickWith(t, l, &in, IntentPrev))

	tickWith(t, l, &in, IntentRight)
	tickWith(t, l, &in, IntentRight)
	tickWith(t, l, &in, IntentLeft)
	tickWith(t, l, &in, IntentUp)
	assert.Equal(t, 1, rules.variant)
	assert.Equal(t, 1, rules.level)

	assert.Equal(t, Exit, tickWith(t, l, &in, IntentEscape))
	assert.True(t, l.Is(PhaseMenu))

	tickWith(t, l, &in, IntentDrop)
	assert.True(t, l.Is(PhaseActive))
	assert.Zero(t, rules.newGames, "starting play does not reset the run")
}

func TestLifecycleMenuAnimationWraps(t *testing.T) {
	l := NewLifecycle(Curtain{From: 0, To: 20}, &fakeRules{})
	var in InputState
	for i := 0; i < MenuCycle; i++ {
		tickWith(t, l, &in, IntentNone)
	}
	assert.Equal(t, Status{Phase: PhaseMenu}, l.Status())
}

func TestLifecycleMenuHeldKeyActsOnce(t *testing.T) {
	rules := &fakeRules{}
	l := NewLifecycle(Curtain{From: 0, To: 20}, rules)
	var in InputState

	in.Press(IntentRight)
	for i := 0; i < 5; i++ {
		_, err := l.Tick(&in)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, rules.variant)
}

func TestLifecyclePauseAndResume(t *testing.T) {
	rules := &fakeRules{}
	l := NewLifecycle(Curtain{From: 0, To: 20}, rules)
	l.Enter(PhaseActive, 0)
	var in InputState

	tickWith(t, l, &in, IntentNone)
	assert.Equal(t, 1, rules.steps)

	tickWith(t, l, &in, IntentEscape)
	assert.True(t, l.Is(PhasePaused))
	assert.Equal(t, 1, rules.steps, "escape frame does not step the game")

	tickWith(t, l, &in, IntentNone)
	assert.True(t, l.Is(PhasePaused))

	tickWith(t, l, &in, IntentSecondary)
	assert.True(t, l.Is(PhaseActive))
}

func TestLifecycleCurtainUp(t *testing.T) {
	rules := &fakeRules{}
	l := NewLifecycle(Curtain{From: 0, To: 3}, rules)
	l.Enter(PhasePaused, 0)
	var in InputState

	tickWith(t, l, &in, IntentEscape)
	require.Equal(t, Status{Phase: PhaseRaising, Frames: 0}, l.Status())

	var seen []Status
	for i := 0; i < 9; i++ {
		tickWith(t, l, &in, IntentNone)
		seen = append(seen, l.Status())
	}
	assert.Equal(t, []Status{
		{PhaseRaising, 1}, {PhaseRaising, 2}, {PhaseRaising, 3},
		{PhaseLowering, 3},
		{PhaseLowering, 2}, {PhaseLowering, 1}, {PhaseLowering, 0},
		{PhaseMenu, 0}, {PhaseMenu, 1},
	}, seen)
	assert.Equal(t, 1, rules.newGames)
}

func TestLifecycleCurtainDown(t *testing.T) {
	rules := &fakeRules{dieOnStep: true}
	l := NewLifecycle(Curtain{From: 22, To: 20}, rules)
	l.Enter(PhaseActive, 0)
	var in InputState

	tickWith(t, l, &in, IntentNone)
	require.Equal(t, Status{Phase: PhaseRaising, Frames: 22}, l.Status())

	var seen []Status
	for i := 0; i < 6; i++ {
		tickWith(t, l, &in, IntentNone)
		seen = append(seen, l.Status())
	}
	assert.Equal(t, []Status{
		{PhaseRaising, 21}, {PhaseRaising, 20},
		{PhaseLowering, 20}, {PhaseLowering, 21}, {PhaseLowering, 22},
		{PhaseMenu, 0},
	}, seen)
}

func TestLifecycleFlushErrorDoesNotStall(t *testing.T) {
	boom := errors.New("disk full")
	rules := &fakeRules{flushErr: boom}
	l := NewLifecycle(Curtain{From: 0, To: 2}, rules)
	l.GameOver()
	var in InputState

	var errs int
	for i := 0; i < 10; i++ {
		if _, err := l.Tick(&in); err != nil {
			assert.ErrorIs(t, err, boom)
			errs++
		}
	}
	assert.Equal(t, 1, errs, "the error is reported once, at the boundary")
	assert.Equal(t, 1, rules.newGames)
	assert.True(t, l.Is(PhaseMenu), "curtain finishes despite the failing store")

	in.Press(IntentEscape)
	res, err := l.Tick(&in)
	require.NoError(t, err)
	assert.Equal(t, Exit, res)
}

func TestLifecycleMenuVariantErrorKeepsOtherKeys(t *testing.T) {
	boom := errors.New("disk full")
	rules := &fakeRules{variantErr: boom}
	l := NewLifecycle(Curtain{From: 0, To: 20}, rules)
	var in InputState

	in.Press(IntentRight)
	in.Press(IntentUp)
	in.Press(IntentDrop)
	_, err := l.Tick(&in)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, rules.variant)
	assert.Equal(t, 1, rules.level)
	assert.True(t, l.Is(PhaseActive))
}

func TestLifecycleDropsUnconsumedPresses(t *testing.T) {
	l := NewLifecycle(Curtain{From: 0, To: 20}, &fakeRules{})
	l.Enter(PhaseActive, 0)
	var in InputState

	in.Press(IntentNext)
	_, err := l.Tick(&in)
	require.NoError(t, err)
	assert.False(t, in.Pressed(IntentNext))
}

func TestPhasePlaying(t *testing.T) {
	assert.True(t, PhaseActive.Playing())
	assert.True(t, PhaseTeleporting.Playing())
	assert.False(t, PhaseMenu.Playing())
	assert.False(t, PhaseRaising.Playing())
	assert.Equal(t, "Raising(4)", Status{Phase: PhaseRaising, Frames: 4}.String())
}
