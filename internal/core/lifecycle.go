package core

import (
	"errors"
	"fmt"
)

// Phase identifies which part of the per-game state machine is running.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhaseActive
	PhasePaused
	PhaseRaising
	PhaseLowering

	// Game-specific transient phases.
	PhaseClearing    // block game: line-clear flash, Frames counts down
	PhasePlacing     // block game: one-frame landed flash
	PhaseTeleporting // robots: destination shown, blast on the next frame
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhaseActive:
		return "Active"
	case PhasePaused:
		return "Paused"
	case PhaseRaising:
		return "Raising"
	case PhaseLowering:
		return "Lowering"
	case PhaseClearing:
		return "Clearing"
	case PhasePlacing:
		return "Placing"
	case PhaseTeleporting:
		return "Teleporting"
	default:
		return "Unknown"
	}
}

// Playing reports whether a run is in progress in this phase.
func (p Phase) Playing() bool {
	switch p {
	case PhaseActive, PhasePaused, PhaseClearing, PhasePlacing, PhaseTeleporting:
		return true
	}
	return false
}

// MenuCycle is the length of the cosmetic menu animation.
const MenuCycle = 70

// Status is the phase plus its frame counter. Frames is the menu animation
// tick, the curtain progress, or the frames left in a Clearing flash.
type Status struct {
	Phase  Phase
	Frames int
}

func (s Status) String() string {
	switch s.Phase {
	case PhaseActive, PhasePaused, PhasePlacing, PhaseTeleporting:
		return s.Phase.String()
	}
	return fmt.Sprintf("%s(%d)", s.Phase, s.Frames)
}

// TickResult tells the driver what to do after a frame.
type TickResult uint8

const (
	Continue TickResult = iota
	Exit
	NextGame
	PrevGame
)

// String returns a human-readable name for the result.
func (r TickResult) String() string {
	switch r {
	case Continue:
		return "Continue"
	case Exit:
		return "Exit"
	case NextGame:
		return "NextGame"
	case PrevGame:
		return "PrevGame"
	default:
		return "Unknown"
	}
}

// Curtain describes the game-over animation. Raising runs from From to To
// one step per frame, the run is reset at To, and Lowering runs back to
// From before the menu returns.
type Curtain struct {
	From, To int
}

func (c Curtain) step() int {
	return Sign(c.To - c.From)
}

// Rules is what a game plugs into a Lifecycle: everything the shared
// Menu/Paused/Raising/Lowering skeleton cannot decide on its own.
type Rules interface {
	// Step runs one frame of the Active phase (after the escape check)
	// or of a game-specific transient phase.
	Step(l *Lifecycle, in *InputState)

	// ChangeVariant handles menu left (-1) and right (+1).
	ChangeVariant(delta int) error

	// ChangeLevel handles menu down (-1) and up (+1).
	ChangeLevel(delta int)

	// NewGame flushes the best score of the finished run and resets the
	// world for the next one. The reset happens even when the flush fails.
	NewGame() error
}

// resumeIntents leave Paused.
const resumeIntents = IntentDrop | IntentPrimary | IntentSecondary |
	IntentLeft | IntentRight | IntentUp | IntentDown

// Lifecycle is the phase skeleton shared by every game.
type Lifecycle struct {
	status  Status
	curtain Curtain
	rules   Rules
}

// NewLifecycle starts in Menu(0).
func NewLifecycle(curtain Curtain, rules Rules) *Lifecycle {
	return &Lifecycle{
		status:  Status{Phase: PhaseMenu},
		curtain: curtain,
		rules:   rules,
	}
}

// Status returns the current phase and counter.
func (l *Lifecycle) Status() Status {
	return l.status
}

// Curtain returns the game-over animation range.
func (l *Lifecycle) Curtain() Curtain {
	return l.curtain
}

// Is reports whether the lifecycle is in phase p.
func (l *Lifecycle) Is(p Phase) bool {
	return l.status.Phase == p
}

// Enter switches to phase p with the given counter.
func (l *Lifecycle) Enter(p Phase, frames int) {
	l.status = Status{Phase: p, Frames: frames}
}

// GameOver starts the Raising curtain.
func (l *Lifecycle) GameOver() {
	l.Enter(PhaseRaising, l.curtain.From)
}

// Tick runs exactly one frame. Presses the frame did not consume are
// dropped before it returns.
//
// An error comes from a score flush and concerns that frame only: the
// curtain and the menu carry on, and the table retries the write on its
// next update.
func (l *Lifecycle) Tick(in *InputState) (TickResult, error) {
	defer in.EndFrame()

	switch l.status.Phase {
	case PhaseMenu:
		return l.menu(in)

	case PhaseActive:
		if in.Take(IntentEscape) {
			l.Enter(PhasePaused, 0)
			return Continue, nil
		}
		l.rules.Step(l, in)

	case PhasePaused:
		if in.Active(resumeIntents) {
			in.Take(resumeIntents)
			l.Enter(PhaseActive, 0)
		} else if in.Take(IntentEscape) {
			l.GameOver()
		}

	case PhaseRaising:
		if l.status.Frames == l.curtain.To {
			err := l.rules.NewGame()
			l.Enter(PhaseLowering, l.curtain.To)
			return Continue, err
		}
		l.status.Frames += l.curtain.step()

	case PhaseLowering:
		if l.status.Frames == l.curtain.From {
			l.Enter(PhaseMenu, 0)
		} else {
			l.status.Frames -= l.curtain.step()
		}

	default:
		l.rules.Step(l, in)
	}
	return Continue, nil
}

func (l *Lifecycle) menu(in *InputState) (TickResult, error) {
	l.status.Frames = (l.status.Frames + 1) % MenuCycle

	switch {
	case in.Take(IntentEscape):
		return Exit, nil
	case in.Take(IntentNext):
		return NextGame, nil
	case in.Take(IntentPrev):
		return PrevGame, nil
	}

	var errs []error
	if in.Take(IntentRight) {
		errs = append(errs, l.rules.ChangeVariant(1))
	}
	if in.Take(IntentLeft) {
		errs = append(errs, l.rules.ChangeVariant(-1))
	}
	if in.Take(IntentDrop) {
		l.Enter(PhaseActive, 0)
	}
	if in.Take(IntentUp) {
		l.rules.ChangeLevel(1)
	}
	if in.Take(IntentDown) {
		l.rules.ChangeLevel(-1)
	}
	return Continue, errors.Join(errs...)
}
