package t2048

import "github.com/vovakirdan/tui-2048/internal/core"

// Default animation lengths in ticks.
const (
	DefaultSlideTicks = 8 // ~133ms at 60fps
	DefaultPopTicks   = 6 // ~100ms at 60fps
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	TileID   int
	Value    int     // Value shown while moving (pre-merge)
	From     Pos     // Start cell
	To       Pos     // End cell
	Progress float64 // 0.0 → 1.0
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// animator turns a move's events into slide and pop phases. It is purely
// visual: the engine state is already final when an animation starts, and a
// new move simply replaces whatever is playing.
type animator struct {
	slideTicks int
	popTicks   int

	phase  AnimationPhase
	ticks  int
	moving []TileAnimation

	hidden   map[int]bool // tiles drawn by a moving animation or not yet visible
	halved   map[int]bool // merge survivors shown at their pre-merge value while sliding
	popping  map[int]bool // spawned tiles
	mergedAt map[Pos]bool // cells highlighted after a merge
}

func newAnimator(slideTicks, popTicks int) *animator {
	if slideTicks < 0 {
		slideTicks = 0
	}
	if popTicks < 0 {
		popTicks = 0
	}
	return &animator{slideTicks: slideTicks, popTicks: popTicks}
}

// start begins animating the events of one transition.
func (a *animator) start(events []Event) {
	a.moving = nil
	a.hidden = make(map[int]bool)
	a.halved = make(map[int]bool)
	a.popping = make(map[int]bool)
	a.mergedAt = make(map[Pos]bool)

	for _, ev := range events {
		switch ev.Kind {
		case EventSlide:
			a.moving = append(a.moving, TileAnimation{TileID: ev.TileID, Value: ev.Value, From: ev.From, To: ev.To})
			a.hidden[ev.TileID] = true
		case EventMerge:
			a.moving = append(a.moving, TileAnimation{TileID: ev.RemovedID, Value: ev.Value / 2, From: ev.From, To: ev.To})
			a.halved[ev.TileID] = true
			a.mergedAt[ev.To] = true
		case EventSpawn:
			a.popping[ev.TileID] = true
			a.hidden[ev.TileID] = true
		}
	}

	a.ticks = 0
	switch {
	case len(a.moving) > 0 && a.slideTicks > 0:
		a.phase = PhaseSlide
	case len(a.popping) > 0 && a.popTicks > 0:
		a.enterPop()
	default:
		a.stop()
	}
}

// update advances one tick. Returns true while an animation is in progress.
func (a *animator) update() bool {
	switch a.phase {
	case PhaseSlide:
		a.ticks++
		progress := core.Clamp(float64(a.ticks)/float64(a.slideTicks), 0, 1)
		for i := range a.moving {
			a.moving[i].Progress = progress
		}
		if a.ticks >= a.slideTicks {
			if len(a.popping) > 0 && a.popTicks > 0 {
				a.enterPop()
			} else {
				a.stop()
			}
		}
		return true
	case PhasePop:
		a.ticks++
		if a.ticks >= a.popTicks {
			a.stop()
		}
		return true
	default:
		return false
	}
}

func (a *animator) enterPop() {
	a.phase = PhasePop
	a.ticks = 0
	a.moving = nil
	a.hidden = nil
	a.halved = nil
}

func (a *animator) stop() {
	a.phase = PhaseNone
	a.ticks = 0
	a.moving = nil
	a.hidden = nil
	a.halved = nil
	a.popping = nil
	a.mergedAt = nil
}

// active reports whether any phase is playing.
func (a *animator) active() bool {
	return a.phase != PhaseNone
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// interpolatePosition calculates the current position during animation.
func (t *TileAnimation) interpolatePosition() (row, col float64) {
	p := easeOutQuad(t.Progress)
	row = float64(t.From.Row) + (float64(t.To.Row)-float64(t.From.Row))*p
	col = float64(t.From.Col) + (float64(t.To.Col)-float64(t.From.Col))*p
	return row, col
}
