package t2048

import "github.com/vovakirdan/tile-arcade/internal/grid"

const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// TileAnimation is one tile in flight.
type TileAnimation struct {
	Value    int
	From     grid.Pos
	To       grid.Pos
	Progress float64 // 0.0 → 1.0
	Merged   bool    // consumed by a merge at To
	IsNew    bool    // spawned tile popping in
}

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// startSlideAnimation animates every traced tile from its old slot to its
// new one. The spawned tile, if any, pops in once the slide is done.
func (g *Game) startSlideAnimation(slides []grid.Slide, spawn *grid.SpawnEvent) {
	g.animations = g.animations[:0]
	for _, s := range slides {
		g.animations = append(g.animations, TileAnimation{
			Value:  s.Value,
			From:   s.From,
			To:     s.To,
			Merged: s.Merged,
		})
	}
	g.pendingNewTile = spawn
	g.animating = true
	g.animationPhase = PhaseSlide
	g.animationTicks = 0
}

func (g *Game) startPopAnimation(ev grid.SpawnEvent) {
	g.animations = []TileAnimation{{
		Value: ev.Value,
		From:  ev.Pos,
		To:    ev.Pos,
		IsNew: true,
	}}
	g.animating = true
	g.animationPhase = PhasePop
	g.animationTicks = 0
}

// updateAnimation advances the animation state.
// Returns true if animation is still in progress.
func (g *Game) updateAnimation() bool {
	if !g.animating {
		return false
	}

	g.animationTicks++

	var duration int
	switch g.animationPhase {
	case PhaseSlide:
		duration = slideAnimationDuration
	case PhasePop:
		duration = popAnimationDuration
	default:
		g.stopAnimation()
		return false
	}

	progress := min(float64(g.animationTicks)/float64(duration), 1.0)
	for i := range g.animations {
		g.animations[i].Progress = progress
	}

	if g.animationTicks >= duration {
		g.finishAnimation()
		return g.animating
	}
	return true
}

// finishAnimation completes the current phase, chaining slide into pop.
func (g *Game) finishAnimation() {
	if g.animationPhase == PhaseSlide && g.pendingNewTile != nil {
		ev := *g.pendingNewTile
		g.pendingNewTile = nil
		g.startPopAnimation(ev)
		return
	}
	g.stopAnimation()
}

func (g *Game) stopAnimation() {
	g.animating = false
	g.animationPhase = PhaseNone
	g.animations = nil
	g.pendingNewTile = nil
	g.animationTicks = 0
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// position returns the fractional (row, col) of the tile at its current progress.
func (a TileAnimation) position() (row, col float64) {
	t := easeOutQuad(a.Progress)
	row = float64(a.From.Row) + float64(a.To.Row-a.From.Row)*t
	col = float64(a.From.Col) + float64(a.To.Col-a.From.Col)*t
	return row, col
}
