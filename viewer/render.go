package viewer

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/colornames"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/ecs/system"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/prefabs"
)

// Palette holds the colors of the top-down map. Unset entries fall back
// to named defaults.
type Palette struct {
	Floor, Wall, Slope, Trigger  color.Color
	Player, Creature, Item, Path color.Color
	Active, Heading              color.Color
}

func PaletteFrom(spec *prefabs.ViewerSpec) Palette {
	p := Palette{
		Floor:    colornames.Darkslategray,
		Wall:     colornames.Black,
		Slope:    colornames.Sienna,
		Trigger:  colornames.Seagreen,
		Player:   colornames.Gold,
		Creature: colornames.Crimson,
		Item:     colornames.Steelblue,
		Path:     colornames.Lightgrey,
		Active:   colornames.Lime,
		Heading:  colornames.White,
	}
	if spec == nil {
		return p
	}
	pick := func(dst *color.Color, c prefabs.YAMLColor) {
		if c.Color != nil {
			*dst = c.Color
		}
	}
	pick(&p.Floor, spec.Colors.Floor)
	pick(&p.Wall, spec.Colors.Wall)
	pick(&p.Slope, spec.Colors.Slope)
	pick(&p.Trigger, spec.Colors.Trigger)
	pick(&p.Player, spec.Colors.Player)
	pick(&p.Creature, spec.Colors.Creature)
	pick(&p.Item, spec.Colors.Item)
	pick(&p.Path, spec.Colors.Path)
	return p
}

// RenderSystem draws the level from above: X to the right, Z down the
// screen. Heights are shown by shading only.
type RenderSystem struct {
	Scale   float64
	Palette Palette
	// OffsetX and OffsetY pan the map in screen pixels.
	OffsetX, OffsetY float64
}

func NewRenderSystem(spec *prefabs.ViewerSpec) *RenderSystem {
	scale := 0.06
	if spec != nil && spec.Scale > 0 {
		scale = spec.Scale
	}
	return &RenderSystem{Scale: scale, Palette: PaletteFrom(spec), OffsetX: 16, OffsetY: 48}
}

func (r *RenderSystem) screen(x, z int) (float32, float32) {
	return float32(float64(x)*r.Scale + r.OffsetX), float32(float64(z)*r.Scale + r.OffsetY)
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	ls, ok := ecs.Singleton(w, component.LevelStateComponent.Kind())
	if !ok || ls.Level == nil {
		return
	}

	r.drawSectors(screen, ls.Level)
	r.drawPaths(w, screen, ls.Level)
	r.drawActors(w, screen)
	r.drawItems(w, screen)
	r.drawOverlay(w, screen, ls)
}

func (r *RenderSystem) drawSectors(screen *ebiten.Image, lvl *level.Level) {
	size := float32(float64(common.SectorSize) * r.Scale)
	for _, room := range lvl.Rooms {
		for sx := 0; sx < room.SectorsX; sx++ {
			for sz := 0; sz < room.SectorsZ; sz++ {
				s := &room.Sectors[sx*room.SectorsZ+sz]
				x, y := r.screen(room.X+sx*common.SectorSize, room.Z+sz*common.SectorSize)
				vector.FillRect(screen, x, y, size, size, r.sectorColor(lvl, s), false)
				vector.StrokeRect(screen, x, y, size, size, 1, r.Palette.Wall, false)
			}
		}
	}
}

func (r *RenderSystem) sectorColor(lvl *level.Level, s *level.Sector) color.Color {
	if s.IsWall() {
		return r.Palette.Wall
	}
	if prog, err := lvl.Program(s.FloorData); err == nil {
		switch {
		case prog.Trigger != nil || prog.Death:
			return r.Palette.Trigger
		case prog.FloorSlant != nil:
			return r.Palette.Slope
		}
	}
	return shade(r.Palette.Floor, s.Floor)
}

// shade darkens lower floors. Floors are in clicks with up negative.
func shade(c color.Color, floor int) color.Color {
	rr, gg, bb, aa := c.RGBA()
	f := 1 - 0.08*float64(common.Clamp(floor, -4, 6))
	if f < 0.3 {
		f = 0.3
	}
	scale := func(v uint32) uint8 {
		out := float64(v>>8) * f
		if out > 255 {
			out = 255
		}
		return uint8(out)
	}
	return color.RGBA{R: scale(rr), G: scale(gg), B: scale(bb), A: uint8(aa >> 8)}
}

func (r *RenderSystem) drawPaths(w *ecs.World, screen *ebiten.Image, lvl *level.Level) {
	ecs.ForEach(w, component.CreatureComponent.Kind(), func(_ ecs.Entity, cr *component.Creature) {
		if cr.Finder == nil {
			return
		}
		path := cr.Finder.Path()
		for i := 1; i < len(path); i++ {
			a, b := lvl.Box(path[i-1]), lvl.Box(path[i])
			if a == nil || b == nil {
				continue
			}
			ca, cb := a.Center(), b.Center()
			x1, y1 := r.screen(ca.X, ca.Z)
			x2, y2 := r.screen(cb.X, cb.Z)
			vector.StrokeLine(screen, x1, y1, x2, y2, 2, r.Palette.Path, true)
		}
	})
}

func (r *RenderSystem) drawActors(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.ActorComponent.Kind(), func(e ecs.Entity, a *component.Actor) {
		clr := r.Palette.Creature
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			clr = r.Palette.Player
		}
		x, y := r.screen(a.Pos.X, a.Pos.Z)
		radius := float32(float64(a.Radius) * r.Scale)
		if radius < 3 {
			radius = 3
		}
		vector.FillCircle(screen, x, y, radius, clr, true)

		// Yaw 0 faces +Z, which is down the screen.
		hx := x + float32(a.Yaw.Sin())*radius*2
		hy := y + float32(a.Yaw.Cos())*radius*2
		vector.StrokeLine(screen, x, y, hx, hy, 2, r.Palette.Heading, true)
	})
}

func (r *RenderSystem) drawItems(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.ItemComponent.Kind(), func(e ecs.Entity, it *component.Item) {
		if ecs.Has(w, e, component.ActorComponent.Kind()) || it.Status == component.ItemInvisible {
			return
		}
		x, y := r.screen(it.Pos.X, it.Pos.Z)
		clr := r.Palette.Item
		if it.Active {
			clr = r.Palette.Active
		}
		vector.StrokeRect(screen, x-4, y-4, 8, 8, 2, clr, false)
	})
}

func (r *RenderSystem) drawOverlay(w *ecs.World, screen *ebiten.Image, ls *component.LevelState) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  frame %d  fps %.1f\n", ls.Level.Name, w.Frame(), ebiten.ActualFPS())
	for _, s := range system.Snapshot(w) {
		if !s.Player {
			continue
		}
		fmt.Fprintf(&b, "%s state %d %s[%d]  pos %d,%d,%d  room %d  hp %d\n",
			s.Kind, s.State, s.Clip, s.Frame, s.Pos.X, s.Pos.Y, s.Pos.Z, s.Room, s.Health)
	}
	if cam, ok := ecs.Singleton(w, component.CameraComponent.Kind()); ok && (cam.Fixed >= 0 || cam.Looking) {
		fmt.Fprintf(&b, "camera %d timer %d look %v\n", cam.Fixed, cam.Timer, cam.Looking)
	}
	if ls.Ended {
		b.WriteString("level ended\n")
	}
	if ls.Err != nil {
		fmt.Fprintf(&b, "stopped: %v\n", ls.Err)
	}
	ebitenutil.DebugPrint(screen, b.String())
}
