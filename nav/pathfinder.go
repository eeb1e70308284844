package nav

import (
	"container/heap"
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/level"
)

// PathFinder is what the movement constraint needs to know about a
// creature's route planner.
type PathFinder interface {
	CanVisit(box int) bool
	Step() int
	Drop() int
	Fly() int
	Flying() bool
	ZoneOf(box int) int
	TargetBox() int
}

// Traversal limits how a creature may move between boxes. Drop is negative.
type Traversal struct {
	Step int `yaml:"step"`
	Drop int `yaml:"drop"`
	Fly  int `yaml:"fly"`
}

var (
	Ground = Traversal{Step: common.QuarterSectorSize, Drop: -common.QuarterSectorSize}
	Flyer  = Traversal{Step: 20 * common.QuarterSectorSize, Drop: -20 * common.QuarterSectorSize, Fly: 16}
)

// Finder plans routes over the box graph of a level.
type Finder struct {
	Level     *level.Level
	Traversal Traversal
	// Heavy creatures may enter blocked boxes.
	Heavy bool

	targetBox int
	target    common.Vec3
	path      []int
}

func NewFinder(lvl *level.Level, t Traversal) *Finder {
	return &Finder{Level: lvl, Traversal: t, targetBox: level.NoBox}
}

func (f *Finder) Step() int    { return f.Traversal.Step }
func (f *Finder) Drop() int    { return f.Traversal.Drop }
func (f *Finder) Fly() int     { return f.Traversal.Fly }
func (f *Finder) Flying() bool { return f.Traversal.Fly != 0 }

func (f *Finder) TargetBox() int { return f.targetBox }

// Target is the last position passed to SetTarget.
func (f *Finder) Target() common.Vec3 { return f.target }

// Path is the box route computed by the last Route call.
func (f *Finder) Path() []int { return f.path }

func (f *Finder) zoneKind() level.ZoneKind {
	return level.ZoneFor(f.Traversal.Step, f.Flying())
}

// ZoneOf returns the zone of box for this creature's traversal mode.
func (f *Finder) ZoneOf(box int) int {
	b := f.Level.Box(box)
	if b == nil {
		return -1
	}
	return b.Zone(f.zoneKind(), f.Level.Flipped)
}

func (f *Finder) CanVisit(box int) bool {
	b := f.Level.Box(box)
	if b == nil {
		return false
	}
	return !b.Blocked || f.Heavy
}

// SetTarget aims the finder at pos.
func (f *Finder) SetTarget(pos common.Vec3, room int) {
	f.target = pos
	f.targetBox = f.Level.BoxAt(pos, room)
}

func (f *Finder) passable(from, to *level.Box, toID int) bool {
	if !f.CanVisit(toID) {
		return false
	}
	kind := f.zoneKind()
	if from.Zone(kind, f.Level.Flipped) != to.Zone(kind, f.Level.Flipped) {
		return false
	}
	diff := from.Floor - to.Floor
	return diff <= f.Traversal.Step && diff >= f.Traversal.Drop
}

// Route runs A* from box start to the target box over box overlaps. The
// returned path starts with start and ends with the target box.
func (f *Finder) Route(start int) ([]int, bool) {
	f.path = nil
	goal := f.targetBox
	if f.Level.Box(start) == nil || f.Level.Box(goal) == nil {
		return nil, false
	}
	if start == goal {
		f.path = []int{start}
		return f.path, true
	}

	n := len(f.Level.Boxes)
	cameFrom := make([]int, n)
	gScore := make([]float64, n)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = math.Inf(1)
	}
	gScore[start] = 0

	open := &openSet{}
	heap.Init(open)
	heap.Push(open, &openItem{box: start, f: f.heuristic(start, goal)})

	for open.Len() > 0 {
		cur := heap.Pop(open).(*openItem)
		if cur.box == goal {
			f.path = reconstructPath(cameFrom, start, goal)
			return f.path, true
		}
		if cur.g > gScore[cur.box] {
			continue
		}

		from := f.Level.Box(cur.box)
		for _, next := range from.Overlaps {
			to := f.Level.Box(next)
			if to == nil || !f.passable(from, to, next) {
				continue
			}
			g := gScore[cur.box] + f.heuristic(cur.box, next)
			if g < gScore[next] {
				cameFrom[next] = cur.box
				gScore[next] = g
				heap.Push(open, &openItem{box: next, g: g, f: g + f.heuristic(next, goal)})
			}
		}
	}
	return nil, false
}

// Waypoint returns where a creature in box should head next: the center of
// the next box on the route, or the target itself once in the target box.
func (f *Finder) Waypoint(box int) common.Vec3 {
	if box == f.targetBox || len(f.path) < 2 {
		return f.target
	}
	for i, b := range f.path[:len(f.path)-1] {
		if b == box {
			return f.Level.Box(f.path[i+1]).Center()
		}
	}
	return f.target
}

func (f *Finder) heuristic(a, b int) float64 {
	ca := f.Level.Box(a).Center()
	cb := f.Level.Box(b).Center()
	return cp.Vector{X: float64(ca.X), Y: float64(ca.Z)}.Distance(cp.Vector{X: float64(cb.X), Y: float64(cb.Z)})
}

func reconstructPath(cameFrom []int, start, goal int) []int {
	path := make([]int, 0, 16)
	for cur := goal; cur != -1; cur = cameFrom[cur] {
		path = append(path, cur)
		if cur == start {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type openItem struct {
	box   int
	f     float64
	g     float64
	index int
}

type openSet []*openItem

func (o openSet) Len() int           { return len(o) }
func (o openSet) Less(i, j int) bool { return o[i].f < o[j].f }
func (o openSet) Swap(i, j int) {
	o[i], o[j] = o[j], o[i]
	o[i].index = i
	o[j].index = j
}
func (o *openSet) Push(x any) {
	item := x.(*openItem)
	item.index = len(*o)
	*o = append(*o, item)
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
