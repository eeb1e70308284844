package system

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/common"
	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/level"
	"github.com/milk9111/raidercore/trigger"
)

// ItemEnv is what item updates may touch besides their own components.
type ItemEnv struct {
	Level *level.Level
	// Dispatch runs the doppelganger pass on the sector under pos.
	Dispatch func(pos common.Vec3, room int) error
	Log      *logrus.Entry
}

// Updater is an item with per-frame behaviour of its own.
type Updater interface {
	Update(env *ItemEnv) error
}

// Interactor is an item the player can use. Interact reports whether it
// took over the player this frame.
type Interactor interface {
	Interact(ctx *component.StateContext) bool
}

// itemBehaviour returns the behaviour value for an item entity, or nil for
// plain items.
func itemBehaviour(w *ecs.World, e ecs.Entity) any {
	item, ok := ecs.Get(w, e, component.ItemComponent.Kind())
	if !ok {
		return nil
	}
	if sw, ok := ecs.Get(w, e, component.SwitchComponent.Kind()); ok {
		return switchItem{item: item, sw: sw}
	}
	if d, ok := ecs.Get(w, e, component.DoorComponent.Kind()); ok {
		return doorItem{item: item, door: d}
	}
	if b, ok := ecs.Get(w, e, component.BlockComponent.Kind()); ok {
		return blockItem{item: item, block: b}
	}
	if p, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok {
		return pickupItem{item: item, pickup: p}
	}
	return nil
}

// interactZone is a box in an item's local frame, X to its right and Z
// along its yaw, plus how far the player's yaw may be off.
type interactZone struct {
	X, Z common.Interval
	Y    int
	Yaw  common.Angle
}

var (
	switchZone = interactZone{
		X:   common.Interval{Min: -200, Max: 200},
		Z:   common.Interval{Min: -512, Max: -200},
		Y:   100,
		Yaw: common.Deg(30),
	}
	pickupZone = interactZone{
		X: common.Interval{Min: -256, Max: 256},
		Z: common.Interval{Min: -256, Max: 100},
		Y: 100,
	}
	blockZone = interactZone{
		X:   common.Interval{Min: -300, Max: 200},
		Z:   common.Interval{Min: -692, Max: -512},
		Yaw: common.Deg(30),
	}
)

func (z interactZone) admits(a *component.Actor, pos common.Vec3, yaw common.Angle) bool {
	if (a.Yaw - yaw).Wrap().Abs() > z.Yaw {
		return false
	}
	d := a.Pos.Sub(pos)
	if common.Abs(d.Y) > z.Y {
		return false
	}
	s, c := yaw.Sin(), yaw.Cos()
	lz := int(math.Round(float64(d.X)*s + float64(d.Z)*c))
	lx := int(math.Round(float64(d.X)*c - float64(d.Z)*s))
	return z.X.Contains(lx) && z.Z.Contains(lz)
}

// canUse is the common gate of the stand-and-press interactions.
func canUse(ctx *component.StateContext) bool {
	a := ctx.Actor
	return ctx.State() == LaraStop &&
		ctx.Input.Has(component.ButtonAction) &&
		a.Hands == common.HandFree &&
		!a.Falling
}

type switchItem struct {
	item *component.Item
	sw   *component.Switch
}

func (s switchItem) Interact(ctx *component.StateContext) bool {
	if s.item.Status == component.ItemInvisible || !canUse(ctx) {
		return false
	}
	a := ctx.Actor
	if !switchZone.admits(a, s.item.Pos, s.item.Yaw) {
		return false
	}
	clip := animSwitchDown
	if s.sw.On {
		clip = animSwitchUp
	}
	ctx.SetAnimation(clip, 0)
	ctx.SetGoal(LaraStop)
	s.sw.On = !s.sw.On
	s.sw.Pulled = true
	a.Hands = common.HandBusy
	a.Yaw = s.item.Yaw
	a.MoveAngle = a.Yaw
	a.Speed = 0
	return true
}

// Update runs the reset timer of a timed switch.
func (s switchItem) Update(*ItemEnv) error {
	if s.sw.Timer <= 0 {
		return nil
	}
	s.sw.Timer--
	if s.sw.Timer == 0 {
		s.sw.On = false
	}
	return nil
}

// triggerActive reports whether an activated object should still act and
// counts its timeout down. A timeout of -1 marks one that ran out.
func triggerActive(st *trigger.Activation) bool {
	if !st.Mask.Full() {
		return false
	}
	switch st.Timeout {
	case 0:
		return true
	case -1:
		return false
	}
	st.Timeout--
	if st.Timeout == 0 {
		st.Timeout = -1
	}
	return true
}

type doorItem struct {
	item *component.Item
	door *component.Door
}

func (d doorItem) Update(env *ItemEnv) error {
	if !d.item.Active {
		return nil
	}
	open := triggerActive(&d.item.Activation)
	if open == d.door.Open {
		return nil
	}
	d.door.Open = open
	d.item.Status = component.ItemActive
	if !open {
		d.item.Status = component.ItemDeactivated
	}
	if !d.door.Blocks {
		return nil
	}
	height := -common.SectorSize
	if open {
		height = common.SectorSize
	}
	if err := env.Level.PatchHeightsForBlock(d.item.Pos, d.item.Room, height); err != nil {
		return fmt.Errorf("system: door %d: %w", d.item.Index, err)
	}
	return nil
}

type pickupItem struct {
	item   *component.Item
	pickup *component.Pickup
}

func (p pickupItem) Interact(ctx *component.StateContext) bool {
	if p.pickup.Collected || p.item.Status == component.ItemInvisible || !canUse(ctx) {
		return false
	}
	a := ctx.Actor
	if !pickupZone.admits(a, p.item.Pos, a.Yaw) {
		return false
	}
	ctx.SetAnimation(animPickUp, 0)
	ctx.SetGoal(LaraStop)
	a.Hands = common.HandBusy
	a.Speed = 0
	p.pickup.Collected = true
	p.item.Status = component.ItemInvisible
	return true
}

// blockStep is how far a block moves per frame; a move takes as many
// frames as the push clip.
const blockStep = 32

type blockItem struct {
	item  *component.Item
	block *component.Block
}

func (b blockItem) Interact(ctx *component.StateContext) bool {
	a := ctx.Actor
	if b.block.Moving || a.Falling || a.Pos.Y != b.item.Pos.Y || !ctx.Input.Has(component.ButtonAction) {
		return false
	}
	axis := common.AxisFromAngle(a.Yaw)
	yaw := axis.Angle()

	switch ctx.State() {
	case LaraStop:
		if ctx.Input.Forward() || ctx.Input.Backward() || a.Hands != common.HandFree {
			return false
		}
		if !blockZone.admits(a, b.item.Pos, yaw) {
			return false
		}
		b.item.Yaw = yaw
		a.Yaw, a.MoveAngle = yaw, yaw
		a.Speed = 0
		snapToSectorEdge(a, axis)
		ctx.SetAnimation(animPPReady, 0)
		ctx.SetGoal(LaraPPReady)
		a.Hands = common.HandBusy
		return true

	case LaraPPReady:
		if !blockZone.admits(a, b.item.Pos, b.item.Yaw) {
			return false
		}
		lvl := ctx.Level
		switch {
		case ctx.Input.Forward() && b.canPush(lvl, axis):
			ctx.SetAnimation(animPush, 0)
			b.start(axis, false)
		case ctx.Input.Backward() && b.canPull(lvl, axis):
			ctx.SetAnimation(animPull, 0)
			b.start(axis, true)
		default:
			return false
		}
		ctx.SetGoal(LaraPPReady)
		if err := lvl.PatchHeightsForBlock(b.item.Pos, b.item.Room, common.SectorSize); err != nil && ctx.Log != nil {
			ctx.Log.WithError(err).WithField("item", b.item.Index).Error("block lift")
		}
		return true
	}
	return false
}

// snapToSectorEdge puts the actor 100 units short of the sector boundary
// it faces.
func snapToSectorEdge(a *component.Actor, axis common.Axis) {
	base := func(v int) int { return common.SectorOf(v) * common.SectorSize }
	switch axis {
	case common.PosZ:
		a.Pos.Z = base(a.Pos.Z) + common.SectorSize - common.DefaultCollisionRadius
	case common.PosX:
		a.Pos.X = base(a.Pos.X) + common.SectorSize - common.DefaultCollisionRadius
	case common.NegZ:
		a.Pos.Z = base(a.Pos.Z) + common.DefaultCollisionRadius
	case common.NegX:
		a.Pos.X = base(a.Pos.X) + common.DefaultCollisionRadius
	}
}

func axisStep(axis common.Axis, n int) (dx, dz int) {
	switch axis {
	case common.PosZ:
		return 0, n
	case common.PosX:
		return n, 0
	case common.NegZ:
		return 0, -n
	}
	return -n, 0
}

func (b blockItem) start(axis common.Axis, pull bool) {
	b.block.Moving = true
	b.block.Pull = pull
	b.block.Dir = axis
	b.block.Remaining = common.SectorSize
	if b.block.Step <= 0 {
		b.block.Step = blockStep
	}
	b.block.Start = b.item.Pos
	b.item.Active = true
	b.item.Status = component.ItemActive
}

// onFloor reports whether the block still sits in its raised sector.
func (b blockItem) onFloor(lvl *level.Level) bool {
	f := lvl.FloorAt(b.item.Pos, b.item.Room)
	return f.IsWall() || f.Y == b.item.Pos.Y-common.SectorSize
}

// clearAt reports whether a block-sized space stands level with y at pos.
func clearAt(lvl *level.Level, pos common.Vec3, room, height int) bool {
	if f := lvl.FloorAt(pos, room); f.IsWall() || f.Y != pos.Y {
		return false
	}
	c := lvl.CeilingAt(pos.Moved(0, -height, 0), room)
	return !c.IsWall() && pos.Y-height >= c.Y
}

func (b blockItem) canPush(lvl *level.Level, axis common.Axis) bool {
	if !b.onFloor(lvl) {
		return false
	}
	dx, dz := axisStep(axis, common.SectorSize)
	return clearAt(lvl, b.item.Pos.Moved(dx, 0, dz), b.item.Room, common.SectorSize)
}

// canPull checks the sector the block moves into and the one the player
// backs into.
func (b blockItem) canPull(lvl *level.Level, axis common.Axis) bool {
	if !b.onFloor(lvl) {
		return false
	}
	dx, dz := axisStep(axis, -common.SectorSize)
	into := b.item.Pos.Moved(dx, 0, dz)
	if !clearAt(lvl, into, b.item.Room, common.SectorSize) {
		return false
	}
	return clearAt(lvl, into.Moved(dx, 0, dz), b.item.Room, common.ScalpHeight)
}

func (b blockItem) Update(env *ItemEnv) error {
	b.block.Settled = false
	if !b.block.Moving {
		return nil
	}
	n := common.Clamp(b.block.Step, 0, b.block.Remaining)
	if b.block.Pull {
		n = -n
	}
	dx, dz := axisStep(b.block.Dir, n)
	b.item.Pos = b.item.Pos.Moved(dx, 0, dz)
	b.block.Remaining -= common.Abs(n)
	if _, room, ok := env.Level.Locate(b.item.Pos, b.item.Room); ok {
		b.item.Room = room
	}
	if b.block.Remaining > 0 {
		return nil
	}

	b.block.Moving = false
	b.block.Settled = true
	b.item.Active = false
	b.item.Status = component.ItemDeactivated
	if err := env.Level.PatchHeightsForBlock(b.item.Pos, b.item.Room, -common.SectorSize); err != nil {
		return fmt.Errorf("system: block %d: %w", b.item.Index, err)
	}
	if env.Dispatch != nil {
		return env.Dispatch(b.item.Pos, b.item.Room)
	}
	return nil
}
