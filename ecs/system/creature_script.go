package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/raidercore/ecs"
	"github.com/milk9111/raidercore/ecs/component"
	"github.com/milk9111/raidercore/prefabs"
)

// A brain script defines decide(engine, memory). memory is a map kept
// across frames for that creature. The script may set attack_range to
// override the kind's default.
const brainDispatchScript = `
if __phase == "decide" {
	decide(__engine, __memory)
}
`

type brainRuntime struct {
	scriptPath  string
	compiled    *tengo.Compiled
	memory      *tengo.Map
	attackRange int
}

// ScriptBrain runs tengo creature brains. Compiled scripts are cached per
// entity and dropped when their file changes.
type ScriptBrain struct {
	Log *logrus.Entry
	// Load reads a script by path. It defaults to prefabs.LoadScript.
	Load func(path string) ([]byte, error)

	cache map[ecs.Entity]*brainRuntime
}

func NewScriptBrain(log *logrus.Entry) *ScriptBrain {
	return &ScriptBrain{Log: log, Load: prefabs.LoadScript, cache: map[ecs.Entity]*brainRuntime{}}
}

// Invalidate drops every cached runtime compiled from path so the next
// decision recompiles it.
func (b *ScriptBrain) Invalidate(path string) int {
	n := 0
	want := prefabs.CleanScriptPath(path)
	for e, rt := range b.cache {
		if prefabs.CleanScriptPath(rt.scriptPath) == want {
			delete(b.cache, e)
			n++
		}
	}
	return n
}

// Forget drops the runtime of a destroyed entity.
func (b *ScriptBrain) Forget(e ecs.Entity) { delete(b.cache, e) }

func (b *ScriptBrain) Decide(in BrainInput) (component.Decision, error) {
	p, err := Profile(in.Actor.Kind)
	if err != nil {
		return component.Decision{}, err
	}
	rt, err := b.runtime(in.Entity, in.Creature.Script)
	if err != nil {
		return component.Decision{}, err
	}
	if rt.attackRange > 0 {
		p.AttackRange = rt.attackRange
	}

	d := sense(in, p)
	engine := buildBrainEngine(in, p, &d, b.Log)
	if err := rt.run("decide", engine); err != nil {
		return component.Decision{}, fmt.Errorf("system: brain %s: %w", rt.scriptPath, err)
	}
	if in.Actor.Dead() {
		d.Goal = p.Death
	}
	return d, nil
}

func (b *ScriptBrain) runtime(e ecs.Entity, path string) (*brainRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("system: entity %s has no brain script", e)
	}
	if b.cache == nil {
		b.cache = map[ecs.Entity]*brainRuntime{}
	}
	if rt, ok := b.cache[e]; ok && rt.scriptPath == path {
		return rt, nil
	}

	load := b.Load
	if load == nil {
		load = prefabs.LoadScript
	}
	src, err := load(path)
	if err != nil {
		return nil, fmt.Errorf("system: load brain %s: %w", path, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + brainDispatchScript))
	_ = script.Add("__phase", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__memory", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("system: compile brain %s: %w", path, err)
	}
	rt := &brainRuntime{
		scriptPath: path,
		compiled:   compiled,
		memory:     &tengo.Map{Value: map[string]tengo.Object{}},
	}

	// Evaluate the script's globals once.
	if err := rt.run("noop", nil); err != nil {
		return nil, fmt.Errorf("system: init brain %s: %w", path, err)
	}
	if compiled.IsDefined("attack_range") {
		rt.attackRange = compiled.Get("attack_range").Int()
	}

	b.cache[e] = rt
	return rt, nil
}

func (rt *brainRuntime) run(phase string, engine *tengo.ImmutableMap) error {
	if engine == nil {
		engine = &tengo.ImmutableMap{Value: map[string]tengo.Object{}}
	}
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__memory", rt.memory); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func vecObject(x, y, z int) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Int{Value: int64(x)},
		&tengo.Int{Value: int64(y)},
		&tengo.Int{Value: int64(z)},
	}}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func buildBrainEngine(in BrainInput, p CreatureProfile, d *component.Decision, log *logrus.Entry) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}
	a := in.Actor

	values["set_goal"] = &tengo.UserFunction{Name: "set_goal", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		goal, ok := p.Goal(strings.TrimSpace(objectAsString(args[0])))
		if !ok {
			return tengo.FalseValue, nil
		}
		d.Goal = goal
		return tengo.TrueValue, nil
	}}

	values["set_target"] = &tengo.UserFunction{Name: "set_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 3 {
			return tengo.FalseValue, nil
		}
		var xyz [3]int
		for i := range xyz {
			v, ok := objectToAny(args[i]).(int)
			if !ok {
				return tengo.FalseValue, nil
			}
			xyz[i] = v
		}
		d.Target.X, d.Target.Y, d.Target.Z = xyz[0], xyz[1], xyz[2]
		d.HasTarget = true
		return tengo.TrueValue, nil
	}}

	values["clear_target"] = &tengo.UserFunction{Name: "clear_target", Value: func(args ...tengo.Object) (tengo.Object, error) {
		d.HasTarget = false
		return tengo.TrueValue, nil
	}}

	values["set_mood"] = &tengo.UserFunction{Name: "set_mood", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		switch strings.TrimSpace(objectAsString(args[0])) {
		case "bored":
			d.Mood = component.MoodBored
		case "attack":
			d.Mood = component.MoodAttack
		case "escape":
			d.Mood = component.MoodEscape
		case "stalk":
			d.Mood = component.MoodStalk
		default:
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vecObject(a.Pos.X, a.Pos.Y, a.Pos.Z), nil
	}}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if in.Player == nil {
			return tengo.UndefinedValue, nil
		}
		pp := in.Player.Pos
		return vecObject(pp.X, pp.Y, pp.Z), nil
	}}

	values["distance_to_player"] = &tengo.UserFunction{Name: "distance_to_player", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if in.Player == nil {
			return &tengo.Int{Value: -1}, nil
		}
		return &tengo.Int{Value: int64(d.PlayerDistance)}, nil
	}}

	values["player_ahead"] = &tengo.UserFunction{Name: "player_ahead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(d.Ahead), nil
	}}

	values["player_alive"] = &tengo.UserFunction{Name: "player_alive", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(in.Player != nil && !in.Player.Dead()), nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(a.Health)}, nil
	}}

	values["attack_range"] = &tengo.UserFunction{Name: "attack_range", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(p.AttackRange)}, nil
	}}

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(in.Frame)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if log == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		log.WithField("entity", in.Entity).Debug(objectAsString(args[0]))
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return int(v.Value)
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return v.String()
	}
}
