package anim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/raidercore/anim"
)

const testTable = `
name: test
clips:
  - id: 0
    name: stand
    state: 2
    frames: 4
    next: 0
    changes:
      - {goal: 1, from: 0, to: 3, anim: 1, frame: 0}
      - {goal: 5, from: 2, to: 3, anim: 2, frame: 0}
  - id: 1
    name: run
    state: 1
    frames: 6
    speed: 40
    accel: 2
    next: 1
    changes:
      - {goal: 2, from: 0, to: 5, anim: 0, frame: 0}
    commands:
      - {kind: play_sound, frame: 3, id: 7}
  - id: 2
    name: hop
    state: 5
    frames: 2
    next: 0
    commands:
      - {kind: set_velocity, fall: -40, speed: 20}
      - {kind: play_effect, frame: 1, id: 0}
`

func newAnimator(t *testing.T) *anim.Animator {
	t.Helper()
	table, err := anim.ParseTable([]byte(testTable))
	require.NoError(t, err)
	a, err := anim.NewAnimator(table, 0)
	require.NoError(t, err)
	return a
}

func TestGoalChangeOnNextFrame(t *testing.T) {
	a := newAnimator(t)
	assert.Equal(t, anim.StateID(2), a.State())

	a.Goal = 1
	step, err := a.Advance()
	require.NoError(t, err)
	assert.True(t, step.Changed)
	assert.Equal(t, anim.StateID(1), a.State())
	assert.Equal(t, anim.ID(1), a.Anim)
	assert.Equal(t, 0, a.Frame)
	assert.Equal(t, 40, step.Speed)
}

func TestChangeRespectsFrameRange(t *testing.T) {
	a := newAnimator(t)
	a.Goal = 5

	step, err := a.Advance()
	require.NoError(t, err)
	assert.False(t, step.Changed)
	assert.Equal(t, 1, a.Frame)

	step, err = a.Advance()
	require.NoError(t, err)
	assert.True(t, step.Changed)
	assert.Equal(t, anim.StateID(5), a.State())
}

func TestCommandsAndWrap(t *testing.T) {
	a := newAnimator(t)
	require.NoError(t, a.SetAnimation(2, 0))
	a.Goal = 2

	step, err := a.Advance()
	require.NoError(t, err)
	require.Len(t, step.Commands, 1)
	assert.Equal(t, anim.CommandPlayEffect, step.Commands[0].Kind)
	assert.False(t, step.Ended)

	step, err = a.Advance()
	require.NoError(t, err)
	assert.True(t, step.Ended)
	assert.True(t, step.Changed)
	require.Len(t, step.Commands, 1)
	assert.Equal(t, anim.CommandSetVelocity, step.Commands[0].Kind)
	assert.Equal(t, -40, step.Commands[0].Fall)
	assert.Equal(t, anim.ID(0), a.Anim)
	assert.Equal(t, anim.StateID(2), a.State())
}

func TestRunSpeedAccelerates(t *testing.T) {
	a := newAnimator(t)
	require.NoError(t, a.SetAnimation(1, 0))
	a.Goal = 1

	var sounds []int
	for i := 0; i < 6; i++ {
		step, err := a.Advance()
		require.NoError(t, err)
		for _, c := range step.Commands {
			if c.Kind == anim.CommandPlaySound {
				sounds = append(sounds, c.ID)
			}
		}
		if i == 1 {
			assert.Equal(t, 44, step.Speed)
		}
	}
	assert.Equal(t, []int{7}, sounds)
	assert.Equal(t, 0, a.Frame)
}

func TestRequiredStateWins(t *testing.T) {
	a := newAnimator(t)
	a.Goal = 1
	a.Require(5)

	_, err := a.Advance()
	require.NoError(t, err)
	assert.Equal(t, anim.StateID(2), a.State())

	_, err = a.Advance()
	require.NoError(t, err)
	assert.Equal(t, anim.StateID(5), a.State())

	// hop wraps back to stand, then the normal goal applies again.
	for i := 0; i < 3; i++ {
		_, err = a.Advance()
		require.NoError(t, err)
	}
	assert.Equal(t, anim.StateID(1), a.State())
	assert.False(t, a.RequiredSet)
}

func TestUnknownAnimation(t *testing.T) {
	a := newAnimator(t)
	err := a.SetAnimation(42, 0)
	require.ErrorIs(t, err, anim.ErrUnknownAnimation)

	_, err = anim.ParseTable([]byte(`
name: broken
clips:
  - {id: 0, state: 1, frames: 2, next: 9}
`))
	require.ErrorIs(t, err, anim.ErrUnknownAnimation)
}
