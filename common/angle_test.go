package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAxisFromAngle(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want Axis
	}{
		{"north", 0, PosZ},
		{"slightly_left", -30, PosZ},
		{"east", 90, PosX},
		{"diagonal_goes_next", 45, PosX},
		{"south", 180, NegZ},
		{"south_negative", -180, NegZ},
		{"west", -90, NegX},
		{"west_wrapped", 270, NegX},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, AxisFromAngle(Deg(tc.deg)))
		})
	}
}

func TestAlignRotation(t *testing.T) {
	got, ok := AlignRotation(Deg(100), Deg(35))
	assert.True(t, ok)
	assert.Equal(t, Deg(90), got)

	got, ok = AlignRotation(Deg(-170), Deg(35))
	assert.True(t, ok)
	assert.Equal(t, Deg(180).Wrap(), got)

	got, ok = AlignRotation(Deg(45), Deg(35))
	assert.False(t, ok)
	assert.Equal(t, Deg(45), got)
}

func TestAlignDiagonal(t *testing.T) {
	assert.Equal(t, Deg(45), AlignDiagonal(Deg(50)))
	assert.Equal(t, Deg(-45), AlignDiagonal(Deg(-40)))
	assert.Equal(t, Angle(0), AlignDiagonal(Deg(10)))
}

func TestDampAngle(t *testing.T) {
	assert.Equal(t, Deg(4), DampAngle(Deg(6), Deg(2)))
	assert.Equal(t, Angle(0), DampAngle(Deg(1), Deg(2)))
	assert.Equal(t, Deg(-4), DampAngle(Deg(-6), Deg(2)))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, Deg(-90), (Deg(180) + Deg(90)).Wrap())
	assert.Equal(t, Deg(10), (FullTurn + Deg(10)).Wrap())
}

func TestSectorMath(t *testing.T) {
	assert.Equal(t, 2, SectorOf(2100))
	assert.Equal(t, -1, SectorOf(-1))
	assert.Equal(t, 52, InSector(2100))
	assert.Equal(t, 1023, InSector(-1))
}
