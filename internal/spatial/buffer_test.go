package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircleBuffer(t *testing.T) {
	p, err := CircleBuffer(Point{X: 100, Y: 200}, 5.642)
	require.NoError(t, err)
	require.Len(t, p, 1)

	// A 64-gon is a close approximation of the disc area.
	want := math.Pi * 5.642 * 5.642
	assert.InDelta(t, want, p.Area(), want*0.01)

	c := p.Centroid()
	assert.InDelta(t, 100, c.X, 1e-6)
	assert.InDelta(t, 200, c.Y, 1e-6)

	assert.True(t, p.Contains(Point{X: 100, Y: 200}))
	assert.False(t, p.Contains(Point{X: 110, Y: 200}))
}

func TestCircleBufferBadRadius(t *testing.T) {
	_, err := CircleBuffer(Point{}, 0)
	assert.ErrorIs(t, err, ErrBadBuffer)
	_, err = CircleBuffer(Point{}, -1)
	assert.ErrorIs(t, err, ErrBadBuffer)
}

func TestOffsetRing(t *testing.T) {
	square := Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	off, err := OffsetRing(square, 5)
	require.NoError(t, err)

	// Offset square area: side^2 + perimeter*d + pi*d^2.
	want := 100 + 40*5 + math.Pi*25
	assert.InDelta(t, want, off.Area(), want*0.01)
}

func TestRingBuffer(t *testing.T) {
	square := Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	ring, err := RingBuffer(square, 24, 26)
	require.NoError(t, err)
	require.Len(t, ring, 2)

	// Fixed-width annulus: the area difference of the two offsets.
	outer := 100 + 40*26 + math.Pi*26*26
	inner := 100 + 40*24 + math.Pi*24*24
	assert.InDelta(t, outer-inner, ring.Area(), (outer-inner)*0.01)

	// A point 25 units off the pad edge sits inside the ring.
	assert.True(t, ring.Contains(Point{X: 5, Y: -25}))
	// The pad itself and the far field do not.
	assert.False(t, ring.Contains(Point{X: 5, Y: 5}))
	assert.False(t, ring.Contains(Point{X: 5, Y: -40}))
}

func TestRingBufferBadDistances(t *testing.T) {
	square := Ring{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	_, err := RingBuffer(square, 26, 24)
	assert.ErrorIs(t, err, ErrBadBuffer)
	_, err = RingBuffer(square, 0, 26)
	assert.ErrorIs(t, err, ErrBadBuffer)
}
