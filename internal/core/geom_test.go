package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"past bottom-right", 30, 25, false},
		{"last cell", 29, 24, true},
		{"left of rect", 9, 15, false},
		{"above rect", 15, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.x, tt.y))
		})
	}
}

func TestRectInsetAndCenter(t *testing.T) {
	r := NewRect(2, 3, 10, 6)
	assert.Equal(t, NewRect(3, 4, 8, 4), r.Inset(1))
	assert.Equal(t, Rect{X: 5, Y: 6}, NewRect(0, 0, 2, 2).Inset(3), "inset never goes negative")

	x, y := r.Center()
	assert.Equal(t, 7, x)
	assert.Equal(t, 6, y)
}

func TestCenteredRect(t *testing.T) {
	tests := []struct {
		name             string
		screenW, screenH int
		w, h             int
		want             Rect
	}{
		{"fits", 80, 24, 20, 10, NewRect(30, 7, 20, 10)},
		{"odd leftover", 81, 25, 20, 10, NewRect(30, 7, 20, 10)},
		{"larger than screen", 10, 5, 20, 10, NewRect(0, 0, 20, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CenteredRect(tt.screenW, tt.screenH, tt.w, tt.h))
		})
	}
}
