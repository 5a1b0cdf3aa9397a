package domain

import (
	"fmt"
	"strings"
	"time"
)

// Matrix bounds. Positions outside [MinPosition, MaxPosition] are clamped.
const (
	MinPosition     = -50
	MaxPosition     = 800
	DefaultPosition = 260

	// MatrixMidpoint splits both axes into the four quadrants.
	MatrixMidpoint = 260
)

// UntitledIdea stands in for a blank title on imported rows.
const UntitledIdea = "Untitled idea"

type Idea struct {
	ID        string
	ProjectID string
	Content   string
	Details   string
	Priority  Priority
	X         int
	Y         int
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClampPosition bounds v to the matrix range.
func ClampPosition(v int) int {
	if v < MinPosition {
		return MinPosition
	}
	if v > MaxPosition {
		return MaxPosition
	}
	return v
}

// Normalize applies the record invariants: a known priority and clamped
// coordinates. It trims surrounding whitespace from the title.
func (i *Idea) Normalize() {
	i.Content = strings.TrimSpace(i.Content)
	i.Priority = ParsePriority(string(i.Priority))
	i.X = ClampPosition(i.X)
	i.Y = ClampPosition(i.Y)
}

// Validate checks the fields a user must supply.
func (i *Idea) Validate() error {
	if strings.TrimSpace(i.Content) == "" {
		return fmt.Errorf("idea title is required")
	}
	if i.ProjectID == "" {
		return fmt.Errorf("idea must belong to a project")
	}
	return nil
}

// MoveTo repositions the idea on the matrix, clamping both axes.
func (i *Idea) MoveTo(x, y int, now time.Time) {
	i.X = ClampPosition(x)
	i.Y = ClampPosition(y)
	i.UpdatedAt = now
}

// Quadrant reports which matrix quadrant the idea sits in. The horizontal
// axis is effort (left is low), the vertical axis is value (top is high).
func (i *Idea) Quadrant() Quadrant {
	lowEffort := i.X < MatrixMidpoint
	highValue := i.Y < MatrixMidpoint
	switch {
	case lowEffort && highValue:
		return QuadrantQuickWins
	case highValue:
		return QuadrantStrategic
	case lowEffort:
		return QuadrantReconsider
	default:
		return QuadrantAvoid
	}
}
