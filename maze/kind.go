package maze

import "fmt"

// Kind classifies a body in the projected layout. Its String form is the
// label collision handling keys on.
type Kind int

const (
	KindWall Kind = iota + 1
	KindBoundary
	KindGoal
	KindBall
)

func (k Kind) String() string {
	switch k {
	case KindWall:
		return "wall"
	case KindBoundary:
		return "boundary"
	case KindGoal:
		return "goal"
	case KindBall:
		return "ball"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps a label back to its Kind.
func ParseKind(label string) (Kind, error) {
	switch label {
	case "wall":
		return KindWall, nil
	case "boundary":
		return KindBoundary, nil
	case "goal":
		return KindGoal, nil
	case "ball":
		return KindBall, nil
	}
	return 0, fmt.Errorf("maze: unknown kind label %q", label)
}
