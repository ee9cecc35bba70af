package action

// #region imports
import (
	"fmt"
	"log"

	"github.com/bossrl/go-bridge/internal/sim"
)

// #endregion

// #region shape

// Shape returns the per-field cardinalities for a space type, in vector
// order: move, look, jump, attack[, dash]. An unrecognized type is a
// configuration error upstream, not a runtime condition, so it panics.
func Shape(t SpaceType) []int {
	switch t {
	case SpaceBasic:
		return []int{3, 3, 2, 2}
	case SpaceExtended:
		return []int{3, 3, 2, 2, 2}
	default:
		panic(fmt.Sprintf("action: unknown space type %q", t))
	}
}

// #endregion shape

// #region decode

// Decode maps a trainer-emitted discrete vector onto an Action. A nil or
// wrong-length vector is logged and yields the neutral action so the tick
// survives. Field values inside the vector are trusted positionally; the
// trainer's policy output already respects each field's cardinality.
func Decode(t SpaceType, vec []int) Action {
	shape := Shape(t)
	if len(vec) != len(shape) {
		log.Printf("[ACTION] bad action vector length %d for %s space (want %d), using neutral", len(vec), t, len(shape))
		return Neutral()
	}

	a := Action{
		Move:   Move(vec[0]),
		Look:   Look(vec[1]),
		Jump:   vec[2] != 0,
		Attack: vec[3] != 0,
	}
	if t == SpaceExtended {
		a.Dash = vec[4] != 0
	}
	return a
}

// #endregion decode

// #region encode

// Encode is the inverse of Decode. It always succeeds and the result length
// always matches Shape(t).
func Encode(t SpaceType, a Action) []int {
	vec := make([]int, len(Shape(t)))
	vec[0] = int(a.Move)
	vec[1] = int(a.Look)
	if a.Jump {
		vec[2] = 1
	}
	if a.Attack {
		vec[3] = 1
	}
	if t == SpaceExtended && a.Dash {
		vec[4] = 1
	}
	return vec
}

// #endregion encode

// #region control-state

// ControlState resolves the pressed-state a named control should report
// under the given action. The second return is false when the space type
// does not cover the control (dash under Basic, or an unknown name); the
// caller then falls through to its default input handling.
func ControlState(t SpaceType, a Action, c sim.Control) (bool, bool) {
	switch c {
	case sim.ControlLeft:
		return a.Move == MoveLeft, true
	case sim.ControlRight:
		return a.Move == MoveRight, true
	case sim.ControlUp:
		return a.Look == LookUp, true
	case sim.ControlDown:
		return a.Look == LookDown, true
	case sim.ControlJump:
		return a.Jump, true
	case sim.ControlAttack:
		return a.Attack, true
	case sim.ControlDash:
		if t != SpaceExtended {
			return false, false
		}
		return a.Dash, true
	default:
		return false, false
	}
}

// Controls returns the full override map for an action, covering every
// control the space type recognizes.
func Controls(t SpaceType, a Action) map[sim.Control]bool {
	all := []sim.Control{
		sim.ControlLeft, sim.ControlRight, sim.ControlUp, sim.ControlDown,
		sim.ControlJump, sim.ControlAttack, sim.ControlDash,
	}
	states := make(map[sim.Control]bool)
	for _, c := range all {
		if pressed, ok := ControlState(t, a, c); ok {
			states[c] = pressed
		}
	}
	return states
}

// #endregion control-state
