package action

import (
	"reflect"
	"testing"

	"github.com/bossrl/go-bridge/internal/sim"
)

func TestShape(t *testing.T) {
	if got := Shape(SpaceBasic); !reflect.DeepEqual(got, []int{3, 3, 2, 2}) {
		t.Errorf("basic shape: got %v", got)
	}
	if got := Shape(SpaceExtended); !reflect.DeepEqual(got, []int{3, 3, 2, 2, 2}) {
		t.Errorf("extended shape: got %v", got)
	}
}

func TestShapeUnknownPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown space type")
		}
	}()
	Shape(SpaceType("octagonal"))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		space SpaceType
		vec   []int
		want  Action
	}{
		{"neutral-basic", SpaceBasic, []int{0, 0, 0, 0}, Action{}},
		{"left-jump", SpaceBasic, []int{1, 0, 1, 0}, Action{Move: MoveLeft, Jump: true}},
		{"right-down-attack", SpaceBasic, []int{2, 2, 0, 1}, Action{Move: MoveRight, Look: LookDown, Attack: true}},
		{"up-look", SpaceBasic, []int{0, 1, 0, 0}, Action{Look: LookUp}},
		{"extended-dash", SpaceExtended, []int{1, 0, 0, 1, 1}, Action{Move: MoveLeft, Attack: true, Dash: true}},
		{"extended-no-dash", SpaceExtended, []int{0, 0, 1, 0, 0}, Action{Jump: true}},

		// Malformed vectors fall back to neutral instead of failing the tick.
		{"nil-vector", SpaceBasic, nil, Action{}},
		{"too-short", SpaceBasic, []int{1, 1}, Action{}},
		{"too-long", SpaceBasic, []int{1, 1, 1, 1, 1}, Action{}},
		{"extended-basic-length", SpaceExtended, []int{1, 0, 0, 1}, Action{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.space, tt.vec); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	actions := []Action{
		{},
		{Move: MoveRight, Jump: true},
		{Move: MoveLeft, Look: LookDown, Attack: true},
		{Look: LookUp, Jump: true, Attack: true, Dash: true},
	}
	for _, space := range []SpaceType{SpaceBasic, SpaceExtended} {
		for _, a := range actions {
			vec := Encode(space, a)
			if len(vec) != len(Shape(space)) {
				t.Fatalf("%s encode length %d", space, len(vec))
			}
			want := a
			if space == SpaceBasic {
				want.Dash = false // basic space cannot carry dash
			}
			if got := Decode(space, vec); got != want {
				t.Errorf("%s round trip: got %+v, want %+v", space, got, want)
			}
		}
	}
}

func TestControlState(t *testing.T) {
	a := Action{Move: MoveLeft, Look: LookDown, Jump: true, Dash: true}

	tests := []struct {
		name    string
		space   SpaceType
		control sim.Control
		pressed bool
		ok      bool
	}{
		{"left-pressed", SpaceBasic, sim.ControlLeft, true, true},
		{"right-released", SpaceBasic, sim.ControlRight, false, true},
		{"down-pressed", SpaceBasic, sim.ControlDown, true, true},
		{"up-released", SpaceBasic, sim.ControlUp, false, true},
		{"jump-pressed", SpaceBasic, sim.ControlJump, true, true},
		{"attack-released", SpaceBasic, sim.ControlAttack, false, true},
		{"dash-unrecognized-basic", SpaceBasic, sim.ControlDash, false, false},
		{"dash-pressed-extended", SpaceExtended, sim.ControlDash, true, true},
		{"unknown-control", SpaceExtended, sim.Control("grapple"), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pressed, ok := ControlState(tt.space, a, tt.control)
			if pressed != tt.pressed || ok != tt.ok {
				t.Errorf("got (%v, %v), want (%v, %v)", pressed, ok, tt.pressed, tt.ok)
			}
		})
	}
}

func TestControlsMapCoverage(t *testing.T) {
	basic := Controls(SpaceBasic, Neutral())
	if len(basic) != 6 {
		t.Errorf("basic map covers %d controls, want 6", len(basic))
	}
	if _, ok := basic[sim.ControlDash]; ok {
		t.Error("basic map should not cover dash")
	}
	extended := Controls(SpaceExtended, Neutral())
	if len(extended) != 7 {
		t.Errorf("extended map covers %d controls, want 7", len(extended))
	}
}
