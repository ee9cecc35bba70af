package action

// #region space-type

// SpaceType identifies the discrete action-space shape an encounter uses.
// The trainer reads it to size its policy output; the codec reads it to lay
// out action vectors.
type SpaceType string

const (
	// SpaceBasic is movement, look, jump, attack.
	SpaceBasic SpaceType = "basic"
	// SpaceExtended adds a dash trigger to the basic set.
	SpaceExtended SpaceType = "extended"
)

// #endregion space-type

// #region field-enums

// Move is the horizontal movement field.
type Move int

const (
	MoveNone Move = iota
	MoveLeft
	MoveRight
)

// Look is the vertical look field.
type Look int

const (
	LookNone Look = iota
	LookUp
	LookDown
)

// #endregion field-enums

// #region action

// Action is one resolved agent decision: independent discrete fields applied
// together for a single tick. Dash is meaningful only under SpaceExtended;
// Basic decodes always leave it false.
type Action struct {
	Move   Move
	Look   Look
	Jump   bool
	Attack bool
	Dash   bool
}

// Neutral returns the all-none action (no movement, nothing pressed).
func Neutral() Action {
	return Action{}
}

// #endregion action
