package component

// Input is the movement intent read from the keyboard or a gamepad this
// frame. Each axis is in [-1, 1].
type Input struct {
	MoveX float64
	MoveY float64
}

var InputComponent = NewComponent[Input]()

// PlayerControl lets Input drive an entity's velocity.
type PlayerControl struct {
	Speed float64
}

var PlayerControlComponent = NewComponent[PlayerControl]()
