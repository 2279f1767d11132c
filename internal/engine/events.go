package engine

// Event is something the engine reports to presentation (rendering, audio).
// Events are buffered by the Controller and drained with Controller.Events.
type Event interface {
	engineEvent()
}

// PlayerMoved is emitted when a player move is committed.
type PlayerMoved struct {
	From Cell
	To   Cell
	Dir  Dir
}

func (PlayerMoved) engineEvent() {}

// CreatureMoved is emitted for each committed creature counter-move.
type CreatureMoved struct {
	ID   int
	From Cell
	To   Cell
	Dir  Dir
}

func (CreatureMoved) engineEvent() {}

// CreatureCaptured is emitted when a creature is removed by a trap.
// It always precedes the TrapConsumed for the same cell.
type CreatureCaptured struct {
	ID   int
	Cell Cell
}

func (CreatureCaptured) engineEvent() {}

// TrapConsumed is emitted when a trap is removed after a capture.
type TrapConsumed struct {
	ID   int
	Cell Cell
}

func (TrapConsumed) engineEvent() {}

// PlayerDied is emitted when the player ends a tick on a trap or a creature.
type PlayerDied struct {
	Cell      Cell
	LivesLeft int
}

func (PlayerDied) engineEvent() {}

// LevelCompleted is emitted when the last creature of a level is captured.
type LevelCompleted struct {
	Level int
}

func (LevelCompleted) engineEvent() {}

// LevelLoaded is emitted whenever a level is built, including resets.
type LevelLoaded struct {
	Level   int
	Terrain TerrainGrid
	Objects ObjectGrid
	Reset   bool // true when restored from the snapshot after a death
}

func (LevelLoaded) engineEvent() {}

// GameOver is emitted when the last life is lost.
type GameOver struct {
	Level int
}

func (GameOver) engineEvent() {}

// GameWon is emitted when the final level is completed.
type GameWon struct {
	Level int
}

func (GameWon) engineEvent() {}

// outcomeEvents converts a resolved tick into its ordered event list.
func outcomeEvents(out Outcome) []Event {
	if !out.Moved {
		return nil
	}
	events := make([]Event, 0, 1+len(out.CreatureMoves)+2*len(out.Captures))
	events = append(events, PlayerMoved{From: out.PlayerFrom, To: out.PlayerTo, Dir: out.Dir})
	back := out.Dir.Opposite()
	for _, m := range out.CreatureMoves {
		events = append(events, CreatureMoved{ID: m.ID, From: m.From, To: m.To, Dir: back})
	}
	for _, c := range out.Captures {
		events = append(events, CreatureCaptured{ID: c.CreatureID, Cell: c.Cell})
	}
	for _, c := range out.Captures {
		events = append(events, TrapConsumed{ID: c.TrapID, Cell: c.Cell})
	}
	return events
}
