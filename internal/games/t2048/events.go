package t2048

// EventKind tags a tile event.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventSlide
	EventMerge
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventSpawn:
		return "spawn"
	case EventSlide:
		return "slide"
	case EventMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Event is a discrete tile change produced by a transition. The presenter
// uses events to animate without recomputing grid logic.
//
//	spawn: TileID appears at To with Value.
//	slide: TileID moves From -> To.
//	merge: RemovedID moves From -> To and is absorbed by TileID (the
//	       survivor already at To), which becomes Value.
type Event struct {
	Kind      EventKind
	TileID    int
	RemovedID int
	From      Pos
	To        Pos
	Value     int
}

// SpawnEvent builds a spawn event.
func SpawnEvent(t Tile) Event {
	return Event{Kind: EventSpawn, TileID: t.ID, RemovedID: -1, From: t.Pos(), To: t.Pos(), Value: t.Value}
}

// SlideEvent builds a slide event.
func SlideEvent(t Tile, from Pos) Event {
	return Event{Kind: EventSlide, TileID: t.ID, RemovedID: -1, From: from, To: t.Pos(), Value: t.Value}
}

// MergeEvent builds a merge event.
func MergeEvent(survivor, removed Tile, from Pos) Event {
	return Event{
		Kind:      EventMerge,
		TileID:    survivor.ID,
		RemovedID: removed.ID,
		From:      from,
		To:        survivor.Pos(),
		Value:     survivor.Value,
	}
}
