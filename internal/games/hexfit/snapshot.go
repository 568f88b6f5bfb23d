package hexfit

// Snapshot captures the session state for determinism testing.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	Mode     string
	Phase    string
	Radius   int
	Score    int
	Lines    int
	Turns    int
	Combo    int
	MaxCombo int

	// Cells in layout order: 0 for empty, otherwise the color value.
	Cells []int

	// Tray shape names, "" for an empty slot.
	Tray     [3]string
	Selected int
	CursorQ  int
	CursorR  int
}

// Snapshot returns the current session state.
func (g *Game) Snapshot() Snapshot {
	coords := g.board.Coords()
	cells := make([]int, len(coords))
	for i, c := range coords {
		if cell, _ := g.board.Cell(c); cell.Occupied {
			cells[i] = int(cell.Color)
		}
	}

	var tray [3]string
	for i, s := range g.tray {
		if s.Filled {
			tray[i] = s.Shape.Name()
		}
	}

	return Snapshot{
		Tick:     g.tick,
		Mode:     string(g.mode),
		Phase:    g.phase.String(),
		Radius:   g.board.Radius(),
		Score:    g.score,
		Lines:    g.lines,
		Turns:    g.turns,
		Combo:    g.combo,
		MaxCombo: g.maxCombo,
		Cells:    cells,
		Tray:     tray,
		Selected: g.selected,
		CursorQ:  g.cursor.Q,
		CursorR:  g.cursor.R,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lines) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Turns) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Combo) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Selected)
	h = h*31 + uint64(snap.CursorQ+1000) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.CursorR+1000) //#nosec G115 -- hash computation
	for _, c := range snap.Cells {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	for _, name := range snap.Tray {
		for _, r := range name {
			h = h*31 + uint64(r)
		}
		h = h*31 + 7
	}
	return h
}
