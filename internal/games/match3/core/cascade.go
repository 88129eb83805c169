package core

// Phase is a state of the cascade state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseResolving
	PhaseClearing
	PhaseCollapsing
	PhaseRefilling
)

// String returns the string representation of a phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseResolving:
		return "resolving"
	case PhaseClearing:
		return "clearing"
	case PhaseCollapsing:
		return "collapsing"
	case PhaseRefilling:
		return "refilling"
	default:
		return "unknown"
	}
}

// Cascade is the outcome of resolving a board until it is stable.
type Cascade struct {
	Events  []Event
	Waves   int // Resolving iterations that found at least one match
	Cleared int // Total tiles cleared across all waves
	Score   int // Score after the last wave
}

// Resolver runs the clear/collapse/refill loop and creates new tiles.
type Resolver struct {
	matchCount int
	types      []TileType
	increase   int
	src        Source
	lastID     TileID
}

// NewResolver creates a resolver for the given configuration.
// The config is assumed to be valid.
func NewResolver(cfg Config, src Source) *Resolver {
	types := make([]TileType, len(cfg.Types))
	copy(types, cfg.Types)
	return &Resolver{
		matchCount: cfg.MatchCount,
		types:      types,
		increase:   cfg.IncreaseAmount,
		src:        src,
	}
}

// SeedIDs makes subsequent tiles get IDs above every ID on g.
func (r *Resolver) SeedIDs(g *Grid) {
	for _, s := range g.slots {
		if s.occupied && s.tile.ID > r.lastID {
			r.lastID = s.tile.ID
		}
	}
}

// NewTile creates a tile with a uniformly random type and a fresh ID.
func (r *Resolver) NewTile() Tile {
	r.lastID++
	return Tile{
		ID:   r.lastID,
		Type: r.types[r.src.Intn(len(r.types))],
	}
}

// Fill places a new random tile in every empty cell of g, column by
// column, bottom-up. It returns one Spawned event per tile.
func (r *Resolver) Fill(g *Grid, wave int) []Event {
	var events []Event
	for c := 0; c < g.columns; c++ {
		for row := 0; row < g.rows; row++ {
			i := row*g.columns + c
			if g.slots[i].occupied {
				continue
			}
			t := r.NewTile()
			g.slots[i] = slot{tile: t, occupied: true}
			events = append(events, Spawned{Wave: wave, Cell: At(row, c), Tile: t})
		}
	}
	return events
}

// Resolve repeats detect, clear, collapse and refill on g until no match
// remains. score is the value before the cascade; each wave adds the
// configured increase exactly once.
func (r *Resolver) Resolve(g *Grid, score int) Cascade {
	run := cascadeRun{resolver: r, grid: g, phase: PhaseResolving}
	run.result.Score = score
	for run.phase != PhaseIdle {
		run.step()
	}
	return run.result
}

// cascadeRun holds the state of one Resolve call.
type cascadeRun struct {
	resolver *Resolver
	grid     *Grid
	phase    Phase
	matched  MatchSet
	result   Cascade
}

// step performs the work of the current phase and moves to the next one.
func (c *cascadeRun) step() {
	switch c.phase {
	case PhaseResolving:
		c.matched = FindMatches(c.grid, c.resolver.matchCount)
		if c.matched.Empty() {
			c.phase = PhaseIdle
			return
		}
		c.result.Waves++
		c.phase = PhaseClearing

	case PhaseClearing:
		cells := c.matched.Cells()
		for _, cell := range cells {
			c.grid.slots[c.grid.index(cell)] = slot{}
		}
		c.result.Cleared += len(cells)
		c.emit(Cleared{Wave: c.result.Waves, Cells: cells})
		c.phase = PhaseCollapsing

	case PhaseCollapsing:
		c.collapse()
		c.phase = PhaseRefilling

	case PhaseRefilling:
		for _, ev := range c.resolver.Fill(c.grid, c.result.Waves) {
			c.emit(ev)
		}
		c.result.Score += c.resolver.increase
		c.emit(ScoreChanged{Wave: c.result.Waves, Score: c.result.Score, Delta: c.resolver.increase})
		c.phase = PhaseResolving

	default:
		c.phase = PhaseIdle
	}
}

// collapse slides surviving tiles toward row 0 in every column,
// keeping their relative order.
func (c *cascadeRun) collapse() {
	g := c.grid
	for col := 0; col < g.columns; col++ {
		write := 0
		for row := 0; row < g.rows; row++ {
			from := row*g.columns + col
			s := g.slots[from]
			if !s.occupied {
				continue
			}
			if row != write {
				g.slots[write*g.columns+col] = s
				g.slots[from] = slot{}
				c.emit(Moved{Wave: c.result.Waves, From: At(row, col), To: At(write, col), Tile: s.tile.ID})
			}
			write++
		}
	}
}

func (c *cascadeRun) emit(ev Event) {
	c.result.Events = append(c.result.Events, ev)
}
