package rain

import (
	"fmt"
	"maps"
	"math/rand/v2"
	"slices"
	"time"
)

// SpawnPolicy selects how many streams a tick creates.
type SpawnPolicy int

const (
	// SpawnLiteral builds two streams under the same id before incrementing
	// it once, so the second replaces the first. Net effect: one new stream
	// per tick, with the randomness of two.
	SpawnLiteral SpawnPolicy = iota
	// SpawnSingle builds exactly one stream per tick.
	SpawnSingle
)

func (p SpawnPolicy) String() string {
	switch p {
	case SpawnLiteral:
		return "literal"
	case SpawnSingle:
		return "single"
	default:
		return fmt.Sprintf("SpawnPolicy(%d)", int(p))
	}
}

// ParseSpawnPolicy maps "literal" or "single" to a policy.
func ParseSpawnPolicy(s string) (SpawnPolicy, error) {
	switch s {
	case "literal", "":
		return SpawnLiteral, nil
	case "single":
		return SpawnSingle, nil
	}
	return 0, fmt.Errorf("rain: unknown spawn policy %q", s)
}

type Option func(*Engine)

// WithSeed makes stream placement reproducible. Seed 0 keeps the time-based default.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		if seed != 0 {
			e.rng = rand.New(rand.NewPCG(seed, seed>>32|1))
		}
	}
}

func WithSpawnPolicy(p SpawnPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// Engine owns the live streams and the frame they are drawn into.
type Engine struct {
	cols, rows int
	streams    map[int]*Stream
	nextID     int
	rng        *rand.Rand
	policy     SpawnPolicy
	frame      *Frame
	retired    []int
}

func New(cols, rows int, opts ...Option) *Engine {
	now := uint64(time.Now().UnixNano())
	e := &Engine{
		streams: make(map[int]*Stream),
		rng:     rand.New(rand.NewPCG(now, now>>17)),
		policy:  SpawnLiteral,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.setSize(cols, rows)
	return e
}

func (e *Engine) setSize(cols, rows int) {
	e.cols, e.rows = max(cols, 0), max(rows, 0)
	e.frame = NewFrame(e.cols, e.rows)
}

func (e *Engine) Size() (cols, rows int) { return e.cols, e.rows }

func (e *Engine) Policy() SpawnPolicy { return e.policy }

// NextID is the id the next spawned stream will receive.
func (e *Engine) NextID() int { return e.nextID }

func (e *Engine) Len() int { return len(e.streams) }

// Streams returns a copy of the live streams ordered by id.
func (e *Engine) Streams() []Stream {
	out := make([]Stream, 0, len(e.streams))
	for _, id := range e.ids() {
		out = append(out, *e.streams[id])
	}
	return out
}

func (e *Engine) ids() []int {
	return slices.Sorted(maps.Keys(e.streams))
}

func (e *Engine) newStream(id int) *Stream {
	return &Stream{
		ID:     id,
		Row:    0,
		Col:    e.rng.IntN(e.cols),
		Length: MinLength + e.rng.IntN(MaxLength-MinLength),
		Speed:  MinSpeed + e.rng.Float64()*(MaxSpeed-MinSpeed),
	}
}

// Spawn adds the tick's new stream at the top row and returns how many
// streams were constructed. Nothing is spawned on a zero-sized screen.
func (e *Engine) Spawn() int {
	if e.cols == 0 || e.rows == 0 {
		return 0
	}
	built := 1
	if e.policy == SpawnLiteral {
		e.streams[e.nextID] = e.newStream(e.nextID)
		built++
	}
	e.streams[e.nextID] = e.newStream(e.nextID)
	e.nextID++
	return built
}

// Resize adopts new bounds and drops every live stream, since their columns
// and rows may no longer fit.
func (e *Engine) Resize(cols, rows int) {
	clear(e.streams)
	e.retired = e.retired[:0]
	e.setSize(cols, rows)
}

// Advance moves every stream down by its speed and draws the survivors into
// the frame. Streams whose trail has left the screen are queued for Cleanup
// and not drawn. Streams are visited by ascending id, so on a collision the
// newest stream's glyph wins.
func (e *Engine) Advance() *Frame {
	e.frame.Clear()
	e.retired = e.retired[:0]
	for _, id := range e.ids() {
		s := e.streams[id]
		s.Row += s.Speed
		if s.Gone(e.rows) {
			e.retired = append(e.retired, id)
			continue
		}
		head := s.Head()
		e.frame.MarkHead(s.Col, head)
		for j := range s.Length {
			row := head - j
			if row < 0 || row >= e.rows {
				continue
			}
			e.frame.Set(s.Col, row, Glyph(id, s.Col, row))
		}
	}
	return e.frame
}

// Pending returns the ids queued for removal by the last Advance.
func (e *Engine) Pending() []int {
	return slices.Clone(e.retired)
}

// Cleanup removes the streams retired by the last Advance.
func (e *Engine) Cleanup() int {
	n := len(e.retired)
	for _, id := range e.retired {
		delete(e.streams, id)
	}
	e.retired = e.retired[:0]
	return n
}

// Tick runs spawn, advance and cleanup with no input in between.
func (e *Engine) Tick() (*Frame, int) {
	e.Spawn()
	f := e.Advance()
	return f, e.Cleanup()
}

// Inject adds a stream with explicit geometry under the next id. The column
// must lie inside the screen and the length must be at least MinLength.
func (e *Engine) Inject(col, length int, speed float64) (int, error) {
	if col < 0 || col >= e.cols {
		return 0, fmt.Errorf("rain: column %d outside [0,%d)", col, e.cols)
	}
	if length < MinLength {
		return 0, fmt.Errorf("rain: length %d below %d", length, MinLength)
	}
	if speed <= 0 {
		return 0, fmt.Errorf("rain: speed %g must be positive", speed)
	}
	id := e.nextID
	e.streams[id] = &Stream{ID: id, Col: col, Length: length, Speed: speed}
	e.nextID++
	return id, nil
}
