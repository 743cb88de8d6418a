package physics

// Space collects the bodies of one tick and answers overlap queries against
// them. Dynamic bodies go through the spatial grid; static bodies (long
// boundaries that would span many cells) are checked linearly.
type Space struct {
	grid    *SpatialGrid
	dynamic []*Body
	static  []*Body
}

// NewSpace covers the given region. cellSize must be at least the largest
// overlap distance between a queried body and a dynamic body.
func NewSpace(minX, minY, maxX, maxY, cellSize float64) *Space {
	return &Space{grid: NewSpatialGrid(minX, minY, maxX, maxY, cellSize)}
}

// AddStatic registers a body that stays for the life of the space.
func (s *Space) AddStatic(b *Body) {
	s.static = append(s.static, b)
}

// Begin clears dynamic bodies for a new tick.
func (s *Space) Begin() {
	s.grid.Clear()
	s.dynamic = s.dynamic[:0]
}

// Add registers a dynamic body for the current tick.
func (s *Space) Add(b *Body) {
	s.grid.Insert(b.X, b.Y, len(s.dynamic))
	s.dynamic = append(s.dynamic, b)
}

// Contacts calls fn for every body overlapping subject, statics first.
// Iteration stops when fn returns true.
func (s *Space) Contacts(subject *Body, fn func(other *Body) bool) {
	if !subject.Simulated {
		return
	}
	for _, b := range s.static {
		if b != subject && Overlaps(subject, b) {
			if fn(b) {
				return
			}
		}
	}
	s.grid.QueryAround(subject.X, subject.Y, func(i int) bool {
		b := s.dynamic[i]
		if b == subject || !Overlaps(subject, b) {
			return false
		}
		return fn(b)
	})
}
