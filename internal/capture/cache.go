package capture

// #region frame

// Frame is one downscaled grayscale capture, pixels row-major in [0,1].
type Frame struct {
	Pixels []float64
	Width  int
	Height int
}

// #endregion frame

// #region cache

// Cache holds the auxiliary visual buffer for hybrid encounters. The
// external capture step pushes frames in; the core only ever reads, and the
// frame it reads is the one pushed on the previous tick. Everything runs on
// the single tick loop, so there is no locking here.
type Cache struct {
	current Frame
	pending Frame
	hasCur  bool
	hasNext bool
}

// NewCache returns an empty cache; Latest reports absent until two pushes
// have happened.
func NewCache() *Cache {
	return &Cache{}
}

// Push stores the frame captured this tick. It becomes visible to Latest
// after the next Push (one-tick delay).
func (c *Cache) Push(f Frame) {
	if c.hasNext {
		c.current = c.pending
		c.hasCur = true
	}
	c.pending = f
	c.hasNext = true
}

// Latest returns the most recent visible frame. The second return is false
// whenever no frame is available; callers must tolerate that on any tick.
func (c *Cache) Latest() (Frame, bool) {
	if !c.hasCur {
		return Frame{}, false
	}
	return c.current, true
}

// Clear drops all buffered frames (used across episode resets).
func (c *Cache) Clear() {
	*c = Cache{}
}

// #endregion cache
