package frame

// Compositor softens visual cuts by crossfading each new frame with the
// previous source frame: out = cur*alpha + prev*(1-alpha), with alpha
// ramping linearly from 1/window to 1 over the first window frames after a
// cut. Past the ramp it passes frames through unchanged. Inputs are never
// mutated; Blend always returns a fresh Frame so prior state stays
// inspectable.
//
// The upstream behavior this replaces blended a frame with itself, which is
// an identity once alpha saturates; blending against the genuinely previous
// frame gives an actual anti-pop dissolve with the same contract shape.
type Compositor struct {
	window int
	prev   *Frame
	pos    int
}

// NewCompositor creates a compositor whose alpha ramp spans window frames.
func NewCompositor(window int) *Compositor {
	if window < 1 {
		window = 1
	}
	return &Compositor{window: window}
}

// Reset marks a cut: the next Blend starts a new ramp with no prior frame.
func (c *Compositor) Reset() {
	c.prev = nil
	c.pos = 0
}

// Blend returns the transition-composited version of cur.
func (c *Compositor) Blend(cur *Frame) *Frame {
	defer func() {
		c.prev = cur
		c.pos++
	}()

	if c.prev == nil || c.pos >= c.window || len(c.prev.Pix) != len(cur.Pix) {
		return cur.Clone()
	}

	alpha := float64(c.pos+1) / float64(c.window)
	if alpha > 1 {
		alpha = 1
	}

	out := New(cur.Width, cur.Height)
	out.Index = cur.Index
	for i := range cur.Pix {
		v := float64(cur.Pix[i])*alpha + float64(c.prev.Pix[i])*(1-alpha)
		if v > 255 {
			v = 255
		}
		out.Pix[i] = byte(v + 0.5)
	}
	return out
}
