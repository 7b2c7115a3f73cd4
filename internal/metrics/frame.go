package metrics

// FrameRate is the mean frames per second over observed frame times.
type FrameRate struct {
	frames  int
	totalMs float64
}

func NewFrameRate() *FrameRate { return &FrameRate{} }

func (r *FrameRate) Name() string { return "fps" }

func (r *FrameRate) Observe(f Frame) {
	if f.ElapsedMs <= 0 {
		return
	}
	r.frames++
	r.totalMs += f.ElapsedMs
}

func (r *FrameRate) Value() float64 {
	if r.totalMs == 0 {
		return 0
	}
	return float64(r.frames) * 1000 / r.totalMs
}

func (r *FrameRate) Reset() { r.frames, r.totalMs = 0, 0 }

// LineDensity is the mean number of proximity lines per frame.
type LineDensity struct {
	samples int
	total   int
}

func NewLineDensity() *LineDensity { return &LineDensity{} }

func (l *LineDensity) Name() string { return "lines" }

func (l *LineDensity) Observe(f Frame) {
	l.samples++
	l.total += f.Lines
}

func (l *LineDensity) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return float64(l.total) / float64(l.samples)
}

func (l *LineDensity) Reset() { l.samples, l.total = 0, 0 }

type MeanSpeed struct {
	samples int
	total   float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "speed" }

func (m *MeanSpeed) Observe(f Frame) {
	m.samples++
	m.total += f.MeanSpeed
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() { m.samples, m.total = 0, 0 }
