package core

const AvgCount uint8 = 30

// FrameMetrics keeps a rolling frame-time average and a frames-per-second
// counter for the engine loop.
type FrameMetrics struct {
	frameAvgCounter    uint8
	msTimes            [AvgCount]float64
	msAvg              float64
	frames             int32
	accumulatedFrameMS float64
	fps                float64
}

func NewFrameMetrics() *FrameMetrics {
	return &FrameMetrics{}
}

func (m *FrameMetrics) Update(frameElapsedSeconds float64) {
	frameMS := frameElapsedSeconds * 1000.0
	m.msTimes[m.frameAvgCounter] = frameMS
	if m.frameAvgCounter == AvgCount-1 {
		sum := 0.0
		for i := uint8(0); i < AvgCount; i++ {
			sum += m.msTimes[i]
		}
		m.msAvg = sum / float64(AvgCount)
	}
	m.frameAvgCounter++
	m.frameAvgCounter %= AvgCount

	// Count all frames, publish once a second has accumulated.
	m.frames++
	m.accumulatedFrameMS += frameMS
	if m.accumulatedFrameMS > 1000 {
		m.fps = float64(m.frames)
		m.accumulatedFrameMS -= 1000
		m.frames = 0
	}
}

func (m *FrameMetrics) FPS() float64 {
	return m.fps
}

func (m *FrameMetrics) FrameTime() float64 {
	return m.msAvg
}

func (m *FrameMetrics) Frame() (float64, float64) {
	return m.fps, m.msAvg
}
