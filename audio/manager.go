package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/corridor/config"
	"github.com/lixenwraith/corridor/core"
)

// bufferStreamer plays one mono buffer at a fixed gain
type bufferStreamer struct {
	buf    floatBuffer
	pos    int
	volume float64
}

func (bs *bufferStreamer) Stream(samples [][2]float64) (int, bool) {
	if bs.pos >= len(bs.buf) {
		return 0, false
	}
	n := 0
	for i := range samples {
		if bs.pos >= len(bs.buf) {
			break
		}
		v := bs.buf[bs.pos] * bs.volume
		samples[i][0] = v
		samples[i][1] = v
		bs.pos++
		n++
	}
	return n, true
}

func (bs *bufferStreamer) Err() error { return nil }

// Manager owns the speaker and plays requested cues
// A failed speaker init degrades to silence instead of aborting the game
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	cache       *cueCache
	log         *zap.Logger
	sampleRate  beep.SampleRate
	volume      float64
	enabled     bool
	muted       bool
	initialized bool
}

// NewManager creates an uninitialized manager from config
func NewManager(cfg config.AudioConfig, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	rate := cfg.SampleRate
	if rate <= 0 {
		rate = 44100
	}
	return &Manager{
		mixer:      &beep.Mixer{},
		cache:      newCueCache(rate),
		log:        log,
		sampleRate: beep.SampleRate(rate),
		volume:     cfg.Volume,
		enabled:    cfg.Enabled,
	}
}

// Initialize opens the speaker. On failure the manager stays silent and
// every Play becomes a no-op.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized || !m.enabled {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(100*time.Millisecond)); err != nil {
		m.enabled = false
		m.log.Warn("speaker init failed, running silent", zap.Error(err))
		return err
	}

	speaker.Play(m.mixer)
	m.cache.preload()
	m.initialized = true
	return nil
}

// Cleanup silences the mixer
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// Play queues one cue for playback
func (m *Manager) Play(st core.SoundType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || !m.enabled || m.muted {
		return
	}

	buf := m.cache.get(st)
	if buf == nil {
		return
	}

	speaker.Lock()
	m.mixer.Add(&bufferStreamer{buf: buf, volume: m.volume})
	speaker.Unlock()
}

// SetMuted toggles playback without tearing down the speaker
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// Muted returns the mute state
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}
