// Package audio synthesizes and plays the short feedback cues the
// streaming systems request. All cues are generated, no sample assets.
package audio

import (
	"math"
	"sync"

	"github.com/lixenwraith/corridor/core"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
)

// floatBuffer is mono float64 samples at unity gain
type floatBuffer []float64

// oscillator generates raw waveform samples with a linear frequency
// sweep from freqStart to freqEnd across the buffer
func oscillator(waveType int, freqStart, freqEnd float64, samples, sampleRate int) floatBuffer {
	buf := make(floatBuffer, samples)
	phase := 0.0

	for i := 0; i < samples; i++ {
		t := float64(i) / float64(samples)
		freq := freqStart + (freqEnd-freqStart)*t

		switch waveType {
		case waveSine:
			buf[i] = math.Sin(2 * math.Pi * phase)
		case waveSquare:
			if phase-math.Floor(phase) < 0.5 {
				buf[i] = 1.0
			} else {
				buf[i] = -1.0
			}
		}

		phase += freq / float64(sampleRate)
	}
	return buf
}

// applyEnvelope applies attack/release envelope in place
func applyEnvelope(buf floatBuffer, attackSec, releaseSec float64, sampleRate int) {
	total := len(buf)
	attackSamples := int(attackSec * float64(sampleRate))
	releaseSamples := int(releaseSec * float64(sampleRate))

	releaseStart := total - releaseSamples
	if releaseStart < attackSamples {
		releaseStart = attackSamples
	}

	for i := 0; i < total; i++ {
		vol := 1.0
		if i < attackSamples && attackSamples > 0 {
			vol = float64(i) / float64(attackSamples)
		} else if i >= releaseStart && releaseSamples > 0 {
			vol = float64(total-i) / float64(releaseSamples)
		}
		buf[i] *= vol
	}
}

// appendBuffers concatenates b after a
func appendBuffers(a, b floatBuffer) floatBuffer {
	out := make(floatBuffer, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// generateCue synthesizes one cue type
func generateCue(st core.SoundType, sampleRate int) floatBuffer {
	ms := func(d int) int { return sampleRate * d / 1000 }

	switch st {
	case core.SoundLocked:
		// Short low refusal buzz
		buf := oscillator(waveSquare, 110, 110, ms(150), sampleRate)
		applyEnvelope(buf, 0.005, 0.05, sampleRate)
		return buf

	case core.SoundDoorOpen:
		// Rising sweep
		buf := oscillator(waveSine, 220, 660, ms(300), sampleRate)
		applyEnvelope(buf, 0.01, 0.1, sampleRate)
		return buf

	case core.SoundDoorClose:
		// Falling sweep
		buf := oscillator(waveSine, 660, 220, ms(300), sampleRate)
		applyEnvelope(buf, 0.01, 0.1, sampleRate)
		return buf

	case core.SoundRoomBuilt:
		// Two-note chime
		a := oscillator(waveSine, 523, 523, ms(120), sampleRate)
		applyEnvelope(a, 0.005, 0.04, sampleRate)
		b := oscillator(waveSine, 784, 784, ms(180), sampleRate)
		applyEnvelope(b, 0.005, 0.08, sampleRate)
		return appendBuffers(a, b)
	}
	return nil
}

// cueCache stores pre-generated unity-gain buffers per cue type
type cueCache struct {
	mu         sync.RWMutex
	store      [core.SoundTypeCount]floatBuffer
	ready      [core.SoundTypeCount]bool
	sampleRate int
}

func newCueCache(sampleRate int) *cueCache {
	return &cueCache{sampleRate: sampleRate}
}

// get returns the cached buffer, generating on first use
func (c *cueCache) get(st core.SoundType) floatBuffer {
	if st < 0 || int(st) >= int(core.SoundTypeCount) {
		return nil
	}

	c.mu.RLock()
	if c.ready[st] {
		buf := c.store[st]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready[st] {
		return c.store[st]
	}

	buf := generateCue(st, c.sampleRate)
	c.store[st] = buf
	c.ready[st] = true
	return buf
}

// preload generates all cues up front so the first playback is cheap
func (c *cueCache) preload() {
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		c.get(st)
	}
}
