package audio

import (
	"math"
	"testing"

	"github.com/lixenwraith/corridor/core"
)

const testRate = 44100

func TestGenerateAllCues(t *testing.T) {
	for st := core.SoundType(0); st < core.SoundTypeCount; st++ {
		buf := generateCue(st, testRate)
		if len(buf) == 0 {
			t.Fatalf("cue %d generated empty buffer", st)
		}
		for i, v := range buf {
			if math.Abs(v) > 1.0 {
				t.Fatalf("cue %d sample %d out of range: %v", st, i, v)
			}
		}
	}
}

func TestEnvelopeTapersEnds(t *testing.T) {
	buf := oscillator(waveSine, 440, 440, testRate/10, testRate)
	applyEnvelope(buf, 0.01, 0.02, testRate)

	if math.Abs(buf[0]) > 0.001 {
		t.Fatalf("attack start = %v, want near zero", buf[0])
	}
	if math.Abs(buf[len(buf)-1]) > 0.01 {
		t.Fatalf("release end = %v, want near zero", buf[len(buf)-1])
	}
}

func TestCueCacheReuse(t *testing.T) {
	c := newCueCache(testRate)
	a := c.get(core.SoundDoorOpen)
	b := c.get(core.SoundDoorOpen)
	if len(a) == 0 || &a[0] != &b[0] {
		t.Fatal("cache regenerated buffer on second get")
	}
	if c.get(core.SoundType(99)) != nil {
		t.Fatal("out-of-range cue must yield nil")
	}
}

func TestBufferStreamerTerminates(t *testing.T) {
	bs := &bufferStreamer{buf: floatBuffer{0.5, -0.5, 0.25}, volume: 0.8}
	samples := make([][2]float64, 2)

	n, ok := bs.Stream(samples)
	if n != 2 || !ok {
		t.Fatalf("first stream n=%d ok=%v", n, ok)
	}
	if samples[0][0] != 0.4 || samples[0][1] != 0.4 {
		t.Fatalf("volume not applied to both channels: %v", samples[0])
	}

	n, ok = bs.Stream(samples)
	if n != 1 || !ok {
		t.Fatalf("second stream n=%d ok=%v", n, ok)
	}

	n, ok = bs.Stream(samples)
	if n != 0 || ok {
		t.Fatalf("exhausted streamer n=%d ok=%v, want 0,false", n, ok)
	}
}
