package audioconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDownmixStereo(t *testing.T) {
	in := []float32{1, 0, 0.5, 0.5, -1, 1}
	out := downmix(in, 2)
	assert.Equal(t, []float32{0.5, 0.5, 0}, out)
}

func TestDownmixMonoPassthrough(t *testing.T) {
	in := []float32{0.1, 0.2}
	assert.Equal(t, in, downmix(in, 1))
}

func TestResampleUp(t *testing.T) {
	out := resample([]float32{0, 1}, 8000, 16000)
	assert.Equal(t, []float32{0, 0.5, 1, 1}, out)
}

func TestResampleDown(t *testing.T) {
	out := resample([]float32{0, 1, 2, 3}, 32000, 16000)
	assert.Equal(t, []float32{0, 2}, out)
}

func TestResampleSameRate(t *testing.T) {
	in := []float32{0.1, 0.2, 0.3}
	assert.Equal(t, in, resample(in, 16000, 16000))
}

func TestInt16ToFloat32Bounds(t *testing.T) {
	out := int16ToFloat32([]int16{-32768, 0, 16384})
	assert.Equal(t, []float32{-1, 0, 0.5}, out)
}

func TestNormalizeStereo48k(t *testing.T) {
	// One second of interleaved stereo at 48 kHz comes out as one second of
	// mono at 16 kHz.
	in := make([]float32, 48000*2)
	out := normalize(pcm{samples: in, channels: 2, rate: 48000})
	assert.Equal(t, targetRate, len(out))
}
