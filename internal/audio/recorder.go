package audio

import (
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

// Defaults tuned for near-field Hindi speech on a Raspberry Pi class device.
const (
	SampleRate = 16000

	defaultFrameSize    = 1600 // 100ms at 16kHz
	defaultSilenceRMS   = 0.015
	defaultSilenceAfter = 1200 * time.Millisecond
	defaultMaxListen    = 10 * time.Second
)

// Recorder captures mono 16 kHz float32 PCM from the default input device
// with RMS-based voice activity detection.
type Recorder struct {
	FrameSize    int
	SilenceRMS   float64
	SilenceAfter time.Duration
	MaxListen    time.Duration
}

func NewRecorder() *Recorder {
	return &Recorder{
		FrameSize:    defaultFrameSize,
		SilenceRMS:   defaultSilenceRMS,
		SilenceAfter: defaultSilenceAfter,
		MaxListen:    defaultMaxListen,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// Record listens until speech has been followed by SilenceAfter of quiet, or
// MaxListen elapses. Returns an empty slice when no speech was detected at
// all, which callers should treat as "nothing said".
func (r *Recorder) Record() ([]float32, error) {
	buf := make([]float32, r.FrameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	frameDur := time.Duration(r.FrameSize) * time.Second / SampleRate
	maxFrames := int(r.MaxListen / frameDur)
	silenceFrames := int(r.SilenceAfter / frameDur)

	var (
		speaking bool
		quiet    int
	)

	for i := 0; i < maxFrames; i++ {
		if err := stream.Read(); err != nil {
			return nil, err
		}

		if frameRMS(buf) > r.SilenceRMS {
			speaking = true
			quiet = 0
			out = append(out, buf...)
			continue
		}

		if !speaking {
			continue
		}
		quiet++
		if quiet >= silenceFrames {
			break
		}
		out = append(out, buf...)
	}

	if !speaking {
		return nil, nil
	}
	return out, nil
}

func frameRMS(frame []float32) float64 {
	if len(frame) == 0 {
		return 0
	}
	var sum float64
	for _, x := range frame {
		sum += float64(x * x)
	}
	return math.Sqrt(sum / float64(len(frame)))
}
