// Package audioconv decodes wav, mp3, ogg-vorbis and ogg-opus files into the
// mono 16 kHz float32 PCM the transcriber expects.
package audioconv

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	popus "github.com/pekim/opus"
)

const targetRate = 16000

// pcm is decoded interleaved audio before normalization.
type pcm struct {
	samples  []float32
	channels int
	rate     int
}

// LoadPCM16k decodes the file at path, picking the codec from the extension
// and falling back to sniffing the container magic.
func LoadPCM16k(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var raw pcm
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		raw, err = decodeWAV(f)
	case ".mp3":
		raw, err = decodeMP3(f)
	case ".ogg", ".oga":
		raw, err = decodeOgg(f)
	default:
		raw, err = decodeSniffed(f)
	}
	if err != nil {
		return nil, err
	}

	return normalize(raw), nil
}

// normalize downmixes to mono and resamples to 16 kHz.
func normalize(raw pcm) []float32 {
	x := downmix(raw.samples, raw.channels)
	return resample(x, raw.rate, targetRate)
}

func decodeSniffed(f *os.File) (pcm, error) {
	magic, _ := bufio.NewReader(f).Peek(4)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return pcm{}, err
	}

	switch string(magic) {
	case "RIFF":
		return decodeWAV(f)
	case "OggS":
		return decodeOgg(f)
	default:
		return pcm{}, fmt.Errorf("unsupported audio format (magic %q)", magic)
	}
}

func decodeWAV(r io.ReadSeeker) (pcm, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return pcm{}, errors.New("invalid wav")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return pcm{}, err
	}
	if buf == nil || len(buf.Data) == 0 {
		return pcm{}, errors.New("empty wav")
	}

	depth := int(dec.BitDepth)
	if depth == 0 {
		depth = 16
	}
	scale := 1.0 / float64(int64(1)<<(depth-1))

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		s := float64(v) * scale
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		samples[i] = float32(s)
	}

	out := pcm{samples: samples, channels: 1, rate: 44100}
	if buf.Format != nil {
		if buf.Format.NumChannels > 0 {
			out.channels = buf.Format.NumChannels
		}
		if buf.Format.SampleRate > 0 {
			out.rate = buf.Format.SampleRate
		}
	}
	return out, nil
}

func decodeMP3(r io.Reader) (pcm, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return pcm{}, err
	}

	var raw bytes.Buffer
	if _, err := io.Copy(&raw, dec); err != nil {
		return pcm{}, err
	}

	ints := make([]int16, raw.Len()/2)
	if err := binary.Read(bytes.NewReader(raw.Bytes()), binary.LittleEndian, &ints); err != nil {
		return pcm{}, err
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		rate = 44100
	}

	// go-mp3 always yields interleaved stereo.
	return pcm{samples: int16ToFloat32(ints), channels: 2, rate: rate}, nil
}

// decodeOgg tries Vorbis first, then Opus.
func decodeOgg(r io.ReadSeeker) (pcm, error) {
	out, verr := decodeVorbis(r)
	if verr == nil {
		return out, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return pcm{}, err
	}
	out, oerr := decodeOpus(r)
	if oerr != nil {
		return pcm{}, fmt.Errorf("ogg: not vorbis (%v), not opus (%v)", verr, oerr)
	}
	return out, nil
}

func decodeVorbis(r io.Reader) (pcm, error) {
	samples, format, err := oggvorbis.ReadAll(r)
	if err != nil {
		return pcm{}, err
	}
	if format == nil || format.Channels <= 0 || format.SampleRate <= 0 {
		return pcm{}, errors.New("invalid vorbis stream")
	}
	return pcm{samples: samples, channels: format.Channels, rate: format.SampleRate}, nil
}

func decodeOpus(r io.ReadSeeker) (pcm, error) {
	dec, err := popus.NewDecoder(r)
	if err != nil {
		return pcm{}, err
	}
	defer dec.Destroy()

	ch := dec.ChannelCount()
	if ch <= 0 {
		ch = 1
	}

	// Opus streams always decode at 48 kHz.
	var samples []float32
	buf := make([]int16, 24000*ch)
	for {
		n, err := dec.Read(buf)
		if n > 0 {
			samples = append(samples, int16ToFloat32(buf[:n*ch])...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return pcm{}, err
		}
	}

	if len(samples) == 0 {
		return pcm{}, errors.New("empty opus stream")
	}
	return pcm{samples: samples, channels: ch, rate: 48000}, nil
}

func int16ToFloat32(data []int16) []float32 {
	out := make([]float32, len(data))
	for i, v := range data {
		out[i] = float32(v) / 32768.0
	}
	return out
}

// downmix averages interleaved channels into mono.
func downmix(in []float32, channels int) []float32 {
	if channels <= 1 {
		return in
	}
	frames := len(in) / channels
	out := make([]float32, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(in[i*channels+c])
		}
		out[i] = float32(sum / float64(channels))
	}
	return out
}

// resample does linear interpolation between sample rates.
func resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}
	ratio := float64(to) / float64(from)
	n := int(math.Ceil(float64(len(in)) * ratio))
	out := make([]float32, n)
	for i := range out {
		src := float64(i) / ratio
		i0 := int(src)
		if i0 >= len(in)-1 {
			out[i] = in[len(in)-1]
			continue
		}
		frac := float32(src - float64(i0))
		out[i] = in[i0]*(1-frac) + in[i0+1]*frac
	}
	return out
}
