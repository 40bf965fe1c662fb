// Package wavio adapts this module's audio codec to real 16-bit PCM WAV
// files via github.com/go-audio/wav and github.com/go-audio/audio, standing
// in for the libsndfile calls (sf_open/sf_readf_short/sf_writef_short) the
// reference implementation used.
package wavio

import (
	"errors"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned for WAV files outside this module's
// contract: 16-bit PCM, mono or stereo.
var ErrUnsupportedFormat = errors.New("wavio: unsupported format (need 16-bit PCM, mono or stereo)")

// Format describes the sample layout of a WAV stream.
type Format struct {
	SampleRate int
	Channels   int
}

// Read decodes r fully and returns its format plus interleaved 16-bit PCM
// samples (frame-major, channel-minor).
func Read(r io.ReadSeeker) (Format, []int16, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Format{}, nil, ErrUnsupportedFormat
	}
	dec.ReadInfo()
	if dec.BitDepth != 16 {
		return Format{}, nil, ErrUnsupportedFormat
	}
	channels := int(dec.NumChans)
	if channels != 1 && channels != 2 {
		return Format{}, nil, ErrUnsupportedFormat
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return Format{}, nil, err
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	return Format{SampleRate: int(dec.SampleRate), Channels: channels}, samples, nil
}

// Write encodes interleaved 16-bit PCM samples to w as a WAV file.
func Write(w io.WriteSeeker, format Format, samples []int16) error {
	if format.Channels != 1 && format.Channels != 2 {
		return ErrUnsupportedFormat
	}
	enc := wav.NewEncoder(w, format.SampleRate, 16, format.Channels, 1)

	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(v)
	}
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: format.Channels, SampleRate: format.SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
