package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// playAudio starts WAV playback and returns a stop function that releases
// the speaker. Playback runs on the speaker's own goroutine.
func playAudio(path string) (func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Millisecond*100)); err != nil {
		streamer.Close()
		return nil, err
	}

	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		streamer.Close()
	})))

	return func() {
		speaker.Clear()
		speaker.Close()
	}, nil
}
