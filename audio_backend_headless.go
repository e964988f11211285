// audio_backend_headless.go - sample-sink audio backend for the Paula pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
audio_backend_headless.go - Headless Audio Output

No PCM device is wired in: the core is a conformance/reference engine,
not an interactive player. The only AudioOutput implementation pulls
samples through SampleSource.ReadSample on its own goroutine at the
configured sample rate and discards them, mirroring the pull model a
real device driver would use without requiring one.
*/

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// SampleSource is implemented by anything an AudioOutput can pull
// mixed samples from; the Paula engine satisfies it.
type SampleSource interface {
	ReadSample() float32
}

// AudioOutput is the sole coupling between a sample generator and
// whatever consumes its output.
type AudioOutput interface {
	Start()
	Stop()
	Close()
	IsStarted() bool
}

const (
	AUDIO_BACKEND_HEADLESS = iota
)

func NewAudioOutput(backend int, sampleRate int, source SampleSource) (AudioOutput, error) {
	switch backend {
	case AUDIO_BACKEND_HEADLESS:
		return newHeadlessAudioOutput(sampleRate, source), nil
	}
	return nil, &VideoError{Operation: "audio backend creation", Details: "unknown backend type"}
}

type headlessAudioOutput struct {
	mu         sync.Mutex
	source     SampleSource
	sampleRate int
	started    bool
	done       chan struct{}
	sampleCnt  uint64
}

func newHeadlessAudioOutput(sampleRate int, source SampleSource) *headlessAudioOutput {
	return &headlessAudioOutput{sampleRate: sampleRate, source: source}
}

func (h *headlessAudioOutput) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.started = true
	h.done = make(chan struct{})
	go h.pull(h.done)
}

func (h *headlessAudioOutput) pull(done chan struct{}) {
	interval := time.Second / time.Duration(h.sampleRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if h.source != nil {
				h.source.ReadSample()
				atomic.AddUint64(&h.sampleCnt, 1)
			}
		}
	}
}

func (h *headlessAudioOutput) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return
	}
	h.started = false
	close(h.done)
}

func (h *headlessAudioOutput) Close() {
	h.Stop()
}

func (h *headlessAudioOutput) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}
