// video_backend_headless.go - headless frame sink for the Amiga video pipeline

/*
(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

/*
video_backend_headless.go - Headless Output

No windowing toolkit is wired in: the core is a conformance/reference
engine, not an interactive player, so the only VideoOutput implementation
is a deterministic frame sink built on the standard library's
image.RGBA. Frames are still copied to an addressable *image.RGBA on
each UpdateFrame so callers such as tests can pull a real decoded
frame out rather than a raw byte slice.
*/

package main

import (
	"image"
	"sync"
	"sync/atomic"
)

type headlessVideoOutput struct {
	mu          sync.Mutex
	started     bool
	config      DisplayConfig
	frameCount  uint64
	refreshRate int
	lastFrame   *image.RGBA
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &headlessVideoOutput{refreshRate: 60}, nil
}

func (h *headlessVideoOutput) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = true
	return nil
}

func (h *headlessVideoOutput) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = false
	return nil
}

func (h *headlessVideoOutput) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = false
	return nil
}

func (h *headlessVideoOutput) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

func (h *headlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.config = config
	h.lastFrame = image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	return nil
}

func (h *headlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *headlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastFrame != nil && len(buffer) == len(h.lastFrame.Pix) {
		copy(h.lastFrame.Pix, buffer)
	}
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *headlessVideoOutput) WaitForVSync() error { return nil }

func (h *headlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *headlessVideoOutput) GetRefreshRate() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}

// LastFrame returns the most recently delivered frame decoded as an
// *image.RGBA, or nil before the first UpdateFrame.
func (h *headlessVideoOutput) LastFrame() *image.RGBA {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastFrame
}
