// Package player is the playback engine: it binds decoded tracks,
// drives the tri-state machine, and feeds the device from the
// real-time output callback.
package player

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/2pipopolam/fado/internal/audio"
	"github.com/2pipopolam/fado/internal/config"
	"github.com/2pipopolam/fado/internal/host"
)

// ErrNoAudioLoaded is returned by Play and Toggle when no track is
// bound.
var ErrNoAudioLoaded = errors.New("player: no audio loaded")

// activeBuffer pairs sample storage with its cursor so the callback
// and the samplers observe a consistent snapshot through a single
// atomic pointer load. The cursor indexes interleaved samples and is
// always even.
type activeBuffer struct {
	samples []float32
	cursor  atomic.Int64
}

// Player owns the bound track and the output stream. Control methods
// are serialized by a mutex and may block; the output callback runs on
// the audio thread and touches nothing but the active descriptor.
type Player struct {
	hst    host.Host
	cache  *audio.Cache
	decode func(string) (*audio.Track, error)

	mu     sync.Mutex
	state  State
	stream host.Stream
	track  *audio.Track
	file   string

	active  atomic.Pointer[activeBuffer]
	aborted atomic.Bool
}

// New wires the engine to an audio host. The host is owned by the
// caller and must outlive the player.
func New(h host.Host) *Player {
	return &Player{
		hst:    h,
		cache:  audio.NewCache(),
		decode: audio.DecodeFile,
	}
}

// Load resolves and decodes a track (or copies it out of the cache)
// and binds it as the active buffer. Any open stream is stopped and
// closed before the swap; the engine is Stopped with the cursor at
// zero afterwards.
func (p *Player) Load(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loadLocked(path)
}

// LoadAndPlay binds a track and starts it in one step.
func (p *Player) LoadAndPlay(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.loadLocked(path); err != nil {
		return err
	}
	return p.playLocked()
}

func (p *Player) loadLocked(path string) error {
	canon, err := audio.CanonicalPath(path)
	if err != nil {
		return err
	}

	// The callback may be mid-read on the old buffer: silence the
	// stream before the swap, never after.
	p.stopStreamLocked()

	track, ok := p.cache.Get(canon)
	if !ok {
		track, err = p.decode(canon)
		if err != nil {
			return err
		}
		p.cache.Put(canon, track)
	}

	buf := &activeBuffer{samples: track.Samples}
	p.active.Store(buf)
	p.track = track
	p.file = canon
	p.aborted.Store(false)

	log.Debug().
		Str("file", canon).
		Int("samples", track.SampleCount()).
		Int("rate", track.SampleRate).
		Int("channels", track.Channels).
		Bool("cached", ok).
		Msg("track bound")
	return nil
}

// Play starts or resumes playback. From Paused the existing stream
// restarts; from Stopped a fresh stream opens at the track's rate with
// stereo float32 output. Play while playing is a no-op.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playLocked()
}

func (p *Player) playLocked() error {
	switch p.state {
	case StatePlaying:
		return nil
	case StatePaused:
		if err := p.stream.Start(); err != nil {
			return fmt.Errorf("%w: %v", host.ErrStreamOpen, err)
		}
		p.state = StatePlaying
		return nil
	}

	buf := p.active.Load()
	if buf == nil || len(buf.samples) < 2 {
		return ErrNoAudioLoaded
	}

	stream, err := p.hst.OpenStream(p.track.SampleRate, 2, config.FramesPerBuffer, p.fill)
	if err != nil {
		return err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("%w: %v", host.ErrStreamOpen, err)
	}
	p.stream = stream
	p.state = StatePlaying
	p.aborted.Store(false)
	log.Info().Str("file", p.file).Msg("playing")
	return nil
}

// Pause halts the stream but keeps it open and the cursor in place.
// No-op unless playing.
func (p *Player) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pauseLocked()
}

func (p *Player) pauseLocked() error {
	if p.state != StatePlaying {
		return nil
	}
	if err := p.stream.Stop(); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	p.state = StatePaused
	return nil
}

// Stop halts playback, closes the stream and rewinds to the start of
// the track. No-op when already stopped.
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateStopped {
		return nil
	}
	p.stopStreamLocked()
	if buf := p.active.Load(); buf != nil {
		buf.cursor.Store(0)
	}
	return nil
}

// Toggle pauses when playing and plays otherwise.
func (p *Player) Toggle() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StatePlaying {
		return p.pauseLocked()
	}
	return p.playLocked()
}

// stopStreamLocked stops and closes any open stream and lands the
// engine in Stopped. The stream is only stopped when running; a paused
// stream goes straight to Close.
func (p *Player) stopStreamLocked() {
	if p.stream != nil {
		if p.state == StatePlaying {
			if err := p.stream.Stop(); err != nil {
				log.Error().Err(err).Msg("stream stop")
			}
		}
		if err := p.stream.Close(); err != nil {
			log.Error().Err(err).Msg("stream close")
		}
		p.stream = nil
	}
	p.state = StateStopped
}

// ClearCache drops every cached track. The active buffer is its own
// copy, so playback is unaffected.
func (p *Player) ClearCache() {
	p.cache.Clear()
}

// CacheLen reports how many decoded tracks the cache holds.
func (p *Player) CacheLen() int {
	return p.cache.Len()
}

// Close stops playback and releases the stream. The host is closed by
// its owner.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopStreamLocked()
	return nil
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// IsPlaying reports whether audio is actually flowing. It goes false
// without a state transition when the callback aborts the stream; that
// is how the control side observes an abort.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StatePlaying && !p.aborted.Load()
}

// CurrentFile returns the canonical path of the bound track, empty
// when none.
func (p *Player) CurrentFile() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.file
}

// SampleCount returns the interleaved sample count of the bound track.
func (p *Player) SampleCount() int {
	if buf := p.active.Load(); buf != nil {
		return len(buf.samples)
	}
	return 0
}

// SampleRate returns the bound track's sample rate in Hz, 0 when no
// track is bound.
func (p *Player) SampleRate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == nil {
		return 0
	}
	return p.track.SampleRate
}

// Channels returns the bound track's source channel count, 0 when no
// track is bound.
func (p *Player) Channels() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == nil {
		return 0
	}
	return p.track.Channels
}

// Duration returns the bound track's total length.
func (p *Player) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.track == nil {
		return 0
	}
	return p.track.Duration()
}

// Position returns the playback position derived from the cursor.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	rate := 0
	if p.track != nil {
		rate = p.track.SampleRate
	}
	p.mu.Unlock()

	buf := p.active.Load()
	if buf == nil || rate <= 0 {
		return 0
	}
	frames := buf.cursor.Load() / 2
	return time.Duration(frames) * time.Second / time.Duration(rate)
}

// fill is the real-time output callback. out is interleaved stereo, so
// len(out) is twice the period's frame count. A single atomic load
// binds the descriptor for the whole period; no allocation, no locks,
// no syscalls. Returns false to abort when no playable buffer is
// bound.
func (p *Player) fill(out []float32) bool {
	buf := p.active.Load()
	if buf == nil || len(buf.samples) < 2 {
		for i := range out {
			out[i] = 0
		}
		p.aborted.Store(true)
		return false
	}

	samples := buf.samples
	n := int64(len(samples))
	cur := buf.cursor.Load()
	for i := 0; i+1 < len(out); i += 2 {
		if cur+2 > n {
			cur = 0
		}
		out[i] = samples[cur]
		out[i+1] = samples[cur+1]
		cur += 2
	}
	if cur+2 > n {
		cur = 0
	}
	buf.cursor.Store(cur)
	return true
}
