// Package playlist holds the ordered set of tracks the UI walks
// through.
package playlist

import (
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhowden/tag"
	"github.com/rs/zerolog/log"

	"github.com/2pipopolam/fado/internal/config"
)

// Entry is one playable file plus whatever metadata its tags carried.
type Entry struct {
	Path   string
	Title  string
	Artist string
}

// Display returns "Artist - Title" when tags are present and falls
// back to the bare file name otherwise.
func (e Entry) Display() string {
	switch {
	case e.Title != "" && e.Artist != "":
		return e.Artist + " - " + e.Title
	case e.Title != "":
		return e.Title
	default:
		return filepath.Base(e.Path)
	}
}

// Playlist is an ordered list of entries with one selection cursor.
// Not safe for concurrent use; the UI goroutine owns it.
type Playlist struct {
	entries []Entry
	current int
}

// Load builds a playlist from files and directories. Directories are
// scanned one level deep for audio files and the result is sorted by
// path. Unreadable paths are skipped with a log line instead of
// failing the whole list.
func Load(paths []string) *Playlist {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skipping unreadable path")
			continue
		}
		if !info.IsDir() {
			if config.IsAudioPath(p) {
				files = append(files, p)
			}
			continue
		}
		dirents, err := os.ReadDir(p)
		if err != nil {
			log.Warn().Err(err).Str("path", p).Msg("skipping unreadable directory")
			continue
		}
		for _, d := range dirents {
			if d.IsDir() || !config.IsAudioPath(d.Name()) {
				continue
			}
			files = append(files, filepath.Join(p, d.Name()))
		}
	}
	sort.Strings(files)

	pl := &Playlist{}
	for _, f := range files {
		pl.entries = append(pl.entries, readEntry(f))
	}
	return pl
}

// readEntry pulls title and artist tags from the file. Any read or
// parse failure just yields an entry whose Display falls back to the
// file name.
func readEntry(path string) Entry {
	e := Entry{Path: path}
	f, err := os.Open(path)
	if err != nil {
		return e
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return e
	}
	e.Title = strings.TrimSpace(m.Title())
	e.Artist = strings.TrimSpace(m.Artist())
	return e
}

// Add appends a single file entry, reading its tags.
func (p *Playlist) Add(path string) {
	p.entries = append(p.entries, readEntry(path))
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return len(p.entries)
}

// Empty reports whether the playlist has no entries.
func (p *Playlist) Empty() bool {
	return len(p.entries) == 0
}

// Entries exposes the backing list for rendering.
func (p *Playlist) Entries() []Entry {
	return p.entries
}

// Index returns the selection cursor.
func (p *Playlist) Index() int {
	return p.current
}

// Current returns the selected entry, or false when the list is empty.
func (p *Playlist) Current() (Entry, bool) {
	if p.Empty() {
		return Entry{}, false
	}
	return p.entries[p.current], true
}

// Select moves the cursor to index i and returns that entry. Indices
// outside the list leave the cursor untouched.
func (p *Playlist) Select(i int) (Entry, bool) {
	if i < 0 || i >= len(p.entries) {
		return Entry{}, false
	}
	p.current = i
	return p.entries[i], true
}

// Next advances the cursor, wrapping at the end of the list.
func (p *Playlist) Next() (Entry, bool) {
	if p.Empty() {
		return Entry{}, false
	}
	p.current = (p.current + 1) % len(p.entries)
	return p.entries[p.current], true
}

// Prev moves the cursor back, wrapping at the start of the list.
func (p *Playlist) Prev() (Entry, bool) {
	if p.Empty() {
		return Entry{}, false
	}
	p.current = (p.current - 1 + len(p.entries)) % len(p.entries)
	return p.entries[p.current], true
}

// Shuffle reorders the entries randomly while keeping the selected
// track selected.
func (p *Playlist) Shuffle() {
	if p.Len() < 2 {
		return
	}
	selected := p.entries[p.current].Path
	rand.Shuffle(len(p.entries), func(i, j int) {
		p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
	})
	for i, e := range p.entries {
		if e.Path == selected {
			p.current = i
			return
		}
	}
}
