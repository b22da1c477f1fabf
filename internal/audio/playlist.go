package audio

import (
	"path/filepath"
	"slices"
)

// Playlist is an ordered list of tracks, unique by file name.
type Playlist struct {
	paths   []string
	current int
}

// Add appends path unless a track with the same file name is already listed.
// It reports whether the track was added.
func (l *Playlist) Add(path string) bool {
	name := filepath.Base(path)
	if l.index(name) >= 0 {
		return false
	}
	l.paths = append(l.paths, path)
	return true
}

// Remove drops the track with the given file name.
func (l *Playlist) Remove(name string) bool {
	i := l.index(name)
	if i < 0 {
		return false
	}
	l.paths = slices.Delete(l.paths, i, i+1)
	switch {
	case len(l.paths) == 0:
		l.current = 0
	case i < l.current || l.current >= len(l.paths):
		l.current--
	}
	return true
}

// Current returns the selected track.
func (l *Playlist) Current() (string, bool) {
	if len(l.paths) == 0 {
		return "", false
	}
	return l.paths[l.current], true
}

// Select makes the track with the given file name current.
func (l *Playlist) Select(name string) bool {
	i := l.index(name)
	if i < 0 {
		return false
	}
	l.current = i
	return true
}

// Next advances to the following track, wrapping at the end.
func (l *Playlist) Next() (string, bool) {
	if len(l.paths) == 0 {
		return "", false
	}
	l.current = (l.current + 1) % len(l.paths)
	return l.paths[l.current], true
}

// Prev steps back to the previous track, wrapping at the start.
func (l *Playlist) Prev() (string, bool) {
	if len(l.paths) == 0 {
		return "", false
	}
	l.current = (l.current - 1 + len(l.paths)) % len(l.paths)
	return l.paths[l.current], true
}

func (l *Playlist) Len() int { return len(l.paths) }

// Names lists the file names in order.
func (l *Playlist) Names() []string {
	names := make([]string, len(l.paths))
	for i, p := range l.paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func (l *Playlist) index(name string) int {
	return slices.IndexFunc(l.paths, func(p string) bool {
		return filepath.Base(p) == name
	})
}
