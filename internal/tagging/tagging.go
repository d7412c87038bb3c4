// Package tagging pushes repository metadata onto an audio collection. The
// actual tag encoding lives behind the TagWriter capability; everything
// here plans and verifies, so the engine works with no writer present.
package tagging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"discograph/internal/album"
)

// TrackTags is the full tag set for one audio file.
type TrackTags struct {
	AlbumID     string
	Catalog     string
	AlbumTitle  string
	AlbumArtist string
	Date        string
	DiscNumber  int
	DiscTotal   int
	TrackNumber int
	TrackTotal  int
	Title       string
	Artist      string
	Type        string
}

// TagWriter writes a tag set onto one audio file.
type TagWriter interface {
	WriteTags(ctx context.Context, path string, tags TrackTags) error
}

// Action pairs one audio file with the tags planned for it.
type Action struct {
	Path string
	Tags TrackTags
}

// Report summarizes one apply run.
type Report struct {
	Planned []Action
	Written int
}

// Options tunes an apply run.
type Options struct {
	// DryRun plans the actions without invoking the writer.
	DryRun bool
}

// Apply matches the album's discs and tracks against the audio files under
// dir and writes tags through writer. A count mismatch anywhere aborts
// before any file is touched. With DryRun set or a nil writer, the plan is
// returned without writing.
func Apply(ctx context.Context, a *album.Album, dir string, writer TagWriter, opts Options) (Report, error) {
	var report Report

	discDirs, err := matchDiscDirs(dir, len(a.Discs))
	if err != nil {
		return report, err
	}

	for _, disc := range a.DiscViews() {
		discDir := discDirs[disc.Index()-1]
		files, err := audioFiles(discDir)
		if err != nil {
			return report, err
		}
		tracks := disc.Tracks()
		if len(files) != len(tracks) {
			return report, fmt.Errorf("disc %d has %d tracks but %s holds %d audio files",
				disc.Index(), len(tracks), discDir, len(files))
		}
		for i, track := range tracks {
			report.Planned = append(report.Planned, Action{
				Path: filepath.Join(discDir, files[i]),
				Tags: TrackTags{
					AlbumID:     a.ID,
					Catalog:     disc.Catalog(),
					AlbumTitle:  a.FullTitle(),
					AlbumArtist: a.Artist,
					Date:        a.Date.String(),
					DiscNumber:  disc.Index(),
					DiscTotal:   len(a.Discs),
					TrackNumber: track.Index(),
					TrackTotal:  len(tracks),
					Title:       track.Title(),
					Artist:      track.Artist(),
					Type:        string(track.Type()),
				},
			})
		}
	}

	if opts.DryRun || writer == nil {
		return report, nil
	}
	for _, action := range report.Planned {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := writer.WriteTags(ctx, action.Path, action.Tags); err != nil {
			return report, fmt.Errorf("tag %s: %w", action.Path, err)
		}
		report.Written++
	}
	return report, nil
}

// matchDiscDirs maps each 1-based disc index to the directory holding its
// audio files. Single-disc albums use dir itself when it holds audio.
func matchDiscDirs(dir string, discs int) ([]string, error) {
	files, err := audioFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(files) > 0 {
		if discs != 1 {
			return nil, fmt.Errorf("album has %d discs but %s holds a single flat disc", discs, dir)
		}
		return []string{dir}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var subdirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		audio, err := audioFiles(sub)
		if err != nil {
			return nil, err
		}
		if len(audio) > 0 {
			subdirs = append(subdirs, sub)
		}
	}
	if len(subdirs) != discs {
		return nil, fmt.Errorf("album has %d discs but %s holds %d disc directories", discs, dir, len(subdirs))
	}
	return subdirs, nil
}

func audioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".flac", ".tak", ".ape", ".wav":
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
