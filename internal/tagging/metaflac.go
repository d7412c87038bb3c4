package tagging

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

var commandContext = exec.CommandContext

// MetaflacWriter writes vorbis comments through the metaflac binary.
type MetaflacWriter struct {
	binary string
}

// MetaflacOption configures the writer.
type MetaflacOption func(*MetaflacWriter)

// WithMetaflacBinary overrides the default binary name.
func WithMetaflacBinary(binary string) MetaflacOption {
	return func(w *MetaflacWriter) {
		if binary != "" {
			w.binary = binary
		}
	}
}

// NewMetaflacWriter constructs a writer using defaults.
func NewMetaflacWriter(opts ...MetaflacOption) *MetaflacWriter {
	w := &MetaflacWriter{binary: "metaflac"}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// WriteTags replaces the file's tag block with the given tags.
func (w *MetaflacWriter) WriteTags(ctx context.Context, path string, tags TrackTags) error {
	args := []string{"--remove-all-tags"}
	for _, pair := range []struct {
		name  string
		value string
	}{
		{"TITLE", tags.Title},
		{"ARTIST", tags.Artist},
		{"ALBUM", tags.AlbumTitle},
		{"ALBUMARTIST", tags.AlbumArtist},
		{"DATE", tags.Date},
		{"CATALOGNUMBER", tags.Catalog},
		{"DISCNUMBER", strconv.Itoa(tags.DiscNumber)},
		{"DISCTOTAL", strconv.Itoa(tags.DiscTotal)},
		{"TRACKNUMBER", strconv.Itoa(tags.TrackNumber)},
		{"TRACKTOTAL", strconv.Itoa(tags.TrackTotal)},
		{"MUSICBRAINZ_ALBUMID", tags.AlbumID},
	} {
		if pair.value == "" {
			continue
		}
		args = append(args, "--set-tag="+pair.name+"="+pair.value)
	}
	args = append(args, path)

	cmd := commandContext(ctx, w.binary, args...)
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(output.String())
		if msg != "" {
			return fmt.Errorf("metaflac %s: %w: %s", path, err, msg)
		}
		return fmt.Errorf("metaflac %s: %w", path, err)
	}
	return nil
}

var _ TagWriter = (*MetaflacWriter)(nil)
