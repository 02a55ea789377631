package audio

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"

	"github.com/jigardave8/8dSongs/parameter"
)

var (
	// ErrEmptySource is returned when no source reference was given
	ErrEmptySource = errors.New("empty source reference")

	// ErrUnsupportedFormat is returned for extensions without a decoder
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

// Track is a decoded, seekable audio source
type Track struct {
	Streamer beep.StreamSeekCloser
	Format   beep.Format
	Name     string

	cleanup func()
}

// Duration returns the total track length
func (t *Track) Duration() time.Duration {
	return t.Format.SampleRate.D(t.Streamer.Len())
}

// Close releases the decoder and any temp file backing a remote source
func (t *Track) Close() error {
	err := t.Streamer.Close()
	if t.cleanup != nil {
		t.cleanup()
		t.cleanup = nil
	}
	return err
}

// LoadSource opens and decodes an audio source. The source may be a local
// file path or an http(s) URL; remote sources are fetched to a temp file so
// the decoder can seek and report duration.
func LoadSource(src string) (*Track, error) {
	if src == "" {
		return nil, ErrEmptySource
	}

	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return loadRemote(src)
	}
	return loadFile(src)
}

// loadFile decodes a local audio file
func loadFile(path string) (*Track, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}

	track, err := decode(f, filepath.Base(path))
	if err != nil {
		f.Close()
		return nil, err
	}
	return track, nil
}

// loadRemote fetches a URL to a temp file and decodes it
func loadRemote(src string) (*Track, error) {
	u, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parsing source URL: %w", err)
	}

	client := &http.Client{Timeout: parameter.FetchTimeout}
	resp, err := client.Get(src)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: status %s", src, resp.Status)
	}

	name := filepath.Base(u.Path)
	tmp, err := os.CreateTemp("", "8dsongs-*"+filepath.Ext(name))
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("downloading %q: %w", src, err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, fmt.Errorf("rewinding temp file: %w", err)
	}

	track, err := decode(tmp, name)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return nil, err
	}
	track.cleanup = func() { os.Remove(tmp.Name()) }
	return track, nil
}

// decode dispatches to the decoder matching the file extension
func decode(f *os.File, name string) (*Track, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".ogg", ".oga":
		streamer, format, err = vorbis.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %q: %w", name, err)
	}

	return &Track{Streamer: streamer, Format: format, Name: name}, nil
}
