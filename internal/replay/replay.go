// Package replay records and reads back Pong matches as a msgpack stream:
// one Header followed by one Frame per simulated tick.
package replay

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// Version is the stream format written by this package.
const Version = 1

// Header opens every replay stream.
type Header struct {
	Version  int    `msgpack:"version"`
	GameID   string `msgpack:"game_id"`
	Map      string `msgpack:"map"`
	Seed     int64  `msgpack:"seed"`
	TickRate int    `msgpack:"tick_rate"`
}

// Frame is the state after one tick and the events it produced.
type Frame struct {
	Tick     uint64        `msgpack:"tick"`
	Snapshot pong.Snapshot `msgpack:"snapshot"`
	Events   []pong.Event  `msgpack:"events,omitempty"`
}

// Recorder writes frames to an underlying writer.
type Recorder struct {
	w      *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
	frames int
}

// NewRecorder writes the header to w and returns a recorder for the frames.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	if h.Version == 0 {
		h.Version = Version
	}

	bw := bufio.NewWriter(w)
	r := &Recorder{w: bw, enc: msgpack.NewEncoder(bw)}
	if err := r.enc.Encode(&h); err != nil {
		return nil, fmt.Errorf("replay: cannot write header: %w", err)
	}
	return r, nil
}

// Create opens a replay file at path, truncating any existing one.
func Create(path string, h Header) (*Recorder, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot create %s: %w", path, err)
	}

	r, err := NewRecorder(f, h)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// Record appends one frame.
func (r *Recorder) Record(f Frame) error {
	if err := r.enc.Encode(&f); err != nil {
		return fmt.Errorf("replay: cannot write frame %d: %w", f.Tick, err)
	}
	r.frames++
	return nil
}

// Frames reports how many frames were recorded.
func (r *Recorder) Frames() int {
	return r.frames
}

// Close flushes buffered frames and closes the file opened by Create.
func (r *Recorder) Close() error {
	err := r.w.Flush()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("replay: cannot close: %w", err)
	}
	return nil
}

// Reader decodes a replay stream.
type Reader struct {
	dec    *msgpack.Decoder
	closer io.Closer
	header Header
}

// NewReader reads the header from r.
func NewReader(r io.Reader) (*Reader, error) {
	rd := &Reader{dec: msgpack.NewDecoder(bufio.NewReader(r))}
	if err := rd.dec.Decode(&rd.header); err != nil {
		return nil, fmt.Errorf("replay: cannot read header: %w", err)
	}
	if rd.header.Version != Version {
		return nil, fmt.Errorf("replay: unsupported version %d", rd.header.Version)
	}
	return rd, nil
}

// Open opens a replay file for reading.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: cannot open %s: %w", path, err)
	}

	rd, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	rd.closer = f
	return rd, nil
}

// Header returns the stream header.
func (rd *Reader) Header() Header {
	return rd.header
}

// Next decodes the next frame. It returns io.EOF after the last one.
func (rd *Reader) Next() (Frame, error) {
	var f Frame
	if err := rd.dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		return Frame{}, fmt.Errorf("replay: cannot read frame: %w", err)
	}
	return f, nil
}

// Close closes the file opened by Open.
func (rd *Reader) Close() error {
	if rd.closer != nil {
		return rd.closer.Close()
	}
	return nil
}

// Summary describes a recorded match.
type Summary struct {
	Header   Header
	Frames   int
	Final    pong.Snapshot
	Duration float64 // Simulated seconds
	Events   map[pong.EventKind]int
}

// Summarize reads a whole replay file.
func Summarize(path string) (Summary, error) {
	rd, err := Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer rd.Close()

	s := Summary{Header: rd.Header(), Events: make(map[pong.EventKind]int)}
	for {
		f, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s, err
		}

		s.Frames++
		s.Final = f.Snapshot
		s.Duration = f.Snapshot.SimTime
		for _, e := range f.Events {
			s.Events[e.Kind]++
		}
	}
	return s, nil
}
