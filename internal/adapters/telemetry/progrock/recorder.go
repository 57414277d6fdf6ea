// Package progrock provides the Progrock implementation of the telemetry adapter.
package progrock

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/deps/internal/core/ports"
)

var _ ports.Telemetry = (*Recorder)(nil)

// Recorder implements ports.Telemetry using the progrock library.
// Output written to a vertex is also mirrored to the console writer.
type Recorder struct {
	w       progrock.Writer
	rec     *progrock.Recorder
	console io.Writer
	seq     atomic.Uint64
}

// New creates a new Recorder with a default tape, mirroring output to console.
func New(console io.Writer) *Recorder {
	return NewRecorder(progrock.NewTape(), console)
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer, console io.Writer) *Recorder {
	if console == nil {
		console = io.Discard
	}
	return &Recorder{
		w:       w,
		rec:     progrock.NewRecorder(w),
		console: console,
	}
}

// Record starts recording a new vertex.
func (r *Recorder) Record(ctx context.Context, name string, opts ...ports.VertexOption) (context.Context, ports.Vertex) {
	cfg := ports.NewVertexConfig(opts...)

	// Names repeat across runs of the same step; the sequence keeps digests unique.
	d := digest.FromString(fmt.Sprintf("%s#%d", name, r.seq.Add(1)))
	v := r.rec.Vertex(d, name)

	mirror := r.console
	if cfg.Internal {
		mirror = io.Discard
	}

	vertex := &Vertex{vertex: v, mirror: mirror}
	return ports.ContextWithVertex(ctx, vertex), vertex
}

// Close flushes and closes the recording session.
func (r *Recorder) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
