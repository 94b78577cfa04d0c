// ABOUTME: Pooled line buffer for TUI rendering; recycled via sync.Pool
// ABOUTME: Components write lines here; String returns the whole frame

package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/foldedit/foldedit/pkg/tui/internal/pool"
)

var bufferPool = sync.Pool{
	New: func() any {
		return &RenderBuffer{
			Lines: make([]string, 0, 64),
		}
	},
}

// AcquireBuffer gets a RenderBuffer from the pool.
func AcquireBuffer() *RenderBuffer {
	buf := bufferPool.Get().(*RenderBuffer)
	buf.Reset()
	return buf
}

// ReleaseBuffer returns a RenderBuffer to the pool.
func ReleaseBuffer(buf *RenderBuffer) {
	if buf == nil {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// RenderBuffer is a pooled line buffer that components write into.
// The TUI engine allocates from sync.Pool and recycles after each frame.
type RenderBuffer struct {
	Lines []string
}

// WriteLine appends a single line to the buffer.
func (b *RenderBuffer) WriteLine(line string) {
	b.Lines = append(b.Lines, line)
}

// WriteLines appends multiple lines to the buffer.
func (b *RenderBuffer) WriteLines(lines []string) {
	b.Lines = append(b.Lines, lines...)
}

// WriteJoined appends a line built by concatenating parts, using a pooled
// strings.Builder rather than allocating a fresh one per call.
func (b *RenderBuffer) WriteJoined(parts ...string) {
	sb := pool.GetStringBuilder()
	defer pool.PutStringBuilder(sb)
	for _, p := range parts {
		sb.WriteString(p)
	}
	b.WriteLine(sb.String())
}

// WriteLinef appends a formatted line, rendering into a pooled
// bytes.Buffer rather than allocating directly through fmt.Sprintf.
func (b *RenderBuffer) WriteLinef(format string, args ...any) {
	buf := pool.GetBytesBuffer()
	defer pool.PutBytesBuffer(buf)
	fmt.Fprintf(buf, format, args...)
	b.WriteLine(buf.String())
}

// Reset clears the buffer for reuse without deallocating.
func (b *RenderBuffer) Reset() {
	b.Lines = b.Lines[:0]
}

// Len returns the number of lines in the buffer.
func (b *RenderBuffer) Len() int {
	return len(b.Lines)
}

// String joins every line with a trailing newline, as a single frame.
func (b *RenderBuffer) String() string {
	var out strings.Builder
	for _, l := range b.Lines {
		out.WriteString(l)
		out.WriteByte('\n')
	}
	return out.String()
}
