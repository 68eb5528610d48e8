package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/Alia5/routegen/internal/codegen/common"
)

// ArtifactLogger traces every file the generator writes.
type ArtifactLogger interface {
	Log(name string, data []byte)
}

// artifactLogger implements ArtifactLogger with thread-safe writes.
type artifactLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewArtifact creates a new ArtifactLogger. A nil writer yields a no-op logger.
func NewArtifact(w io.Writer) ArtifactLogger {
	return &artifactLogger{w: w, now: time.Now}
}

// Log emits a single line with timestamp, name, size and a short digest.
func (a *artifactLogger) Log(name string, data []byte) {
	if a.w == nil {
		return
	}
	line := fmt.Sprintf("%s %s %d bytes, blake2b: %s\n",
		a.now().Format("2006/01/02 15:04:05"),
		name,
		len(data),
		common.Digest(data)[:16])

	a.mu.Lock()
	_, _ = a.w.Write([]byte(line))
	a.mu.Unlock()
}
