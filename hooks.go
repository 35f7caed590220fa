package fullmeta

import (
	"sync"

	pkgsync "github.com/agentstation/fullmeta/pkg/sync"
)

// Hook function types for per-file events
type (
	// FileMergedHook is called after a changed file was merged into its full file
	FileMergedHook func(result *pkgsync.FileResult)

	// FileSeededHook is called after a missing full file was seeded from its changed file
	FileSeededHook func(result *pkgsync.FileResult)

	// FileFailedHook is called when a file pair could not be processed
	FileFailedHook func(result *pkgsync.FileResult, err error)
)

// Hooks registers per-file callbacks. Callbacks run synchronously on the
// goroutine running the batch.
type Hooks interface {
	// OnFileMerged registers a callback for merged files
	OnFileMerged(FileMergedHook)

	// OnFileSeeded registers a callback for seeded files
	OnFileSeeded(FileSeededHook)

	// OnFileFailed registers a callback for failed files
	OnFileFailed(FileFailedHook)
}

// hooks manages event callbacks for file pairs
type hooks struct {
	mu           sync.RWMutex
	onFileMerged []FileMergedHook
	onFileSeeded []FileSeededHook
	onFileFailed []FileFailedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnFileMerged registers a callback for when files are merged
func (c *client) OnFileMerged(fn FileMergedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFileMerged = append(c.hooks.onFileMerged, fn)
}

// OnFileSeeded registers a callback for when full files are seeded
func (c *client) OnFileSeeded(fn FileSeededHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFileSeeded = append(c.hooks.onFileSeeded, fn)
}

// OnFileFailed registers a callback for when file pairs fail
func (c *client) OnFileFailed(fn FileFailedHook) {
	c.hooks.mu.Lock()
	defer c.hooks.mu.Unlock()
	c.hooks.onFileFailed = append(c.hooks.onFileFailed, fn)
}

// trigger dispatches result to the hooks registered for its status.
// Skipped files have no hook.
func (h *hooks) trigger(result *pkgsync.FileResult) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	switch result.Status {
	case pkgsync.StatusMerged:
		for _, hook := range h.onFileMerged {
			hook(result)
		}
	case pkgsync.StatusSeeded:
		for _, hook := range h.onFileSeeded {
			hook(result)
		}
	case pkgsync.StatusFailed:
		for _, hook := range h.onFileFailed {
			hook(result, result.Err)
		}
	}
}
