package workspace

import "errors"

// Workspace errors.
var (
	// ErrPaneNotFound indicates the pane ID is not open.
	ErrPaneNotFound = errors.New("pane not found")

	// ErrNoPath indicates the document has never been saved.
	ErrNoPath = errors.New("document has no path")

	// ErrAlreadyOpen indicates another pane holds the path.
	ErrAlreadyOpen = errors.New("file already open in another pane")

	// ErrIsDirectory indicates a directory was given where a file was expected.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrConflict indicates the file changed on disk while the document
	// held unsaved edits.
	ErrConflict = errors.New("file changed on disk")

	// ErrWatcherClosed indicates the watcher has been closed.
	ErrWatcherClosed = errors.New("watcher closed")
)

// PathError records a failed file operation.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *PathError) Unwrap() error {
	return e.Err
}
