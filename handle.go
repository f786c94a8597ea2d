package favcurator

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/n2code/favcurator/internal/asset"
	"github.com/n2code/favcurator/internal/board"
	out "github.com/n2code/favcurator/internal/output"
)

type VerbosityLevel int

// CreateConfig holds a set of common configuration switches that concern all calls to the favcurator API.
// The zero value is a sensible default.
type CreateConfig struct {
	Verbosity       VerbosityLevel
	EscapeSequences bool         //colored and formatted output
	Logger          *slog.Logger //diagnostic log, nil discards
}

const (
	DefaultVerbosity VerbosityLevel = iota //normal level of information, all noteworthy facts without too much noise
	VerboseMode                            //exhaustive information about what is happening, repeating context
	QuietMode                              //only output errors and information that was explicitly requested (-> Print* functions)
)

// New creates a new favorites board for the project rooted at the given directory.
// The board is persisted in a file next to the project locator, either gzip-compressed or as SQLite database (sqlite set).
func New(root string, boardFile string, sqlite bool, config CreateConfig) (Favcurator, error) {
	handle := makeFavcurator(config)
	err := handle.createBoard(mustAbsFilepath(root), mustAbsFilepath(boardFile), sqlite)
	if err != nil {
		handle.release()
		return nil, fmt.Errorf("board create error: %w", err)
	}
	return handle, nil
}

// Open loads the favorites board of the project which contains the given directory. (It does not need to be the project root directory.)
func Open(directory string, config CreateConfig) (Favcurator, error) {
	handle := makeFavcurator(config)
	err := handle.loadBoard(mustAbsFilepath(directory))
	if err != nil {
		handle.release()
		return nil, fmt.Errorf("board load error: %w", err)
	}
	return handle, nil
}

// Attach builds a handle on top of arbitrary collaborators, loading the board from persistence immediately.
// The absolute root is used to convert file system paths passed to DropPaths.
func Attach(absoluteRoot string, resolver asset.Resolver, persistence board.Persistence, config CreateConfig) (Favcurator, error) {
	handle := makeFavcurator(config)
	handle.root = absoluteRoot
	handle.resolver = resolver
	if closer, ok := persistence.(io.Closer); ok {
		handle.closer = closer
	}
	if err := handle.adopt(persistence); err != nil {
		handle.release()
		return nil, fmt.Errorf("board load error: %w", err)
	}
	return handle, nil
}

type favcurator struct {
	store       *board.Store
	persistence board.Persistence
	closer      io.Closer //set if the persistence holds resources
	resolver    asset.Resolver
	root        string //absolute, system-native
	printer     out.Printer
	log         *slog.Logger
}

func makeFavcurator(config CreateConfig) (instance *favcurator) {
	instance = &favcurator{log: config.Logger}
	if instance.log == nil {
		instance.log = slog.New(slog.DiscardHandler)
	}
	classes := []out.Class{out.Required, out.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, out.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, out.Normal)
	}
	instance.printer = out.NewPrinter(classes, config.EscapeSequences)
	return
}

func (f *favcurator) adopt(persistence board.Persistence) error {
	loaded, err := persistence.Load()
	if err != nil {
		return err
	}
	f.persistence = persistence
	f.store = board.NewStore(loaded, f.log)
	f.log.Debug("board adopted", "pages", f.store.PageCount())
	return nil
}

func (f *favcurator) Print(class out.Class, format string, a ...interface{}) {
	f.printer.Out(class, format, a...)
}

func (f *favcurator) Root() string {
	return f.root
}

func (f *favcurator) HasUnsavedChanges() bool {
	return f.store.IsDirty()
}

func (f *favcurator) PersistChanges() error {
	if !f.store.IsDirty() {
		f.log.Debug("nothing to persist")
		return nil
	}
	if err := f.persistence.Save(f.store.Snapshot()); err != nil {
		return newCommandError("persisting board", err)
	}
	f.store.ClearDirty()
	f.log.Info("board persisted", "pages", f.store.PageCount())
	return nil
}

func (f *favcurator) Close() error {
	err := f.PersistChanges()
	if closeErr := f.release(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// release closes the persistence resources without saving.
func (f *favcurator) release() (err error) {
	if f.closer != nil {
		err = f.closer.Close()
		f.closer = nil
	}
	return
}
