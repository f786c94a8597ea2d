package favcurator

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/n2code/favcurator/internal/asset"
	"github.com/n2code/favcurator/internal/board"
	out "github.com/n2code/favcurator/internal/output"
	"github.com/n2code/favcurator/internal/sqlite"
)

const LocatorFileName = ".favcurator"

const (
	fileScheme   = "file"
	sqliteScheme = "sqlite"
)

func (f *favcurator) createBoard(absoluteRoot string, absoluteBoardFile string, useSqlite bool) error {
	locatorLocation := filepath.Join(absoluteRoot, LocatorFileName)
	if _, err := os.Stat(locatorLocation); err == nil {
		return fmt.Errorf("project already initialized (%s exists)", locatorLocation)
	}

	scheme := fileScheme
	if useSqlite {
		scheme = sqliteScheme
		storage, err := sqlite.Open(absoluteBoardFile)
		if err != nil {
			return err
		}
		f.closer = storage
		f.persistence = storage
		if err := storage.Save(board.NewCollection()); err != nil {
			return err
		}
	} else {
		storage := board.NewFileStorage(absoluteBoardFile)
		if err := storage.Create(); err != nil {
			return err
		}
		f.persistence = storage
	}

	locator := url.URL{Scheme: scheme, Path: filepath.ToSlash(absoluteBoardFile)}
	if err := os.WriteFile(locatorLocation, []byte(locator.String()), 0o644); err != nil {
		return fmt.Errorf("writing project locator (%s) failed:\n%w", locatorLocation, err)
	}

	f.root = absoluteRoot
	f.resolver = asset.NewFileResolver(absoluteRoot)
	if err := f.adopt(f.persistence); err != nil {
		return err
	}
	f.log.Info("board created", "root", absoluteRoot, "locator", locator.String())
	f.Print(out.Normal, "Initialized favorites board with root %s\n", absoluteRoot)
	return nil
}

// loadBoard walks up from the starting directory until a locator file is found.
func (f *favcurator) loadBoard(startingDirectoryAbsolute string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("board not found: %w", err)
		}
	}()
	currentDir := startingDirectoryAbsolute
	for {
		locatorFile := filepath.Join(currentDir, LocatorFileName)
		stat, statErr := os.Stat(locatorFile)
		if statErr == nil && stat.Mode().IsRegular() {
			persistence, openErr := f.openLocated(locatorFile)
			if openErr != nil {
				return openErr
			}
			f.root = currentDir
			f.resolver = asset.NewFileResolver(currentDir)
			f.log.Debug("locator found", "file", locatorFile)
			return f.adopt(persistence)
		} else if errors.Is(statErr, os.ErrNotExist) {
			parent := filepath.Dir(currentDir)
			if parent == currentDir {
				return errors.New("stopping at filesystem root")
			}
			currentDir = parent
		} else if statErr != nil {
			return statErr
		} else {
			return fmt.Errorf("project locator %s is not a regular file", locatorFile)
		}
	}
}

func (f *favcurator) openLocated(locatorFile string) (board.Persistence, error) {
	contents, err := os.ReadFile(locatorFile)
	if err != nil {
		return nil, err
	}
	locator, err := url.Parse(string(contents))
	if err != nil {
		return nil, err
	}
	path := filepath.FromSlash(locator.Path)
	switch locator.Scheme {
	case fileScheme:
		return board.NewFileStorage(path), nil
	case sqliteScheme:
		storage, err := sqlite.Open(path)
		if err != nil {
			return nil, err
		}
		f.closer = storage
		return storage, nil
	default:
		return nil, fmt.Errorf(`scheme of URL in project locator file (%s) missing or unsupported: "%s"`, locatorFile, locator.Scheme)
	}
}
