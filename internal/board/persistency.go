package board

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Persistence loads and saves complete boards.
type Persistence interface {
	// Load yields a board with a single empty page if nothing was saved yet.
	Load() (*Collection, error)
	Save(board *Collection) error
}

const workInProgressFileSuffix = ".wip"
const databaseContentOpener = "BOARD>>>"
const databaseContentTerminator = "<<<BOARD"
const databaseSemanticVersion = "1.0.0"
const semVerPattern = `^(?P<major>0|[1-9]\d*)\.(?P<minor>0|[1-9]\d*)\.(?P<patch>0|[1-9]\d*)(?:-(?P<prerelease>(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+(?P<buildmetadata>[0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?$`

var semanticVersionRegex = regexp.MustCompile(semVerPattern)
var semanticVersionMajorSubmatchIndex = semanticVersionRegex.SubexpIndex("major")

// FileStorage keeps a board in a single gzip-compressed file.
type FileStorage struct {
	path string //absolute, system-native
}

func NewFileStorage(absolutePath string) *FileStorage {
	return &FileStorage{path: absolutePath}
}

func (fs *FileStorage) Path() string {
	return fs.path
}

// Create writes a fresh board and fails if the file exists already.
func (fs *FileStorage) Create() error {
	return fs.write(NewCollection(), false)
}

func (fs *FileStorage) Save(board *Collection) error {
	return fs.write(board, true)
}

func (fs *FileStorage) write(board *Collection, overwrite bool) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("saving board failed: %w", err)
		}
	}()

	if !overwrite {
		if _, statErr := os.Lstat(fs.path); statErr == nil {
			return fmt.Errorf("path of board file exists already (%s)", fs.path)
		} else if !errors.Is(statErr, os.ErrNotExist) {
			return statErr
		}
	}

	tempPath := fs.path + workInProgressFileSuffix

	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil { //plausible failure
		return err
	}
	writeErr := writeBoard(file, board)
	closeErr := file.Close()
	if err = errors.Join(writeErr, closeErr); err != nil {
		os.Remove(tempPath)
		return err
	}

	if err = os.Rename(tempPath, fs.path); err != nil {
		return fmt.Errorf("replacing board file (%s) with temporary working copy (%s) failed: %w", fs.path, tempPath, err)
	}
	return nil
}

func writeBoard(target io.Writer, board *Collection) error {
	compressor, _ := gzip.NewWriterLevel(target, gzip.BestSpeed) //level is valid
	writer := bufio.NewWriter(compressor)

	writer.WriteString(databaseSemanticVersion + "\n")
	writer.WriteString(databaseContentOpener + "\n")

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "\t")
	if err := encoder.Encode(board); err != nil {
		return err
	}

	writer.WriteString(databaseContentTerminator + "\n")

	if err := writer.Flush(); err != nil {
		return err
	}
	return compressor.Close()
}

func (fs *FileStorage) Load() (board *Collection, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("loading board failed: %w", err)
		}
	}()

	leftoverWorkInProgressFile := fs.path + workInProgressFileSuffix
	if _, statErr := os.Stat(leftoverWorkInProgressFile); !errors.Is(statErr, os.ErrNotExist) {
		return nil, fmt.Errorf("old %s-file exists, manual intervention necessary (%s)", workInProgressFileSuffix, leftoverWorkInProgressFile)
	}

	file, err := os.Open(fs.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewCollection(), nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readBoard(file)
}

func readBoard(source io.Reader) (*Collection, error) {
	decompressor, err := gzip.NewReader(source)
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()
	reader := bufio.NewReader(decompressor)

	textUntilNewline := func() (string, error) {
		line, err := reader.ReadString('\n')
		return strings.TrimSuffix(line, "\n"), err
	}

	fileVersion, err := textUntilNewline()
	if err != nil {
		return nil, err
	}
	fileVersionMatch := semanticVersionRegex.FindStringSubmatch(fileVersion)
	if fileVersionMatch == nil {
		return nil, errors.New("board corrupted, version not found")
	}
	appVersionMatch := semanticVersionRegex.FindStringSubmatch(databaseSemanticVersion)
	if fileVersionMatch[semanticVersionMajorSubmatchIndex] != appVersionMatch[semanticVersionMajorSubmatchIndex] {
		return nil, fmt.Errorf("incompatible persisted board version: %s", fileVersion)
	}

	for {
		line, err := textUntilNewline()
		if err != nil {
			return nil, fmt.Errorf("board corrupted, content not found: %w", err)
		}
		if line == databaseContentOpener {
			break
		}
	}

	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	board := NewCollection()
	if err := decoder.Decode(board); err != nil {
		return nil, err
	}

	var termination strings.Builder
	io.Copy(&termination, decoder.Buffered())
	io.Copy(&termination, reader)
	if !strings.HasPrefix(termination.String(), "\n"+databaseContentTerminator) { //newline courtesy of JSON encoder
		return nil, fmt.Errorf("unexpected board termination: %q", termination.String())
	}
	return board, nil
}
