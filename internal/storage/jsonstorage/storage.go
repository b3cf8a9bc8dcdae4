package jsonstorage

import (
	"encoding/json"
	"github.com/denismitr/todolist/internal/storage"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"io"
	"os"
	"path/filepath"
)

const minMaxFileSize int64 = 64 << 20

const filePerm os.FileMode = 0644

// FileStorage reads and writes persons documents as JSON files.
type FileStorage struct {
	maxFileSize int64
	atomic      bool
}

type Option func(s *FileStorage)

// WithMaxFileSize limits the size of files Read accepts.
func WithMaxFileSize(n int64) Option {
	return func(s *FileStorage) {
		if n > 0 {
			s.maxFileSize = n
		}
	}
}

// WithAtomicWrites makes Write go through a temp file renamed over the target.
func WithAtomicWrites(atomic bool) Option {
	return func(s *FileStorage) {
		s.atomic = atomic
	}
}

func New(opts ...Option) *FileStorage {
	s := &FileStorage{maxFileSize: DefaultMaxFileSize()}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Read parses the document at path. A missing file is reported with
// ok == false and a nil error.
func (s *FileStorage) Read(path string) (doc *storage.Document, ok bool, err error) {
	if path == "" {
		return nil, false, errors.Wrap(storage.ErrPrecondition, "file path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errors.Wrapf(storage.ErrIO, "could not open file %s: %v", path, err)
	}

	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrapf(storage.ErrIO, "could not close file %s: %v", path, cErr)
			doc, ok = nil, false
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, false, errors.Wrapf(storage.ErrIO, "could not collect file %s stats: %v", path, err)
	}

	if info.IsDir() {
		return nil, false, errors.Wrapf(storage.ErrIO, "%s is a directory", path)
	}

	if info.Size() > s.maxFileSize {
		return nil, false, errors.Wrapf(storage.ErrIO, "file %s is %d bytes, limit is %d", path, info.Size(), s.maxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, s.maxFileSize+1))
	if err != nil {
		return nil, false, errors.Wrapf(storage.ErrIO, "could not read file %s: %v", path, err)
	}

	if int64(len(data)) > s.maxFileSize {
		return nil, false, errors.Wrapf(storage.ErrIO, "file %s grew past limit %d while reading", path, s.maxFileSize)
	}

	doc, err = Decode(data)
	if err != nil {
		return nil, false, errors.Wrapf(err, "file %s", path)
	}

	return doc, true, nil
}

// Decode parses data as a persons document without validating the records.
func Decode(data []byte) (*storage.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.Wrap(storage.ErrParse, "content is not well formed JSON")
	}

	if !gjson.ParseBytes(data).IsObject() {
		return nil, errors.Wrap(storage.ErrParse, "top level value must be an object")
	}

	records := gjson.GetBytes(data, storage.RecordsKey)
	if records.Exists() && records.Type != gjson.Null && !records.IsArray() {
		return nil, errors.Wrapf(storage.ErrParse, "%q must be an array", storage.RecordsKey)
	}

	var doc storage.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(storage.ErrParse, "could not unmarshal document: %v", err)
	}

	return &doc, nil
}

// Write replaces the file at path with the document, creating parent
// directories as needed.
func (s *FileStorage) Write(doc *storage.Document, path string) error {
	if path == "" {
		return errors.Wrap(storage.ErrPrecondition, "file path is required")
	}

	if doc == nil {
		return errors.Wrap(storage.ErrPrecondition, "document is required")
	}

	b, err := doc.Marshal()
	if err != nil {
		return errors.Wrap(storage.ErrIO, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not create parent directories of %s: %v", path, err)
	}

	if s.atomic {
		return writeAndSwap(path, b)
	}

	return writeFile(path, b)
}

func writeFile(path string, b []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePerm)
	if err != nil {
		return errors.Wrapf(storage.ErrIO, "could not open file %s for writing: %v", path, err)
	}

	defer func() {
		if cErr := f.Close(); cErr != nil && err == nil {
			err = errors.Wrapf(storage.ErrIO, "could not close file %s: %v", path, cErr)
		}
	}()

	if _, err := f.Write(b); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not write to file %s: %v", path, err)
	}

	if err := f.Sync(); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not sync file %s: %v", path, err)
	}

	return nil
}

func writeAndSwap(path string, b []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(storage.ErrIO, "could not create temp file for %s: %v", path, err)
	}

	tmpName := tmp.Name()
	swapped := false
	defer func() {
		_ = tmp.Close()
		if !swapped {
			_ = os.Remove(tmpName)
		}
	}()

	if err := tmp.Chmod(filePerm); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not chmod %s: %v", tmpName, err)
	}

	if _, err := tmp.Write(b); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not write into %s: %v", tmpName, err)
	}

	if err := tmp.Sync(); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not sync %s: %v", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not close %s: %v", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return errors.Wrapf(storage.ErrIO, "could not swap %s for %s: %v", path, tmpName, err)
	}

	swapped = true
	return nil
}
