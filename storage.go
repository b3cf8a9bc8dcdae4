package todolist

import (
	"github.com/denismitr/todolist/internal/storage"
	"github.com/denismitr/todolist/internal/storage/jsonstorage"
	"github.com/denismitr/todolist/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Record is the on-disk form of a person.
type Record = storage.Person

// Codec converts persons to and from records. Decode must fail with an
// error matching ErrValidation when a record is unusable.
type Codec = storage.Codec

// Storage persists a todo list. Load reports a missing data file with
// ok == false and a nil error.
type Storage interface {
	DefaultPath() string
	Load() (l *model.TodoList, ok bool, err error)
	LoadFrom(path string) (l *model.TodoList, ok bool, err error)
	Save(l *model.TodoList) error
	SaveTo(l *model.TodoList, path string) error
}

// JSONStorage keeps a todo list in a JSON file.
// Calls against the same path must be serialized by the caller.
type JSONStorage struct {
	path         string
	codec        Codec
	declaredTags []string
	fileOpts     []jsonstorage.Option
	files        *jsonstorage.FileStorage
	log          *zap.Logger
}

var _ Storage = (*JSONStorage)(nil)

type Option func(s *JSONStorage)

func WithLogger(l *zap.Logger) Option {
	return func(s *JSONStorage) {
		if l != nil {
			s.log = l
		}
	}
}

// WithCodec replaces the default person codec. It takes precedence over WithDeclaredTags.
func WithCodec(c Codec) Option {
	return func(s *JSONStorage) {
		s.codec = c
	}
}

// WithDeclaredTags restricts the tags a loaded person may carry.
func WithDeclaredTags(tags ...string) Option {
	return func(s *JSONStorage) {
		s.declaredTags = append(s.declaredTags, tags...)
	}
}

func WithMaxFileSize(n int64) Option {
	return func(s *JSONStorage) {
		s.fileOpts = append(s.fileOpts, jsonstorage.WithMaxFileSize(n))
	}
}

// WithAtomicWrites makes saves replace the file through a rename.
func WithAtomicWrites(atomic bool) Option {
	return func(s *JSONStorage) {
		s.fileOpts = append(s.fileOpts, jsonstorage.WithAtomicWrites(atomic))
	}
}

func New(defaultPath string, opts ...Option) (*JSONStorage, error) {
	if defaultPath == "" {
		return nil, errors.Wrap(ErrPrecondition, "default file path is required")
	}

	s := &JSONStorage{path: defaultPath, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}

	if s.codec == nil {
		c, err := storage.NewPersonCodec(s.declaredTags...)
		if err != nil {
			return nil, err
		}
		s.codec = c
	}

	s.files = jsonstorage.New(s.fileOpts...)
	return s, nil
}

func NewFromConfig(cfg *Config, opts ...Option) (*JSONStorage, error) {
	c := DefaultConfig()
	if cfg != nil {
		c = &Config{}
		*c = *cfg
		c.DeclaredTags = append([]string(nil), cfg.DeclaredTags...)
		c.applyDefaults()
	}
	cfg = c

	l, err := cfg.logger()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithLogger(l),
		WithDeclaredTags(cfg.DeclaredTags...),
		WithAtomicWrites(cfg.AtomicWrites),
	}
	if cfg.MaxFileSize > 0 {
		base = append(base, WithMaxFileSize(cfg.MaxFileSize))
	}

	return New(cfg.DataFile, append(base, opts...)...)
}

func (s *JSONStorage) DefaultPath() string {
	return s.path
}

func (s *JSONStorage) Load() (*model.TodoList, bool, error) {
	return s.LoadFrom(s.path)
}

func (s *JSONStorage) LoadFrom(path string) (*model.TodoList, bool, error) {
	if path == "" {
		return nil, false, errors.Wrap(ErrPrecondition, "file path is required")
	}

	s.log.Debug("attempting to read data from file", zap.String("path", path))

	doc, ok, err := s.files.Read(path)
	if err != nil {
		if isDataConversion(err) {
			s.log.Warn("data file is not in the correct format", zap.String("path", path), zap.Error(err))
			return nil, false, &DataConversionError{Path: path, Err: err}
		}
		return nil, false, err
	}

	if !ok {
		s.log.Debug("data file not found", zap.String("path", path))
		return nil, false, nil
	}

	l, err := doc.ToDomain(s.codec)
	if err != nil {
		s.log.Warn("illegal values found in data file", zap.String("path", path), zap.Error(err))
		return nil, false, &DataConversionError{Path: path, Err: err}
	}

	s.log.Debug("loaded todo list", zap.String("path", path), zap.Int("persons", l.Len()))
	return l, true, nil
}

func (s *JSONStorage) Save(l *model.TodoList) error {
	return s.SaveTo(l, s.path)
}

func (s *JSONStorage) SaveTo(l *model.TodoList, path string) error {
	if l == nil {
		return errors.Wrap(ErrPrecondition, "todo list is required")
	}

	if path == "" {
		return errors.Wrap(ErrPrecondition, "file path is required")
	}

	s.log.Debug("attempting to write to data file", zap.String("path", path))

	doc := storage.FromDomain(l, s.codec)
	if err := s.files.Write(doc, path); err != nil {
		s.log.Warn("could not write data file", zap.String("path", path), zap.Error(err))
		return err
	}

	if s.log.Core().Enabled(zap.DebugLevel) {
		if fp, err := doc.Fingerprint(); err == nil {
			s.log.Debug("saved todo list", zap.String("path", path), zap.Int("persons", l.Len()), zap.Uint64("fingerprint", fp))
		}
	}

	return nil
}
