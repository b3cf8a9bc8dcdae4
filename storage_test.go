package todolist_test

import (
	"github.com/denismitr/todolist"
	"github.com/denismitr/todolist/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"os"
	"path/filepath"
	"testing"
)

const fixtures = "./__fixtures__"

func readFixture(t *testing.T, name string) (*model.TodoList, bool, error) {
	t.Helper()
	path := filepath.Join(fixtures, name)
	s, err := todolist.New(path)
	require.NoError(t, err)
	return s.LoadFrom(path)
}

func TestJSONStorage_Load(t *testing.T) {
	t.Run("missing file is an empty result", func(t *testing.T) {
		l, ok, err := readFixture(t, "NonExistentFile.json")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, l)
	})

	t.Run("not json format", func(t *testing.T) {
		l, ok, err := readFixture(t, "notJsonFormatTodoList.json")
		require.Error(t, err)
		assert.ErrorIs(t, err, todolist.ErrDataConversion)
		assert.ErrorIs(t, err, todolist.ErrParse)
		assert.NotErrorIs(t, err, todolist.ErrValidation)
		assert.False(t, ok)
		assert.Nil(t, l)

		var dce *todolist.DataConversionError
		require.True(t, errors.As(err, &dce))
		assert.Equal(t, filepath.Join(fixtures, "notJsonFormatTodoList.json"), dce.Path)
	})

	t.Run("persons is not an array", func(t *testing.T) {
		_, _, err := readFixture(t, "personsNotArrayTodoList.json")
		assert.ErrorIs(t, err, todolist.ErrDataConversion)
		assert.ErrorIs(t, err, todolist.ErrParse)
	})

	t.Run("invalid person", func(t *testing.T) {
		_, _, err := readFixture(t, "invalidPersonTodoList.json")
		assert.ErrorIs(t, err, todolist.ErrDataConversion)
		assert.ErrorIs(t, err, todolist.ErrValidation)
	})

	t.Run("invalid and valid person", func(t *testing.T) {
		_, _, err := readFixture(t, "invalidAndValidPersonTodoList.json")
		assert.ErrorIs(t, err, todolist.ErrDataConversion)
		assert.ErrorIs(t, err, todolist.ErrValidation)
	})

	t.Run("duplicate persons", func(t *testing.T) {
		l, _, err := readFixture(t, "duplicatePersonTodoList.json")
		assert.ErrorIs(t, err, todolist.ErrDataConversion)
		assert.ErrorIs(t, err, todolist.ErrDuplicate)
		assert.Nil(t, l)
	})

	t.Run("unreadable path is an io failure", func(t *testing.T) {
		dir := t.TempDir()
		s, err := todolist.New(dir)
		require.NoError(t, err)

		_, _, err = s.Load()
		assert.ErrorIs(t, err, todolist.ErrIO)
		assert.NotErrorIs(t, err, todolist.ErrDataConversion)
	})

	t.Run("empty path", func(t *testing.T) {
		s, err := todolist.New("SomeFile.json")
		require.NoError(t, err)

		_, _, err = s.LoadFrom("")
		assert.ErrorIs(t, err, todolist.ErrPrecondition)
	})
}

func TestJSONStorage_ReadAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TempTodoList.json")
	original := typicalTodoList(t)
	s, err := todolist.New(path)
	require.NoError(t, err)

	// save in new file and read back
	require.NoError(t, s.SaveTo(original, path))
	readBack, ok, err := s.LoadFrom(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, original.Equal(readBack))

	// modify data, overwrite existing file, and read back
	require.NoError(t, original.Add(hoon))
	require.NoError(t, original.Remove(alice))
	require.NoError(t, s.SaveTo(original, path))
	readBack, ok, err = s.LoadFrom(path)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, original.Equal(readBack))

	// save and read without specifying file path
	require.NoError(t, original.Add(ida))
	require.NoError(t, s.Save(original))
	readBack, ok, err = s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, original.Equal(readBack))
	assert.Equal(t, path, s.DefaultPath())
}

func TestJSONStorage_ReadAndSaveUnsortedTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")
	s, err := todolist.New(path)
	require.NoError(t, err)

	l := model.NewTodoList()
	require.NoError(t, l.Add(model.Person{
		Name:    "Rachel Green",
		Phone:   "98765432",
		Email:   "rachel@example.com",
		Address: "90 Bedford Street",
		Tags:    model.Tags{"b", "a", "a"},
	}))
	require.NoError(t, s.Save(l))

	back, ok, err := s.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, l.Equal(back))
	assert.Equal(t, model.Tags{"a", "b"}, back.Persons()[0].Tags)
	assert.True(t, back.Persons()[0].Tags.Has("a"))
}

func TestJSONStorage_Save(t *testing.T) {
	t.Run("nil todo list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "SomeFile.json")
		s, err := todolist.New(path)
		require.NoError(t, err)

		assert.ErrorIs(t, s.SaveTo(nil, path), todolist.ErrPrecondition)
		assert.ErrorIs(t, s.Save(nil), todolist.ErrPrecondition)
		assert.NoFileExists(t, path)
	})

	t.Run("empty path", func(t *testing.T) {
		s, err := todolist.New("SomeFile.json")
		require.NoError(t, err)
		assert.ErrorIs(t, s.SaveTo(model.NewTodoList(), ""), todolist.ErrPrecondition)
	})

	t.Run("saving twice leaves identical content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "data", "todolist.json")
		s, err := todolist.New(path, todolist.WithAtomicWrites(true))
		require.NoError(t, err)

		l := typicalTodoList(t)
		require.NoError(t, s.Save(l))
		first, err := os.ReadFile(path)
		require.NoError(t, err)

		require.NoError(t, s.Save(l))
		second, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("empty list round trips", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "todolist.json")
		s, err := todolist.New(path)
		require.NoError(t, err)

		require.NoError(t, s.Save(model.NewTodoList()))
		l, ok, err := s.Load()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, 0, l.Len())
	})

	t.Run("io failure is surfaced unchanged", func(t *testing.T) {
		dir := t.TempDir()
		s, err := todolist.New(dir)
		require.NoError(t, err)

		err = s.Save(typicalTodoList(t))
		assert.ErrorIs(t, err, todolist.ErrIO)
		assert.NotErrorIs(t, err, todolist.ErrDataConversion)
	})
}

func TestJSONStorage_DefaultPathDelegation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todolist.json")
	explicit := filepath.Join(dir, "explicit.json")

	s, err := todolist.New(path)
	require.NoError(t, err)

	l := typicalTodoList(t)
	require.NoError(t, s.Save(l))
	require.NoError(t, s.SaveTo(l, explicit))

	viaDefault, err := os.ReadFile(path)
	require.NoError(t, err)
	viaPath, err := os.ReadFile(explicit)
	require.NoError(t, err)
	assert.Equal(t, viaDefault, viaPath)

	l1, ok1, err1 := s.Load()
	l2, ok2, err2 := s.LoadFrom(path)
	assert.Equal(t, err1, err2)
	assert.Equal(t, ok1, ok2)
	assert.True(t, l1.Equal(l2))
}

func TestJSONStorage_DeclaredTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todolist.json")

	writer, err := todolist.New(path)
	require.NoError(t, err)
	require.NoError(t, writer.Save(typicalTodoList(t)))

	strict, err := todolist.New(path, todolist.WithDeclaredTags("friends"))
	require.NoError(t, err)
	_, _, err = strict.Load()
	assert.ErrorIs(t, err, todolist.ErrValidation)

	lenient, err := todolist.New(path, todolist.WithDeclaredTags("friends", "owesMoney"))
	require.NoError(t, err)
	_, ok, err := lenient.Load()
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = todolist.New(path, todolist.WithDeclaredTags("no spaces allowed"))
	assert.ErrorIs(t, err, todolist.ErrPrecondition)
}

func TestJSONStorage_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	path := filepath.Join(t.TempDir(), "todolist.json")

	s, err := todolist.New(path, todolist.WithLogger(zap.New(core)))
	require.NoError(t, err)

	require.NoError(t, s.Save(typicalTodoList(t)))
	_, _, err = s.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, logs.FilterMessage("attempting to write to data file").Len())
	assert.Equal(t, 1, logs.FilterMessage("attempting to read data from file").Len())
	assert.Equal(t, 1, logs.FilterMessage("saved todo list").Len())

	_, _, err = s.LoadFrom(filepath.Join(fixtures, "duplicatePersonTodoList.json"))
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("illegal values found in data file").Len())
}

func TestNew(t *testing.T) {
	_, err := todolist.New("")
	assert.ErrorIs(t, err, todolist.ErrPrecondition)

	var _ todolist.Storage = &todolist.JSONStorage{}
}
