package model

import (
	"github.com/pkg/errors"
	"github.com/tidwall/btree"
)

var ErrDuplicatePerson = errors.New("person already exists")
var ErrPersonNotFound = errors.New("person not found")

const castPanic = "how could identity index item not be of type *indexItem"

type indexItem struct {
	key    string
	person Person
}

func byIdentityKey(a, b interface{}) bool {
	i1, ok1 := a.(*indexItem)
	i2, ok2 := b.(*indexItem)
	if !ok1 || !ok2 {
		panic(castPanic)
	}
	return i1.key < i2.key
}

// TodoList keeps persons in insertion order and never holds two persons
// with the same identity.
type TodoList struct {
	persons []Person
	index   *btree.BTree
}

func NewTodoList() *TodoList {
	return &TodoList{index: btree.NewNonConcurrent(byIdentityKey)}
}

// NewTodoListFrom builds a list from persons, failing on the first identity collision.
func NewTodoListFrom(persons ...Person) (*TodoList, error) {
	l := NewTodoList()
	for _, p := range persons {
		if err := l.Add(p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *TodoList) Has(p Person) bool {
	return l.index.Get(&indexItem{key: p.IdentityKey()}) != nil
}

func (l *TodoList) Add(p Person) error {
	if err := p.Validate(); err != nil {
		return errors.Wrapf(err, "person %q", p.Name)
	}

	if l.Has(p) {
		return errors.Wrapf(ErrDuplicatePerson, "%s", p.Name)
	}

	cp := p.Clone()
	l.index.Set(&indexItem{key: cp.IdentityKey(), person: cp})
	l.persons = append(l.persons, cp)
	return nil
}

func (l *TodoList) Remove(p Person) error {
	if l.index.Delete(&indexItem{key: p.IdentityKey()}) == nil {
		return errors.Wrapf(ErrPersonNotFound, "%s", p.Name)
	}

	for i := range l.persons {
		if l.persons[i].IsSamePerson(p) {
			l.persons = append(l.persons[:i], l.persons[i+1:]...)
			break
		}
	}

	return nil
}

func (l *TodoList) Len() int {
	return len(l.persons)
}

// Persons returns a copy of the persons in insertion order.
func (l *TodoList) Persons() []Person {
	result := make([]Person, len(l.persons))
	for i := range l.persons {
		result[i] = l.persons[i].Clone()
	}
	return result
}

func (l *TodoList) Equal(other *TodoList) bool {
	if l == nil || other == nil {
		return l == other
	}

	if l.Len() != other.Len() {
		return false
	}

	for i := range l.persons {
		if !l.persons[i].Equal(other.persons[i]) {
			return false
		}
	}

	return true
}
