package storage

import (
	"encoding/json"
	"github.com/cespare/xxhash/v2"
	"github.com/denismitr/todolist/model"
	"github.com/pkg/errors"
)

// RecordsKey is the document root tag holding the persons array.
const RecordsKey = "persons"

// Document is the exact on-disk shape of a todo list. It carries no
// semantic validation, that happens in ToDomain.
type Document struct {
	Persons []Person `json:"persons"`
}

// FromDomain snapshots the persons of l in order.
func FromDomain(l *model.TodoList, c Codec) *Document {
	persons := l.Persons()
	doc := &Document{Persons: make([]Person, 0, len(persons))}
	for _, p := range persons {
		doc.Persons = append(doc.Persons, c.Encode(p))
	}
	return doc
}

// ToDomain converts every record in document order. It fails on the first
// invalid record or on the first record whose identity was already seen,
// and never returns a partial list.
func (d *Document) ToDomain(c Codec) (*model.TodoList, error) {
	l := model.NewTodoList()
	seen := make(map[string]struct{}, len(d.Persons))

	for i, raw := range d.Persons {
		p, err := c.Decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "person at index %d", i)
		}

		key := p.IdentityKey()
		if _, ok := seen[key]; ok {
			return nil, errors.Wrapf(ErrDuplicate, "person %q at index %d", key, i)
		}
		seen[key] = struct{}{}

		if err := l.Add(p); err != nil {
			return nil, errors.Wrap(ErrDuplicate, err.Error())
		}
	}

	return l, nil
}

// Marshal returns the canonical text form: two space indented JSON with a
// trailing newline.
func (d *Document) Marshal() ([]byte, error) {
	doc := d
	if doc.Persons == nil {
		doc = &Document{Persons: []Person{}}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "could not marshal persons document")
	}

	return append(b, '\n'), nil
}

// Fingerprint is the xxhash64 of the canonical text form.
func (d *Document) Fingerprint() (uint64, error) {
	b, err := d.Marshal()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(b), nil
}
