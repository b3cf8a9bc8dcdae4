package todolist_test

import (
	"github.com/denismitr/todolist/model"
	"testing"
)

var (
	alice  = model.NewPerson("Alice Pauline", "94351253", "alice@example.com", "123, Jurong West Ave 6, #08-111", "friends")
	benson = model.NewPerson("Benson Meier", "98765432", "johnd@example.com", "311, Clementi Ave 2, #02-25", "owesMoney", "friends")
	carl   = model.NewPerson("Carl Kurz", "95352563", "heinz@example.com", "wall street")
	daniel = model.NewPerson("Daniel Meier", "87652533", "cornelia@example.com", "10th street", "friends")
	elle   = model.NewPerson("Elle Meyer", "9482224", "werner@example.com", "michegan ave")
	fiona  = model.NewPerson("Fiona Kunz", "9482427", "lydia@example.com", "little tokyo")
	george = model.NewPerson("George Best", "9482442", "anna@example.com", "4th street")

	hoon = model.NewPerson("Hoon Meier", "8482424", "stefan@example.com", "little india")
	ida  = model.NewPerson("Ida Mueller", "8482131", "hans@example.com", "chicago ave")
)

func typicalTodoList(t *testing.T) *model.TodoList {
	t.Helper()
	l, err := model.NewTodoListFrom(alice, benson, carl, daniel, elle, fiona, george)
	if err != nil {
		t.Fatal(err)
	}
	return l
}
