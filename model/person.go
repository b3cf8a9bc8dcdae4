package model

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

type Person struct {
	Name    Name
	Phone   Phone
	Email   Email
	Address Address
	Tags    Tags
}

func NewPerson(name Name, phone Phone, email Email, address Address, tags ...Tag) Person {
	return Person{
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Tags:    NewTags(tags...),
	}
}

// IdentityKey is the value two persons share when they are considered the same person.
func (p Person) IdentityKey() string {
	return p.Name.String()
}

// IsSamePerson reports whether the persons share an identity, a weaker
// notion than Equal.
func (p Person) IsSamePerson(other Person) bool {
	return p.IdentityKey() == other.IdentityKey()
}

func (p Person) Equal(other Person) bool {
	return p.Name == other.Name &&
		p.Phone == other.Phone &&
		p.Email == other.Email &&
		p.Address == other.Address &&
		p.Tags.Equal(other.Tags)
}

// Validate checks every field against its lexical rule.
func (p Person) Validate() error {
	switch {
	case !IsValidName(p.Name.String()):
		return errors.Wrap(ErrInvalidField, NameConstraints)
	case !IsValidPhone(p.Phone.String()):
		return errors.Wrap(ErrInvalidField, PhoneConstraints)
	case !IsValidEmail(p.Email.String()):
		return errors.Wrap(ErrInvalidField, EmailConstraints)
	case !IsValidAddress(p.Address.String()):
		return errors.Wrap(ErrInvalidField, AddressConstraints)
	}

	for _, t := range p.Tags {
		if !IsValidTag(t.String()) {
			return errors.Wrapf(ErrInvalidField, "%s: %q", TagConstraints, t)
		}
	}

	return nil
}

// Clone returns a deep copy with the tags in canonical order.
func (p Person) Clone() Person {
	var cp Person
	if err := copier.CopyWithOption(&cp, &p, copier.Option{DeepCopy: true}); err != nil {
		panic("could not copy person " + err.Error())
	}

	cp.Tags = NewTags(cp.Tags...)
	return cp
}
