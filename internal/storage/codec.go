package storage

import (
	"fmt"
	"github.com/denismitr/todolist/model"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"reflect"
	"strings"
)

// Person is the on-disk mirror of model.Person.
type Person struct {
	Name    string   `json:"name" validate:"required,personname"`
	Phone   string   `json:"phone" validate:"required,phone"`
	Email   string   `json:"email" validate:"required,emailaddr"`
	Address string   `json:"address" validate:"required,address"`
	Tags    []string `json:"tags" validate:"dive,tagname,declared"`
}

// Codec converts persons between their domain and on-disk forms.
// Encode is total, Decode fails with ErrValidation.
type Codec interface {
	Encode(p model.Person) Person
	Decode(p Person) (model.Person, error)
}

type PersonCodec struct {
	validate *validator.Validate
	declared map[string]struct{}
}

var _ Codec = (*PersonCodec)(nil)

// NewPersonCodec creates a codec. When declaredTags is not empty every
// decoded tag must name one of them.
func NewPersonCodec(declaredTags ...string) (*PersonCodec, error) {
	c := &PersonCodec{validate: validator.New()}

	if len(declaredTags) > 0 {
		c.declared = make(map[string]struct{}, len(declaredTags))
		for _, t := range declaredTags {
			if !model.IsValidTag(t) {
				return nil, errors.Wrapf(ErrPrecondition, "declared tag %q: %s", t, model.TagConstraints)
			}
			c.declared[t] = struct{}{}
		}
	}

	c.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]func(string) bool{
		"personname": model.IsValidName,
		"phone":      model.IsValidPhone,
		"emailaddr":  model.IsValidEmail,
		"address":    model.IsValidAddress,
		"tagname":    model.IsValidTag,
		"declared":   c.isDeclared,
	}

	for tag, rule := range rules {
		rule := rule
		if err := c.validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return rule(fl.Field().String())
		}); err != nil {
			return nil, errors.Wrapf(err, "could not register %s validation", tag)
		}
	}

	return c, nil
}

// MustPersonCodec is NewPersonCodec that panics on an invalid declared tag.
func MustPersonCodec(declaredTags ...string) *PersonCodec {
	c, err := NewPersonCodec(declaredTags...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *PersonCodec) isDeclared(tag string) bool {
	if c.declared == nil {
		return true
	}
	_, ok := c.declared[tag]
	return ok
}

func (c *PersonCodec) Encode(p model.Person) Person {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.String()
	}

	return Person{
		Name:    p.Name.String(),
		Phone:   p.Phone.String(),
		Email:   p.Email.String(),
		Address: p.Address.String(),
		Tags:    tags,
	}
}

func (c *PersonCodec) Decode(p Person) (model.Person, error) {
	if err := c.validate.Struct(p); err != nil {
		return model.Person{}, c.violations(err)
	}

	name, err := model.NewName(p.Name)
	if err != nil {
		return model.Person{}, errors.Wrap(ErrValidation, err.Error())
	}

	phone, err := model.NewPhone(p.Phone)
	if err != nil {
		return model.Person{}, errors.Wrap(ErrValidation, err.Error())
	}

	email, err := model.NewEmail(p.Email)
	if err != nil {
		return model.Person{}, errors.Wrap(ErrValidation, err.Error())
	}

	address, err := model.NewAddress(p.Address)
	if err != nil {
		return model.Person{}, errors.Wrap(ErrValidation, err.Error())
	}

	tags := make([]model.Tag, 0, len(p.Tags))
	for _, raw := range p.Tags {
		t, err := model.NewTag(raw)
		if err != nil {
			return model.Person{}, errors.Wrap(ErrValidation, err.Error())
		}
		tags = append(tags, t)
	}

	return model.NewPerson(name, phone, email, address, tags...), nil
}

func (c *PersonCodec) violations(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(ErrValidation, err.Error())
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, violationMessage(fe))
	}

	return errors.Wrap(ErrValidation, strings.Join(msgs, "; "))
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Person's %s field is missing!", fe.Field())
	case "personname":
		return model.NameConstraints
	case "phone":
		return model.PhoneConstraints
	case "emailaddr":
		return model.EmailConstraints
	case "address":
		return model.AddressConstraints
	case "tagname":
		return fmt.Sprintf("%s: %q", model.TagConstraints, fe.Value())
	case "declared":
		return fmt.Sprintf("tag %q is not declared", fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
