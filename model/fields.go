package model

import (
	"github.com/pkg/errors"
	"regexp"
	"sort"
)

var ErrInvalidField = errors.New("invalid field value")

const (
	NameConstraints    = "Names should only contain alphanumeric characters and spaces, and it should not be blank"
	PhoneConstraints   = "Phone numbers should only contain numbers, and it should be at least 3 digits long"
	EmailConstraints   = "Emails should be of the format local-part@domain"
	AddressConstraints = "Addresses can take any values, and it should not be blank"
	TagConstraints     = "Tags names should be alphanumeric"
)

const (
	alnumRun   = `[A-Za-z0-9]+`
	localPart  = alnumRun + `([+_.-]` + alnumRun + `)*`
	domainPart = alnumRun + `(-` + alnumRun + `)*`
)

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)
	phoneRe   = regexp.MustCompile(`^[0-9]{3,}$`)
	emailRe   = regexp.MustCompile(`^` + localPart + `@(` + domainPart + `\.)*(` + domainPart + `){2,}$`)
	addressRe = regexp.MustCompile(`^[^\s].*$`)
	tagRe     = regexp.MustCompile(`^[A-Za-z0-9]+$`)
)

func IsValidName(s string) bool    { return nameRe.MatchString(s) }
func IsValidPhone(s string) bool   { return phoneRe.MatchString(s) }
func IsValidEmail(s string) bool   { return emailRe.MatchString(s) }
func IsValidAddress(s string) bool { return addressRe.MatchString(s) }
func IsValidTag(s string) bool     { return tagRe.MatchString(s) }

type Name string

func NewName(s string) (Name, error) {
	if !IsValidName(s) {
		return "", errors.Wrap(ErrInvalidField, NameConstraints)
	}
	return Name(s), nil
}

func (n Name) String() string { return string(n) }

type Phone string

func NewPhone(s string) (Phone, error) {
	if !IsValidPhone(s) {
		return "", errors.Wrap(ErrInvalidField, PhoneConstraints)
	}
	return Phone(s), nil
}

func (p Phone) String() string { return string(p) }

type Email string

func NewEmail(s string) (Email, error) {
	if !IsValidEmail(s) {
		return "", errors.Wrap(ErrInvalidField, EmailConstraints)
	}
	return Email(s), nil
}

func (e Email) String() string { return string(e) }

type Address string

func NewAddress(s string) (Address, error) {
	if !IsValidAddress(s) {
		return "", errors.Wrap(ErrInvalidField, AddressConstraints)
	}
	return Address(s), nil
}

func (a Address) String() string { return string(a) }

type Tag string

func NewTag(s string) (Tag, error) {
	if !IsValidTag(s) {
		return "", errors.Wrapf(ErrInvalidField, "%s: %q", TagConstraints, s)
	}
	return Tag(s), nil
}

func (t Tag) String() string { return string(t) }

// Tags is a sorted set of unique tags.
type Tags []Tag

func NewTags(tags ...Tag) Tags {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[Tag]struct{}, len(tags))
	result := make(Tags, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func (ts Tags) Has(t Tag) bool {
	i := sort.Search(len(ts), func(i int) bool { return ts[i] >= t })
	return i < len(ts) && ts[i] == t
}

func (ts Tags) Equal(other Tags) bool {
	if len(ts) != len(other) {
		return false
	}

	for i := range ts {
		if ts[i] != other[i] {
			return false
		}
	}

	return true
}
