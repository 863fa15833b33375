package guest

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidName  = errors.New("guest name is required")
	ErrInvalidPhone = errors.New("invalid phone number")
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Role gates the operator surface. Guests never log in; they carry contact
// details on each booking instead.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleOperator Role = "operator"
	RoleAdmin    Role = "admin"
)

func NewRole(s string) (Role, error) {
	switch Role(s) {
	case RoleGuest, RoleOperator, RoleAdmin:
		return Role(s), nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string { return string(r) }

// Guest is an identity keyed by phone number. The operator booking path looks
// one up by phone and creates it from operator-entered fields when absent.
type Guest struct {
	id        uuid.UUID
	name      string
	phone     string
	email     string
	createdAt time.Time
}

func NewGuest(name, phone, email string) (*Guest, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	phone = strings.TrimSpace(phone)
	if !phonePattern.MatchString(phone) {
		return nil, ErrInvalidPhone
	}
	email = strings.TrimSpace(email)
	if email != "" && !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}

	return &Guest{
		id:    uuid.New(),
		name:  name,
		phone: phone,
		email: email,
	}, nil
}

func ReconstructGuest(id uuid.UUID, name, phone, email string, createdAt time.Time) *Guest {
	return &Guest{
		id:        id,
		name:      name,
		phone:     phone,
		email:     email,
		createdAt: createdAt,
	}
}

func (g *Guest) ID() uuid.UUID        { return g.id }
func (g *Guest) Name() string         { return g.name }
func (g *Guest) Phone() string        { return g.phone }
func (g *Guest) Email() string        { return g.email }
func (g *Guest) CreatedAt() time.Time { return g.createdAt }
