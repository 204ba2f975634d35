package auth

import (
	apperrors "photobooth/internal/errors"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Provider authenticates dashboard users. The tracker treats
// authentication as an external collaborator; no sessions or tokens
// are issued.
type Provider interface {
	Authenticate(username, password string) (*User, error)
}

type credential struct {
	hash []byte
	role string
}

// StaticProvider holds a fixed credential table built at startup.
// Passwords are bcrypt-hashed on construction and never kept in clear.
type StaticProvider struct {
	users map[string]credential
}

func NewStaticProvider() *StaticProvider {
	return &StaticProvider{users: make(map[string]credential)}
}

func (p *StaticProvider) AddUser(username, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.users[username] = credential{hash: hash, role: role}
	return nil
}

func (p *StaticProvider) Authenticate(username, password string) (*User, error) {
	cred, ok := p.users[username]
	if !ok {
		return nil, apperrors.NewAuthError("invalid username or password")
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return nil, apperrors.NewAuthError("invalid username or password")
	}
	return &User{Username: username, Role: cred.role}, nil
}
