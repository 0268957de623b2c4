package user

import "strings"

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return Email{}, ErrInvalidEmail
	}
	at := strings.Index(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 || !strings.Contains(trimmed[at:], ".") {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

type Credentials struct {
	Email    Email
	Password string
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := NewEmail(email)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{Email: e, Password: password}, nil
}
