package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"shopservice/pkg/domain/model"
)

func NewPasswordManager() model.PasswordManager {
	return &bcryptPasswordManager{cost: bcrypt.DefaultCost}
}

type bcryptPasswordManager struct {
	cost int
}

func (m *bcryptPasswordManager) Hash(plainTextPassword string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), m.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (m *bcryptPasswordManager) Check(hashedPassword, plainTextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainTextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
