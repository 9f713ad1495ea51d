package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/google/uuid"

	"shopservice/pkg/domain/model"
)

var (
	ErrInvalidName        = errors.New("name should contain only letters")
	ErrInvalidSurname     = errors.New("surname should contain only letters")
	ErrInvalidEmail       = errors.New("email address is malformed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)

const minPasswordLength = 8

var letterPattern = regexp.MustCompile(`^[а-яА-Яa-zA-Z\-]+$`)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type UserService interface {
	RegisterUser(ctx context.Context, name, surname, email, plainTextPassword string) (*model.User, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, patch model.UserPatch) (uuid.UUID, error)
	DeactivateUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
	GetUserWithOrders(ctx context.Context, userID uuid.UUID) (*model.UserWithOrderSummary, error)
	// Authenticate resolves a user by email and verifies the password.
	// Both unknown email and wrong password come back as
	// ErrInvalidCredentials so callers cannot probe for accounts.
	Authenticate(ctx context.Context, email, plainTextPassword string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
}

func NewUserService(uow model.UnitOfWork, passManager model.PasswordManager) UserService {
	return &userService{uow: uow, passManager: passManager}
}

type userService struct {
	uow         model.UnitOfWork
	passManager model.PasswordManager
}

func (s *userService) RegisterUser(ctx context.Context, name, surname, email, plainTextPassword string) (*model.User, error) {
	if !letterPattern.MatchString(name) {
		return nil, ErrInvalidName
	}
	if !letterPattern.MatchString(surname) {
		return nil, ErrInvalidSurname
	}
	if !emailPattern.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(plainTextPassword) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := s.passManager.Hash(plainTextPassword)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:             uuid.New(),
		Name:           name,
		Surname:        surname,
		Email:          email,
		IsActive:       true,
		HashedPassword: hashedPassword,
	}
	err = s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		if _, err := provider.UserRepository().FindByEmail(ctx, email); err == nil {
			return model.ErrEmailTaken
		} else if !errors.Is(err, model.ErrUserNotFound) {
			return err
		}
		// The unique constraint on email still backs this up if a
		// concurrent registration slips between the check and the insert.
		return provider.UserRepository().Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID uuid.UUID, patch model.UserPatch) (uuid.UUID, error) {
	if patch.IsEmpty() {
		return uuid.Nil, ErrNoFieldsProvided
	}
	if patch.Name != nil && !letterPattern.MatchString(*patch.Name) {
		return uuid.Nil, ErrInvalidName
	}
	if patch.Surname != nil && !letterPattern.MatchString(*patch.Surname) {
		return uuid.Nil, ErrInvalidSurname
	}
	if patch.Email != nil && !emailPattern.MatchString(*patch.Email) {
		return uuid.Nil, ErrInvalidEmail
	}

	var updatedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		updatedID, err = provider.UserRepository().Update(ctx, userID, patch)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return updatedID, nil
}

func (s *userService) DeactivateUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	var deletedID uuid.UUID
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		deletedID, err = provider.UserRepository().Deactivate(ctx, userID)
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return deletedID, nil
}

// GetUserWithOrders returns the user row plus count/sum aggregates over the
// user's non-deleted orders. Inactive users are returned as-is; the two
// reads are read-committed, not a snapshot.
func (s *userService) GetUserWithOrders(ctx context.Context, userID uuid.UUID) (*model.UserWithOrderSummary, error) {
	var view *model.UserWithOrderSummary
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		user, err := provider.UserRepository().Find(ctx, userID)
		if err != nil {
			return err
		}
		summary, err := provider.OrderRepository().SummarizeForUser(ctx, userID)
		if err != nil {
			return err
		}

		view = &model.UserWithOrderSummary{
			User:        *user,
			TotalOrders: summary.TotalOrders,
			TotalAmount: summary.TotalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *userService) Authenticate(ctx context.Context, email, plainTextPassword string) (*model.User, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.passManager.Check(user.HashedPassword, plainTextPassword)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user *model.User
	err := s.uow.Execute(ctx, func(provider model.RepositoryProvider) error {
		var err error
		user, err = provider.UserRepository().FindByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
