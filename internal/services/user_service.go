package services

import (
	"strings"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
	"beulahpos/internal/validate"
)

// adminUserID is the seeded administrator; it can never be deleted.
const adminUserID int64 = 1

type UserService struct {
	St *station.Station
}

func NewUserService(st *station.Station) *UserService {
	return &UserService{St: st}
}

type RegisterInput struct {
	Name           string
	Username       string
	Password       string
	SecretQuestion string
	SecretAnswer   string
}

func (s *UserService) Register(in RegisterInput) (domain.User, error) {
	if !validate.FullName(in.Name) {
		return domain.User{}, ErrIncompleteName
	}
	username := strings.TrimSpace(in.Username)
	password := strings.TrimSpace(in.Password)
	if username == "" || password == "" {
		return domain.User{}, ErrBadCreds
	}

	var u domain.User
	err := s.St.Update(func(r *domain.Record) error {
		if r.UserByUsername(username) != nil {
			return ErrDuplicateUsername
		}
		u = domain.User{
			ID:             domain.NewID(),
			Name:           strings.TrimSpace(in.Name),
			Username:       username,
			Password:       password,
			IsAdmin:        false,
			SecretQuestion: in.SecretQuestion,
			SecretAnswer:   validate.Answer(in.SecretAnswer),
		}
		r.Users = append(r.Users, u)
		return nil
	})
	return u, err
}

func (s *UserService) Login(username, password string) (domain.User, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	var u domain.User
	err := ErrBadCreds
	s.St.View(func(r domain.Record) {
		if found := r.UserByUsername(username); found != nil && found.Password == password {
			u = *found
			err = nil
		}
	})
	return u, err
}

// RecoveryQuestion exposes the secret question for a username so the
// recovery form can render it.
func (s *UserService) RecoveryQuestion(username string) (string, error) {
	var q string
	err := ErrUserNotFound
	s.St.View(func(r domain.Record) {
		if u := r.UserByUsername(strings.TrimSpace(username)); u != nil {
			q = u.SecretQuestion
			err = nil
		}
	})
	return q, err
}

// ResetPassword sets a new password after the secret answer matches.
func (s *UserService) ResetPassword(username, answer, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if newPassword == "" {
		return ErrEmptyPassword
	}
	return s.St.Update(func(r *domain.Record) error {
		u := r.UserByUsername(strings.TrimSpace(username))
		if u == nil {
			return ErrUserNotFound
		}
		if u.SecretAnswer != validate.Answer(answer) {
			return ErrBadAnswer
		}
		u.Password = newPassword
		return nil
	})
}

// Delete removes a user. The seeded administrator is rejected no matter
// who asks.
func (s *UserService) Delete(id int64) error {
	if id == adminUserID {
		return ErrProtectedUser
	}
	return s.St.Update(func(r *domain.Record) error {
		for i, u := range r.Users {
			if u.ID == id {
				if u.ID == adminUserID {
					return ErrProtectedUser
				}
				r.Users = append(r.Users[:i], r.Users[i+1:]...)
				return nil
			}
		}
		return ErrUserNotFound
	})
}

func (s *UserService) List() []domain.User {
	var out []domain.User
	s.St.View(func(r domain.Record) {
		out = append(out, r.Users...)
	})
	return out
}
