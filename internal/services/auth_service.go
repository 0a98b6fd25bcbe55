package services

import (
	"sync"

	"beulahpos/internal/domain"
)

// AuthService binds session ids to logged-in users. Sessions are
// in-memory only; credentials themselves live in the shared record.
type AuthService struct {
	Users *UserService

	mu       sync.Mutex
	sessions map[string]int64
}

func NewAuthService(users *UserService) *AuthService {
	return &AuthService{Users: users, sessions: make(map[string]int64)}
}

func (s *AuthService) Login(sid, username, password string) (domain.User, error) {
	u, err := s.Users.Login(username, password)
	if err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	s.sessions[sid] = u.ID
	s.mu.Unlock()
	return u, nil
}

func (s *AuthService) Logout(sid string) {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
}

// CurrentUser resolves the session against the live record, so a user
// deleted in another station loses access on the next request.
func (s *AuthService) CurrentUser(sid string) (domain.User, bool) {
	s.mu.Lock()
	id, ok := s.sessions[sid]
	s.mu.Unlock()
	if !ok {
		return domain.User{}, false
	}

	var u domain.User
	found := false
	s.Users.St.View(func(r domain.Record) {
		for _, candidate := range r.Users {
			if candidate.ID == id {
				u = candidate
				found = true
				return
			}
		}
	})
	return u, found
}
