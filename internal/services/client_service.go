package services

import (
	"strings"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
	"beulahpos/internal/validate"
)

// ClientService is the POS-side client registry. Unlike the menu
// checkout it does not dedupe by phone; walk-in registration keeps
// whatever the operator typed.
type ClientService struct {
	St *station.Station
}

func NewClientService(st *station.Station) *ClientService {
	return &ClientService{St: st}
}

type ClientInput struct {
	Name    string
	Doc     string
	Phone   string
	Email   string
	Address domain.Address
}

func (s *ClientService) Add(in ClientInput) (domain.Client, error) {
	if !validate.FullName(in.Name) {
		return domain.Client{}, ErrIncompleteName
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return domain.Client{}, ErrInvalidPhone
	}

	var c domain.Client
	err := s.St.Update(func(r *domain.Record) error {
		c = domain.Client{
			ID:      domain.NewID(),
			Name:    strings.TrimSpace(in.Name),
			Doc:     strings.TrimSpace(in.Doc),
			Phone:   phone,
			Email:   strings.TrimSpace(in.Email),
			Address: in.Address,
		}
		r.Clients = append(r.Clients, c)
		return nil
	})
	return c, err
}

func (s *ClientService) Search(term string) []domain.Client {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []domain.Client
	s.St.View(func(r domain.Record) {
		for _, c := range r.Clients {
			if term == "" ||
				strings.Contains(strings.ToLower(c.Name), term) ||
				strings.Contains(c.Phone, term) ||
				strings.Contains(strings.ToLower(c.Email), term) {
				out = append(out, c)
			}
		}
	})
	return out
}

func (s *ClientService) List() []domain.Client {
	return s.Search("")
}
