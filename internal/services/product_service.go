package services

import (
	"strings"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
	"beulahpos/internal/validate"
)

type ProductService struct {
	St *station.Station
}

func NewProductService(st *station.Station) *ProductService {
	return &ProductService{St: st}
}

type ProductInput struct {
	Code        string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Stock       int
	Image       string
}

func (s *ProductService) Add(in ProductInput) (domain.Product, error) {
	code, ok := validate.Code(in.Code)
	if !ok {
		return domain.Product{}, ErrInvalidCode
	}
	if in.Price.IsNegative() {
		return domain.Product{}, ErrInvalidPrice
	}
	if in.Stock < 0 || in.Stock > domain.MaxStock {
		return domain.Product{}, ErrStockRange
	}

	var p domain.Product
	err := s.St.Update(func(r *domain.Record) error {
		for _, existing := range r.Products {
			if strings.EqualFold(existing.Code, code) {
				return ErrDuplicateCode
			}
		}
		p = domain.Product{
			ID:          domain.NewID(),
			Code:        code,
			Name:        strings.TrimSpace(in.Name),
			Category:    in.Category,
			Description: strings.TrimSpace(in.Description),
			Price:       in.Price,
			Stock:       in.Stock,
			Active:      true,
			Image:       in.Image,
		}
		r.Products = append(r.Products, p)
		return nil
	})
	return p, err
}

func (s *ProductService) SetActive(id int64, active bool) error {
	return s.St.Update(func(r *domain.Record) error {
		p := r.ProductByID(id)
		if p == nil {
			return ErrProductNotFound
		}
		p.Active = active
		return nil
	})
}

func (s *ProductService) SetStock(id int64, stock int) error {
	if stock < 0 || stock > domain.MaxStock {
		return ErrStockRange
	}
	return s.St.Update(func(r *domain.Record) error {
		p := r.ProductByID(id)
		if p == nil {
			return ErrProductNotFound
		}
		p.Stock = stock
		return nil
	})
}

func (s *ProductService) Delete(id int64) error {
	return s.St.Update(func(r *domain.Record) error {
		for i, p := range r.Products {
			if p.ID == id {
				r.Products = append(r.Products[:i], r.Products[i+1:]...)
				return nil
			}
		}
		return ErrProductNotFound
	})
}

// Search matches name, code or description, case-insensitively. An
// empty term lists everything.
func (s *ProductService) Search(term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []domain.Product
	s.St.View(func(r domain.Record) {
		for _, p := range r.Products {
			if term == "" ||
				strings.Contains(strings.ToLower(p.Name), term) ||
				strings.Contains(strings.ToLower(p.Code), term) ||
				strings.Contains(strings.ToLower(p.Description), term) {
				out = append(out, p)
			}
		}
	})
	return out
}

func (s *ProductService) Get(id int64) (domain.Product, error) {
	var p domain.Product
	err := ErrProductNotFound
	s.St.View(func(r domain.Record) {
		if found := r.ProductByID(id); found != nil {
			p = *found
			err = nil
		}
	})
	return p, err
}
