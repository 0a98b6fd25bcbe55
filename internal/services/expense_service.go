package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
)

// seriesTolerance bounds the value difference for two expenses to count
// as members of the same recurring series.
var seriesTolerance = decimal.NewFromFloat(0.01)

type ExpenseService struct {
	St *station.Station
}

func NewExpenseService(st *station.Station) *ExpenseService {
	return &ExpenseService{St: st}
}

type ExpenseInput struct {
	Description   string
	Value         decimal.Decimal
	Date          time.Time
	PaymentStatus string
	IsRecurring   bool
	Months        int
}

// Add records one expense, or a whole series when recurring: one entry
// per month starting at the given date, numbered month/totalMonths.
func (s *ExpenseService) Add(in ExpenseInput) ([]domain.Expense, error) {
	status := in.PaymentStatus
	if status != domain.PaymentPaid {
		status = domain.PaymentPending
	}
	desc := strings.TrimSpace(in.Description)

	var created []domain.Expense
	err := s.St.Update(func(r *domain.Record) error {
		if in.IsRecurring && in.Months > 0 {
			for i := 0; i < in.Months; i++ {
				e := domain.Expense{
					ID:            domain.NewID(),
					Description:   desc,
					Value:         in.Value,
					Date:          in.Date.AddDate(0, i, 0),
					PaymentStatus: status,
					IsRecurring:   true,
					Month:         i + 1,
					TotalMonths:   in.Months,
				}
				r.Expenses = append(r.Expenses, e)
				created = append(created, e)
			}
			return nil
		}
		e := domain.Expense{
			ID:            domain.NewID(),
			Description:   desc,
			Value:         in.Value,
			Date:          in.Date,
			PaymentStatus: status,
		}
		r.Expenses = append(r.Expenses, e)
		created = append(created, e)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *ExpenseService) TogglePaymentStatus(id int64) (string, error) {
	var status string
	err := s.St.Update(func(r *domain.Record) error {
		for i := range r.Expenses {
			if r.Expenses[i].ID == id {
				if r.Expenses[i].PaymentStatus == domain.PaymentPaid {
					r.Expenses[i].PaymentStatus = domain.PaymentPending
				} else {
					r.Expenses[i].PaymentStatus = domain.PaymentPaid
				}
				status = r.Expenses[i].PaymentStatus
				return nil
			}
		}
		return ErrExpenseNotFound
	})
	return status, err
}

func (s *ExpenseService) Delete(id int64) error {
	return s.St.Update(func(r *domain.Record) error {
		for i, e := range r.Expenses {
			if e.ID == id {
				r.Expenses = append(r.Expenses[:i], r.Expenses[i+1:]...)
				return nil
			}
		}
		return ErrExpenseNotFound
	})
}

// FindSeries returns every expense in the same recurring series as the
// given member. The series has no stored identifier; membership is
// matching description, value (within tolerance) and series length.
func (s *ExpenseService) FindSeries(id int64) ([]domain.Expense, error) {
	var member *domain.Expense
	var out []domain.Expense
	s.St.View(func(r domain.Record) {
		for i := range r.Expenses {
			if r.Expenses[i].ID == id {
				e := r.Expenses[i]
				member = &e
				break
			}
		}
		if member == nil || !member.IsRecurring {
			return
		}
		for _, e := range r.Expenses {
			if e.IsRecurring &&
				e.Description == member.Description &&
				e.TotalMonths == member.TotalMonths &&
				e.Value.Sub(member.Value).Abs().LessThanOrEqual(seriesTolerance) {
				out = append(out, e)
			}
		}
	})
	if member == nil {
		return nil, ErrExpenseNotFound
	}
	if !member.IsRecurring {
		return []domain.Expense{*member}, nil
	}
	return out, nil
}

// DeleteSeries removes every member of the series id belongs to.
func (s *ExpenseService) DeleteSeries(id int64) (int, error) {
	members, err := s.FindSeries(id)
	if err != nil {
		return 0, err
	}
	ids := make(map[int64]bool, len(members))
	for _, e := range members {
		ids[e.ID] = true
	}
	removed := 0
	err = s.St.Update(func(r *domain.Record) error {
		kept := r.Expenses[:0]
		for _, e := range r.Expenses {
			if ids[e.ID] {
				removed++
				continue
			}
			kept = append(kept, e)
		}
		r.Expenses = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

type MonthSummary struct {
	Total   decimal.Decimal `json:"total"`
	Paid    decimal.Decimal `json:"paid"`
	Pending decimal.Decimal `json:"pending"`
}

// Summary totals the expenses dated in the given month.
func (s *ExpenseService) Summary(year int, month time.Month) MonthSummary {
	sum := MonthSummary{Total: decimal.Zero, Paid: decimal.Zero, Pending: decimal.Zero}
	s.St.View(func(r domain.Record) {
		for _, e := range r.Expenses {
			if e.Date.Year() != year || e.Date.Month() != month {
				continue
			}
			sum.Total = sum.Total.Add(e.Value)
			if e.PaymentStatus == domain.PaymentPaid {
				sum.Paid = sum.Paid.Add(e.Value)
			}
		}
	})
	sum.Pending = sum.Total.Sub(sum.Paid)
	return sum
}

func (s *ExpenseService) List() []domain.Expense {
	var out []domain.Expense
	s.St.View(func(r domain.Record) {
		out = append(out, r.Expenses...)
	})
	return out
}
