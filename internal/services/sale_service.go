package services

import (
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
)

// DeleteAllPhrase must be typed verbatim to wipe the sales history.
const DeleteAllPhrase = "EXCLUIR TUDO"

// SaleService handles the POS checkout: a transient cart finalized into
// a denormalized sale snapshot plus stock decrements, in one update.
type SaleService struct {
	St   *station.Station
	Cart *Cart
}

func NewSaleService(st *station.Station) *SaleService {
	return &SaleService{St: st, Cart: &Cart{}}
}

func (s *SaleService) AddToCart(productID int64, qty int) error {
	var p domain.Product
	err := ErrProductNotFound
	s.St.View(func(r domain.Record) {
		if found := r.ProductByID(productID); found != nil {
			p = *found
			err = nil
		}
	})
	if err != nil {
		return err
	}
	return s.Cart.Add(p, qty)
}

// Finalize records the sale. Quantities are re-validated against the
// current mirror before anything is mutated, so a stale cart cannot
// drive stock negative.
func (s *SaleService) Finalize(clientID int64, paymentMethod, operator string) (domain.Sale, error) {
	items := s.Cart.Items()
	if len(items) == 0 {
		return domain.Sale{}, ErrEmptyCart
	}

	var sale domain.Sale
	err := s.St.Update(func(r *domain.Record) error {
		for _, it := range items {
			p := r.ProductByID(it.ProductID)
			if p == nil || !p.Active {
				return ErrProductUnavail
			}
			if it.Quantity > p.Stock {
				return ErrInsufficientStock
			}
		}

		total := decimal.Zero
		snapshot := make([]domain.SaleItem, 0, len(items))
		for _, it := range items {
			total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
			snapshot = append(snapshot, domain.SaleItem{
				ProductID: it.ProductID,
				Name:      it.Name,
				Price:     it.Price,
				Quantity:  it.Quantity,
			})
		}
		sale = domain.Sale{
			ID:            domain.NewID(),
			Date:          time.Now().UTC(),
			ClientID:      clientID,
			Items:         snapshot,
			PaymentMethod: paymentMethod,
			Total:         total,
			User:          operator,
		}
		r.Sales = append(r.Sales, sale)

		for _, it := range items {
			r.ProductByID(it.ProductID).Stock -= it.Quantity
		}
		return nil
	})
	if err != nil {
		return domain.Sale{}, err
	}
	s.Cart.Clear()
	return sale, nil
}

// DeleteByDate removes every sale recorded on the given calendar day.
func (s *SaleService) DeleteByDate(day time.Time) (int, error) {
	y, m, d := day.Date()
	removed := 0
	err := s.St.Update(func(r *domain.Record) error {
		kept := r.Sales[:0]
		for _, sale := range r.Sales {
			sy, sm, sd := sale.Date.Local().Date()
			if sy == y && sm == m && sd == d {
				removed++
				continue
			}
			kept = append(kept, sale)
		}
		if removed == 0 {
			return ErrNothingToDelete
		}
		r.Sales = kept
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// DeleteAll wipes the sales history. The caller must supply the exact
// confirmation phrase; this is a user-facing guard, not a system error.
func (s *SaleService) DeleteAll(confirmation string) (int, error) {
	if confirmation != DeleteAllPhrase {
		return 0, ErrBadConfirmation
	}
	removed := 0
	err := s.St.Update(func(r *domain.Record) error {
		if len(r.Sales) == 0 {
			return ErrNothingToDelete
		}
		removed = len(r.Sales)
		r.Sales = nil
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

func (s *SaleService) List() []domain.Sale {
	var out []domain.Sale
	s.St.View(func(r domain.Record) {
		out = append(out, r.Sales...)
	})
	return out
}
