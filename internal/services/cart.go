package services

import (
	"sync"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
)

// Cart is the transient per-station cart. It caps quantities at the
// stock observed when the item was added; the authoritative check
// happens again at checkout time against the current mirror.
type Cart struct {
	mu    sync.Mutex
	items []domain.CartItem
}

func (c *Cart) Add(p domain.Product, qty int) error {
	if qty < 1 {
		qty = 1
	}
	if !p.Active || p.Stock == 0 {
		return ErrProductUnavail
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == p.ID {
			if c.items[i].Quantity+qty > c.items[i].MaxStock {
				return ErrInsufficientStock
			}
			c.items[i].Quantity += qty
			return nil
		}
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}
	c.items = append(c.items, domain.CartItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  qty,
		MaxStock:  p.Stock,
	})
	return nil
}

// SetQuantity adjusts an item; zero or less removes it.
func (c *Cart) SetQuantity(productID int64, qty int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID != productID {
			continue
		}
		if qty <= 0 {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
		if qty > c.items[i].MaxStock {
			return ErrInsufficientStock
		}
		c.items[i].Quantity = qty
		return nil
	}
	return ErrProductNotFound
}

func (c *Cart) Remove(productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ProductID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Cart) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartItem(nil), c.items...)
}

func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items) == 0
}
