package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
	"beulahpos/internal/validate"
)

// MenuOperator is the attribution written onto sales collected through
// the public menu.
const MenuOperator = "Cardápio Digital"

// MenuService drives the public digital menu: browse what is sellable,
// collect an order, hand it off over WhatsApp. Its station owns only
// the clients and sales collections; products remain read-only here.
type MenuService struct {
	St             *station.Station
	Cart           *Cart
	WhatsAppNumber string
}

func NewMenuService(st *station.Station, whatsAppNumber string) *MenuService {
	return &MenuService{St: st, Cart: &Cart{}, WhatsAppNumber: whatsAppNumber}
}

// Products lists what the menu can sell: active products with stock,
// optionally narrowed by category and search term.
func (s *MenuService) Products(category, term string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	var out []domain.Product
	s.St.View(func(r domain.Record) {
		for _, p := range r.Products {
			if !p.Active || p.Stock <= 0 {
				continue
			}
			if category != "" && category != "todos" && p.Category != category {
				continue
			}
			if term != "" &&
				!strings.Contains(strings.ToLower(p.Name), term) &&
				!strings.Contains(strings.ToLower(p.Code), term) &&
				!strings.Contains(strings.ToLower(p.Description), term) {
				continue
			}
			out = append(out, p)
		}
	})
	return out
}

func (s *MenuService) AddToCart(productID int64, qty int) error {
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

type CheckoutInput struct {
	Name    string
	Phone   string
	Address domain.Address
}

type Order struct {
	Sale        domain.Sale   `json:"sale"`
	Client      domain.Client `json:"client"`
	WhatsAppURL string        `json:"whatsappUrl"`
}

// Checkout registers the order: the client is upserted by normalized
// phone (one client per phone through this flow), the sale is recorded
// with a pending payment, stock is decremented, and only the menu-owned
// collections are persisted.
func (s *MenuService) Checkout(in CheckoutInput) (Order, error) {
	if !validate.FullName(in.Name) {
		return Order{}, ErrIncompleteName
	}
	phone, ok := validate.Phone(in.Phone)
	if !ok {
		return Order{}, ErrInvalidPhone
	}
	items := s.Cart.Items()
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}

	var order Order
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

		client := r.ClientByPhone(phone)
		if client == nil {
			r.Clients = append(r.Clients, domain.Client{
				ID:      domain.NewID(),
				Name:    strings.TrimSpace(in.Name),
				Phone:   phone,
				Address: in.Address,
			})
			client = &r.Clients[len(r.Clients)-1]
		} else {
			client.Name = strings.TrimSpace(in.Name)
			client.Address = in.Address
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
		sale := domain.Sale{
			ID:            domain.NewID(),
			Date:          time.Now().UTC(),
			ClientID:      client.ID,
			Items:         snapshot,
			PaymentMethod: "pendente",
			Total:         total,
			User:          MenuOperator,
		}
		r.Sales = append(r.Sales, sale)

		for _, it := range items {
			r.ProductByID(it.ProductID).Stock -= it.Quantity
		}

		order = Order{Sale: sale, Client: *client}
		return nil
	})
	if err != nil {
		return Order{}, err
	}

	s.Cart.Clear()
	msg := WhatsAppMessage(order.Client, order.Sale)
	order.WhatsAppURL = "https://wa.me/" + s.WhatsAppNumber + "?text=" + url.QueryEscape(msg)
	return order, nil
}

// WhatsAppMessage renders the order as the text sent to the shop.
func WhatsAppMessage(client domain.Client, sale domain.Sale) string {
	var b strings.Builder
	b.WriteString("🛒 *NOVO PEDIDO - CARDÁPIO DIGITAL*\n\n")
	fmt.Fprintf(&b, "👤 *Cliente:* %s\n", client.Name)
	fmt.Fprintf(&b, "📱 *Telefone:* %s\n\n", client.Phone)
	b.WriteString("📍 *Endereço de Entrega:*\n")
	fmt.Fprintf(&b, "%s, %s\n", client.Address.Street, client.Address.Number)
	fmt.Fprintf(&b, "%s - %s\n", client.Address.District, client.Address.City)
	if client.Address.Reference != "" {
		fmt.Fprintf(&b, "Referência: %s\n", client.Address.Reference)
	}
	b.WriteString("\n📦 *Itens do Pedido:*\n")
	for _, it := range sale.Items {
		sub := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		fmt.Fprintf(&b, "\n%dx %s\n", it.Quantity, it.Name)
		fmt.Fprintf(&b, "R$ %s × %d = R$ %s\n", money(it.Price), it.Quantity, money(sub))
	}
	fmt.Fprintf(&b, "\n💰 *TOTAL: R$ %s*\n\n", money(sale.Total))
	fmt.Fprintf(&b, "⏰ Pedido realizado em: %s", sale.Date.Local().Format("02/01/2006 15:04"))
	return b.String()
}

// money formats a decimal the Brazilian way: two places, comma.
func money(d decimal.Decimal) string {
	return strings.Replace(d.StringFixed(2), ".", ",", 1)
}
