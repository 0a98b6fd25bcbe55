package domain

// FieldSet names the collections of the shared record a station is
// allowed to write. Saves merge only the owned collections, so two
// stations writing disjoint fields never clobber each other.
type FieldSet uint8

const (
	FieldUsers FieldSet = 1 << iota
	FieldClients
	FieldProducts
	FieldSales
	FieldExpenses

	AllFields = FieldUsers | FieldClients | FieldProducts | FieldSales | FieldExpenses
	// MenuFields is the subset the public menu may write.
	MenuFields = FieldClients | FieldSales
)

func (f FieldSet) Has(field FieldSet) bool { return f&field != 0 }

// Record is the single logical dataset every station mirrors.
type Record struct {
	Users    []User    `json:"users"`
	Clients  []Client  `json:"clients"`
	Products []Product `json:"products"`
	Sales    []Sale    `json:"sales"`
	Expenses []Expense `json:"expenses"`
}

// Clone returns a deep copy so a snapshot handed to another station
// never aliases live state.
func (r Record) Clone() Record {
	out := Record{
		Users:    append([]User(nil), r.Users...),
		Clients:  append([]Client(nil), r.Clients...),
		Products: append([]Product(nil), r.Products...),
		Sales:    make([]Sale, len(r.Sales)),
		Expenses: append([]Expense(nil), r.Expenses...),
	}
	for i, s := range r.Sales {
		s.Items = append([]SaleItem(nil), s.Items...)
		out.Sales[i] = s
	}
	return out
}

// Merge copies the collections named by fields from src into r.
func (r *Record) Merge(src Record, fields FieldSet) {
	if fields.Has(FieldUsers) {
		r.Users = src.Users
	}
	if fields.Has(FieldClients) {
		r.Clients = src.Clients
	}
	if fields.Has(FieldProducts) {
		r.Products = src.Products
	}
	if fields.Has(FieldSales) {
		r.Sales = src.Sales
	}
	if fields.Has(FieldExpenses) {
		r.Expenses = src.Expenses
	}
}

func (r *Record) ProductByID(id int64) *Product {
	for i := range r.Products {
		if r.Products[i].ID == id {
			return &r.Products[i]
		}
	}
	return nil
}

func (r *Record) ClientByID(id int64) *Client {
	for i := range r.Clients {
		if r.Clients[i].ID == id {
			return &r.Clients[i]
		}
	}
	return nil
}

func (r *Record) ClientByPhone(phone string) *Client {
	for i := range r.Clients {
		if r.Clients[i].Phone == phone {
			return &r.Clients[i]
		}
	}
	return nil
}

func (r *Record) UserByUsername(username string) *User {
	for i := range r.Users {
		if r.Users[i].Username == username {
			return &r.Users[i]
		}
	}
	return nil
}
