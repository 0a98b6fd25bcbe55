package station_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
	"beulahpos/internal/store"
)

// quiet keeps the ticker out of the way so tests drive resyncs through
// the bus alone.
const quiet = time.Hour

func memStore(t *testing.T) *store.Store {
	t.Helper()
	kv, err := store.OpenKV(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })
	return store.New(kv, store.NewBus())
}

func product(id int64, code, name string) domain.Product {
	return domain.Product{ID: id, Code: code, Name: name, Price: decimal.NewFromInt(10), Stock: 5, Active: true}
}

func TestUpdate_PropagatesToOtherStation(t *testing.T) {
	st := memStore(t)
	a := station.Open(st, station.Config{Name: "a", Owns: domain.AllFields, Interval: quiet})
	defer a.Close()
	b := station.Open(st, station.Config{Name: "b", Owns: domain.AllFields, Interval: quiet})
	defer b.Close()

	err := a.Update(func(r *domain.Record) error {
		r.Products = append(r.Products, product(1, "001", "Café Puro"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The bus delivers synchronously, so b is already caught up.
	got := b.Record()
	if len(got.Products) != 1 || got.Products[0].Name != "Café Puro" {
		t.Fatalf("b did not converge: %+v", got.Products)
	}
}

func TestUpdate_SelfWriteFiresLocalCallbackOnce(t *testing.T) {
	st := memStore(t)
	a := station.Open(st, station.Config{Name: "a", Owns: domain.AllFields, Interval: quiet})
	defer a.Close()

	var calls int32
	a.OnChange(func(domain.Record) { atomic.AddInt32(&calls, 1) })

	err := a.Update(func(r *domain.Record) error {
		r.Clients = append(r.Clients, domain.Client{ID: 1, Name: "Maria Silva"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected exactly one callback, got %d", n)
	}
}

func TestSpawn_ChildPrefersOpenerOverStore(t *testing.T) {
	st := memStore(t)
	parent := station.Open(st, station.Config{Name: "pos", Owns: domain.AllFields, Interval: quiet})
	defer parent.Close()

	err := parent.Update(func(r *domain.Record) error {
		r.Products = append(r.Products, product(1, "001", "Café Puro"))
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	child := parent.Spawn(station.Config{Name: "admin", Owns: domain.AllFields, Interval: quiet})
	defer child.Close()
	if got := child.Record(); len(got.Products) != 1 {
		t.Fatalf("child should seed from opener: %+v", got.Products)
	}

	// The store moves ahead under the parent's name: the parent skips
	// its "own" write and keeps its mirror, and the child must side
	// with the parent, not the store.
	divergent := domain.Record{Products: []domain.Product{product(2, "002", "Água de coco")}}
	if err := st.Save(divergent, "pos"); err != nil {
		t.Fatal(err)
	}

	got := child.Record()
	if len(got.Products) != 1 || got.Products[0].ID != 1 {
		t.Fatalf("child adopted the store over its opener: %+v", got.Products)
	}
}

func TestSpawn_ClosedOpenerFallsBackToStore(t *testing.T) {
	st := memStore(t)
	parent := station.Open(st, station.Config{Name: "pos", Owns: domain.AllFields, Interval: quiet})
	child := parent.Spawn(station.Config{Name: "admin", Owns: domain.AllFields, Interval: quiet})
	defer child.Close()

	parent.Close()

	fresh := domain.Record{Products: []domain.Product{product(2, "002", "Água de coco")}}
	if err := st.Save(fresh, "pos"); err != nil {
		t.Fatal(err)
	}

	got := child.Record()
	if len(got.Products) != 1 || got.Products[0].ID != 2 {
		t.Fatalf("child should reload from the store once its opener is gone: %+v", got.Products)
	}
}

func TestWatch_GatesChangeCallbacks(t *testing.T) {
	st := memStore(t)
	menu := station.Open(st, station.Config{
		Name:     "menu",
		Owns:     domain.MenuFields,
		Interval: quiet,
		Watch:    func(r domain.Record) any { return r.Products },
	})
	defer menu.Close()

	var calls int32
	menu.OnChange(func(domain.Record) { atomic.AddInt32(&calls, 1) })

	// Clients changed, products unchanged: the menu stays quiet.
	if err := st.Save(domain.Record{Clients: []domain.Client{{ID: 1, Name: "Maria Silva"}}}, "pos"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Fatalf("callback fired for an unwatched change: %d", n)
	}

	// Products changed: now it re-renders.
	rec := domain.Record{
		Clients:  []domain.Client{{ID: 1, Name: "Maria Silva"}},
		Products: []domain.Product{product(1, "001", "Café Puro")},
	}
	if err := st.Save(rec, "pos"); err != nil {
		t.Fatal(err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("expected one callback after a product change, got %d", n)
	}
}

func TestWatch_AdoptsUnwatchedChanges(t *testing.T) {
	st := memStore(t)
	pos := station.Open(st, station.Config{Name: "pos", Owns: domain.AllFields, Interval: quiet})
	defer pos.Close()
	menu := station.Open(st, station.Config{
		Name:     "menu",
		Owns:     domain.MenuFields,
		Interval: quiet,
		Watch:    func(r domain.Record) any { return r.Products },
	})
	defer menu.Close()

	// A client registered at the register changes nothing the menu
	// watches, but the menu's mirror must still converge on it.
	err := pos.Update(func(r *domain.Record) error {
		r.Clients = append(r.Clients, domain.Client{ID: 1, Name: "Maria Silva", Phone: "73988880000"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := menu.Record(); len(got.Clients) != 1 {
		t.Fatalf("menu mirror missed the unwatched write: %+v", got.Clients)
	}

	// A menu sale scoped-saves clients and sales; the client recorded
	// by the register must survive that write.
	err = menu.Update(func(r *domain.Record) error {
		r.Sales = append(r.Sales, domain.Sale{ID: 2, Total: decimal.NewFromInt(18)})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	got := st.Load()
	if len(got.Clients) != 1 || got.Clients[0].ID != 1 {
		t.Fatalf("menu save dropped the register's client: %+v", got.Clients)
	}
	if len(got.Sales) != 1 {
		t.Fatalf("menu sale not persisted: %+v", got.Sales)
	}
}

func TestUpdate_ConcurrentWritesPersistInOrder(t *testing.T) {
	st := memStore(t)
	a := station.Open(st, station.Config{Name: "a", Owns: domain.AllFields, Interval: quiet})
	defer a.Close()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id int64) {
			defer wg.Done()
			_ = a.Update(func(r *domain.Record) error {
				r.Clients = append(r.Clients, domain.Client{ID: id})
				return nil
			})
		}(int64(i + 1))
	}
	wg.Wait()

	// The last persisted state must be the final mirror, not an older
	// clone that overtook it on the way to the store.
	if got := st.Load(); len(got.Clients) != n {
		t.Fatalf("store holds %d clients, want %d", len(got.Clients), n)
	}
	if got := a.Record(); len(got.Clients) != n {
		t.Fatalf("mirror holds %d clients, want %d", len(got.Clients), n)
	}
}

func TestUpdate_ScopedSavePreservesOtherCollections(t *testing.T) {
	st := memStore(t)
	seed := domain.Record{
		Users:    []domain.User{{ID: 1, Username: "admin"}},
		Products: []domain.Product{product(1, "001", "Café Puro")},
	}
	if err := st.Save(seed, "seed"); err != nil {
		t.Fatal(err)
	}

	menu := station.Open(st, station.Config{Name: "menu", Owns: domain.MenuFields, Interval: quiet})
	defer menu.Close()

	err := menu.Update(func(r *domain.Record) error {
		r.Clients = append(r.Clients, domain.Client{ID: 2, Name: "João Souza", Phone: "73988880000"})
		r.Products[0].Stock = 0 // local only, never persisted
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	got := st.Load()
	if len(got.Clients) != 1 {
		t.Fatalf("owned clients not persisted: %+v", got.Clients)
	}
	if len(got.Users) != 1 {
		t.Fatalf("users clobbered by scoped save: %+v", got.Users)
	}
	if got.Products[0].Stock != 5 {
		t.Fatalf("product change leaked through a scoped save: %+v", got.Products)
	}
}

func TestUpdate_AfterClose(t *testing.T) {
	st := memStore(t)
	a := station.Open(st, station.Config{Name: "a", Owns: domain.AllFields, Interval: quiet})
	a.Close()

	err := a.Update(func(r *domain.Record) error { return nil })
	if err != station.ErrClosed {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestUpdate_ChildSaveReachesParentWritePath(t *testing.T) {
	st := memStore(t)
	parent := station.Open(st, station.Config{Name: "pos", Owns: domain.AllFields, Interval: quiet})
	defer parent.Close()
	child := parent.Spawn(station.Config{Name: "admin", Owns: domain.AllFields, Interval: quiet})
	defer child.Close()

	err := child.Update(func(r *domain.Record) error {
		r.Expenses = append(r.Expenses, domain.Expense{ID: 1, Description: "Aluguel", PaymentStatus: domain.PaymentPending})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// The bus event from the child catches the parent up, and SaveNow
	// on the opener must not deadlock or error along the way.
	got := parent.Record()
	if len(got.Expenses) != 1 || got.Expenses[0].Description != "Aluguel" {
		t.Fatalf("parent did not pick up the child's write: %+v", got.Expenses)
	}
}
