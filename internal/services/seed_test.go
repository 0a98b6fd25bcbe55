package services_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/services"
)

func TestInitialize_SeedsAdminAndCatalog(t *testing.T) {
	st := seededStation(t)

	rec := st.Record()
	if len(rec.Users) != 1 {
		t.Fatalf("expected 1 seeded user, got %d", len(rec.Users))
	}
	admin := rec.Users[0]
	if admin.ID != 1 || admin.Username != "admin" || admin.Password != "admin123" || !admin.IsAdmin {
		t.Fatalf("bad seeded admin: %+v", admin)
	}
	if admin.SecretQuestion != "pet" || admin.SecretAnswer != "rex" {
		t.Fatalf("bad recovery seed: %+v", admin)
	}

	if len(rec.Products) != 4 {
		t.Fatalf("expected 4 seeded products, got %d", len(rec.Products))
	}
	want := []struct {
		code  string
		name  string
		price decimal.Decimal
		stock int
	}{
		{"001", "Café Puro", decimal.NewFromFloat(9.00), 5},
		{"002", "Água de coco", decimal.NewFromFloat(8.00), 20},
		{"003", "Frango Assado inteiro", decimal.NewFromFloat(55.00), 70},
		{"004", "Coxa de Frango Assado", decimal.NewFromFloat(55.00), 30},
	}
	for i, w := range want {
		p := rec.Products[i]
		if p.Code != w.code || p.Name != w.name || !p.Price.Equal(w.price) || p.Stock != w.stock || !p.Active {
			t.Fatalf("product %d mismatch: %+v", i, p)
		}
	}
}

func TestInitialize_Idempotent(t *testing.T) {
	st := seededStation(t)
	if err := services.Initialize(st); err != nil {
		t.Fatal(err)
	}
	rec := st.Record()
	if len(rec.Users) != 1 || len(rec.Products) != 4 {
		t.Fatalf("re-seed duplicated data: %d users, %d products", len(rec.Users), len(rec.Products))
	}
}

func TestInitialize_KeepsExistingData(t *testing.T) {
	st := testStation(t)
	err := st.Update(func(r *domain.Record) error {
		r.Users = append(r.Users, domain.User{ID: 99, Username: "maria"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := services.Initialize(st); err != nil {
		t.Fatal(err)
	}
	rec := st.Record()
	if len(rec.Users) != 1 || rec.Users[0].Username != "maria" {
		t.Fatalf("existing users should survive seeding: %+v", rec.Users)
	}
	if len(rec.Products) != 4 {
		t.Fatalf("empty catalog should still be seeded: %d", len(rec.Products))
	}
}
