package services_test

import (
	"errors"
	"testing"

	"beulahpos/internal/domain"
	"beulahpos/internal/services"
)

func TestClientAdd(t *testing.T) {
	svc := services.NewClientService(testStation(t))

	c, err := svc.Add(services.ClientInput{
		Name:  "Maria Silva",
		Phone: "(73) 98888-0000",
		Email: "maria@example.com",
		Address: domain.Address{
			Street: "Rua das Flores", Number: "12", City: "Ilhéus",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.ID == 0 {
		t.Fatal("no id assigned")
	}
	if c.Phone != "73988880000" {
		t.Fatalf("phone should be normalized: %q", c.Phone)
	}

	// The register takes walk-ins; two entries can share a phone.
	if _, err := svc.Add(services.ClientInput{Name: "Maria Souza", Phone: "73988880000"}); err != nil {
		t.Fatal(err)
	}
	if got := svc.List(); len(got) != 2 {
		t.Fatalf("expected 2 clients, got %d", len(got))
	}
}

func TestClientAdd_Rejections(t *testing.T) {
	svc := services.NewClientService(testStation(t))

	if _, err := svc.Add(services.ClientInput{Name: "Maria", Phone: "73988880000"}); !errors.Is(err, services.ErrIncompleteName) {
		t.Fatalf("single-word name: %v", err)
	}
	if _, err := svc.Add(services.ClientInput{Name: "Maria Silva", Phone: "123"}); !errors.Is(err, services.ErrInvalidPhone) {
		t.Fatalf("short phone: %v", err)
	}
}

func TestClientSearch(t *testing.T) {
	svc := services.NewClientService(testStation(t))
	if _, err := svc.Add(services.ClientInput{Name: "Maria Silva", Phone: "73988880000"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(services.ClientInput{Name: "João Souza", Phone: "73977770000"}); err != nil {
		t.Fatal(err)
	}

	if got := svc.Search("maria"); len(got) != 1 || got[0].Name != "Maria Silva" {
		t.Fatalf("name search: %+v", got)
	}
	if got := svc.Search("7797777"); len(got) != 1 || got[0].Name != "João Souza" {
		t.Fatalf("phone search: %+v", got)
	}
	if got := svc.Search(""); len(got) != 2 {
		t.Fatalf("empty term lists all: %+v", got)
	}
}
