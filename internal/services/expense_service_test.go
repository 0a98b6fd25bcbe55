package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/services"
)

func TestExpenseAdd_Single(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))

	created, err := svc.Add(services.ExpenseInput{
		Description: "  Energia ",
		Value:       decimal.NewFromFloat(250.00),
		Date:        time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 1 {
		t.Fatalf("expected one expense, got %d", len(created))
	}
	e := created[0]
	if e.Description != "Energia" {
		t.Fatalf("description not trimmed: %q", e.Description)
	}
	if e.PaymentStatus != domain.PaymentPending {
		t.Fatalf("status should default to pending: %q", e.PaymentStatus)
	}
	if e.IsRecurring || e.TotalMonths != 0 {
		t.Fatalf("single expense marked recurring: %+v", e)
	}
}

func TestExpenseAdd_RecurringSeries(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))

	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	created, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel",
		Value:       decimal.NewFromFloat(1200.00),
		Date:        start,
		IsRecurring: true,
		Months:      3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(created) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(created))
	}
	for i, e := range created {
		if !e.Date.Equal(start.AddDate(0, i, 0)) {
			t.Fatalf("entry %d date: %v", i, e.Date)
		}
		if e.Month != i+1 || e.TotalMonths != 3 || !e.IsRecurring {
			t.Fatalf("entry %d numbering: %+v", i, e)
		}
	}
}

func TestExpenseFindSeries(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	series, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel", Value: decimal.NewFromInt(1200),
		Date: start, IsRecurring: true, Months: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	// Same description, different length: a different series.
	if _, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel", Value: decimal.NewFromInt(1200),
		Date: start, IsRecurring: true, Months: 6,
	}); err != nil {
		t.Fatal(err)
	}
	// Same description, value outside tolerance.
	if _, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel", Value: decimal.NewFromFloat(1300.00),
		Date: start, IsRecurring: true, Months: 3,
	}); err != nil {
		t.Fatal(err)
	}

	got, err := svc.FindSeries(series[1].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Fatalf("series size: got %d, want 3", len(got))
	}
	for _, e := range got {
		if e.TotalMonths != 3 || !e.Value.Equal(decimal.NewFromInt(1200)) {
			t.Fatalf("stranger in the series: %+v", e)
		}
	}
}

func TestExpenseFindSeries_NonRecurring(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))
	created, err := svc.Add(services.ExpenseInput{
		Description: "Energia", Value: decimal.NewFromInt(250),
		Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
	got, err := svc.FindSeries(created[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != created[0].ID {
		t.Fatalf("non-recurring expense should be its own series: %+v", got)
	}
}

func TestExpenseDeleteSeries(t *testing.T) {
	st := testStation(t)
	svc := services.NewExpenseService(st)
	start := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)

	series, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel", Value: decimal.NewFromInt(1200),
		Date: start, IsRecurring: true, Months: 3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(services.ExpenseInput{
		Description: "Energia", Value: decimal.NewFromInt(250), Date: start,
	}); err != nil {
		t.Fatal(err)
	}

	n, err := svc.DeleteSeries(series[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("removed %d, want 3", n)
	}
	rest := svc.List()
	if len(rest) != 1 || rest[0].Description != "Energia" {
		t.Fatalf("unrelated expense lost: %+v", rest)
	}
}

func TestExpenseTogglePaymentStatus(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))
	created, err := svc.Add(services.ExpenseInput{
		Description: "Energia", Value: decimal.NewFromInt(250), Date: time.Now().UTC(),
	})
	if err != nil {
		t.Fatal(err)
	}
	id := created[0].ID

	status, err := svc.TogglePaymentStatus(id)
	if err != nil || status != domain.PaymentPaid {
		t.Fatalf("first toggle: %q %v", status, err)
	}
	status, err = svc.TogglePaymentStatus(id)
	if err != nil || status != domain.PaymentPending {
		t.Fatalf("second toggle: %q %v", status, err)
	}
	if _, err := svc.TogglePaymentStatus(9999); !errors.Is(err, services.ErrExpenseNotFound) {
		t.Fatalf("missing expense: %v", err)
	}
}

func TestExpenseSummary(t *testing.T) {
	svc := services.NewExpenseService(testStation(t))
	march := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

	paid, err := svc.Add(services.ExpenseInput{
		Description: "Energia", Value: decimal.NewFromInt(250), Date: march,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.TogglePaymentStatus(paid[0].ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(services.ExpenseInput{
		Description: "Água", Value: decimal.NewFromInt(100), Date: march,
	}); err != nil {
		t.Fatal(err)
	}
	// Different month, excluded.
	if _, err := svc.Add(services.ExpenseInput{
		Description: "Aluguel", Value: decimal.NewFromInt(1200), Date: march.AddDate(0, 1, 0),
	}); err != nil {
		t.Fatal(err)
	}

	sum := svc.Summary(2026, time.March)
	if !sum.Total.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("total: %v", sum.Total)
	}
	if !sum.Paid.Equal(decimal.NewFromInt(250)) || !sum.Pending.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("paid/pending: %v/%v", sum.Paid, sum.Pending)
	}
}
