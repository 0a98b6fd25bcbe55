package services

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"beulahpos/internal/domain"
	"beulahpos/internal/station"
)

// ReportService aggregates sales and expenses for the admin panel.
type ReportService struct {
	St *station.Station
}

func NewReportService(st *station.Station) *ReportService {
	return &ReportService{St: st}
}

type SalesReport struct {
	Count     int             `json:"count"`
	Revenue   decimal.Decimal `json:"revenue"`
	AvgTicket decimal.Decimal `json:"avgTicket"`
}

func (s *ReportService) Sales() SalesReport {
	rep := SalesReport{Revenue: decimal.Zero, AvgTicket: decimal.Zero}
	s.St.View(func(r domain.Record) {
		rep.Count = len(r.Sales)
		for _, sale := range r.Sales {
			rep.Revenue = rep.Revenue.Add(sale.Total)
		}
	})
	if rep.Count > 0 {
		rep.AvgTicket = rep.Revenue.Div(decimal.NewFromInt(int64(rep.Count)))
	}
	return rep
}

type MonthExpenses struct {
	Month    string           `json:"month"` // YYYY-MM
	Total    decimal.Decimal  `json:"total"`
	Expenses []domain.Expense `json:"expenses"`
}

type FinancialReport struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	ByMonth  []MonthExpenses `json:"byMonth"` // newest first
}

func (s *ReportService) Financial() FinancialReport {
	rep := FinancialReport{Revenue: decimal.Zero, Expenses: decimal.Zero}
	byMonth := map[string]*MonthExpenses{}
	s.St.View(func(r domain.Record) {
		for _, sale := range r.Sales {
			rep.Revenue = rep.Revenue.Add(sale.Total)
		}
		for _, e := range r.Expenses {
			rep.Expenses = rep.Expenses.Add(e.Value)
			key := e.Date.Format("2006-01")
			m := byMonth[key]
			if m == nil {
				m = &MonthExpenses{Month: key, Total: decimal.Zero}
				byMonth[key] = m
			}
			m.Total = m.Total.Add(e.Value)
			m.Expenses = append(m.Expenses, e)
		}
	})
	rep.Profit = rep.Revenue.Sub(rep.Expenses)

	for _, m := range byMonth {
		rep.ByMonth = append(rep.ByMonth, *m)
	}
	sort.Slice(rep.ByMonth, func(i, j int) bool {
		return rep.ByMonth[i].Month > rep.ByMonth[j].Month
	})
	return rep
}

type GoalReport struct {
	MonthExpenses decimal.Decimal `json:"monthExpenses"`
	WorkingDays   int             `json:"workingDays"`
	DailyGoal     decimal.Decimal `json:"dailyGoal"`
}

// DailyGoal computes the break-even revenue per working day for the
// month of now: working days = floor(daysInMonth/7 × daysPerWeek).
func (s *ReportService) DailyGoal(daysPerWeek int, now time.Time) GoalReport {
	rep := GoalReport{MonthExpenses: decimal.Zero, DailyGoal: decimal.Zero}
	year, month := now.Year(), now.Month()
	s.St.View(func(r domain.Record) {
		for _, e := range r.Expenses {
			if e.Date.Year() == year && e.Date.Month() == month {
				rep.MonthExpenses = rep.MonthExpenses.Add(e.Value)
			}
		}
	})

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()
	rep.WorkingDays = daysInMonth * daysPerWeek / 7
	if rep.WorkingDays > 0 {
		rep.DailyGoal = rep.MonthExpenses.Div(decimal.NewFromInt(int64(rep.WorkingDays)))
	}
	return rep
}
