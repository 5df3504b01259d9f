package repository

import "github.com/darta-hq/darta-assistant/pkg/domain"

// dashboardRepository serves the static analytics fixture shown on the app's
// dashboard. Nothing here is computed from conversation data.
type dashboardRepository struct {
	data domain.DashboardData
}

func NewDashboardRepository() *dashboardRepository {
	return &dashboardRepository{data: mockDashboardData}
}

func (d *dashboardRepository) Get() domain.DashboardData {
	return d.data
}

var mockDashboardData = domain.DashboardData{
	DailySales:    450000,
	DailyExpenses: 120000,
	NetIncome:     330000,
	SalesTrend: []domain.TrendPoint{
		{Name: "Mon", Sales: 300000, Expenses: 100000},
		{Name: "Tue", Sales: 450000, Expenses: 120000},
		{Name: "Wed", Sales: 280000, Expenses: 80000},
		{Name: "Thu", Sales: 500000, Expenses: 200000},
		{Name: "Fri", Sales: 550000, Expenses: 150000},
		{Name: "Sat", Sales: 600000, Expenses: 180000},
		{Name: "Sun", Sales: 400000, Expenses: 90000},
	},
	TopProducts: []domain.ProductShare{
		{Name: "Sugar (1kg)", Value: 45},
		{Name: "Cooking Oil", Value: 30},
		{Name: "Soap Bar", Value: 25},
		{Name: "Airtime", Value: 15},
	},
	Alerts: []string{
		"Remote Alert: Staff reported 7kg Sugar remaining, expected 12kg.",
		"Benchmark: Your gross margin is 10% lower than similar shops in Kisaasi.",
		"Insight: Sales peak at 7pm. Consider extending hours on Fridays.",
	},
	Benchmarks: &domain.Benchmarks{
		GrossMargin:      domain.BenchmarkPair{You: 18, Sector: 28},
		RestockFrequency: domain.BenchmarkPair{You: 2, Sector: 4},
	},
}
