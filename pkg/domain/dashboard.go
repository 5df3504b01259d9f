package domain

// DashboardData is the business-analytics snapshot served to the app's
// dashboard view. The numbers are a static fixture; nothing in this service
// computes them.
type DashboardData struct {
	DailySales    int            `json:"dailySales"`
	DailyExpenses int            `json:"dailyExpenses"`
	NetIncome     int            `json:"netIncome"`
	SalesTrend    []TrendPoint   `json:"salesTrend"`
	TopProducts   []ProductShare `json:"topProducts"`
	Alerts        []string       `json:"alerts"`
	Benchmarks    *Benchmarks    `json:"benchmarks,omitempty"`
}

type TrendPoint struct {
	Name     string `json:"name"`
	Sales    int    `json:"sales"`
	Expenses int    `json:"expenses"`
}

type ProductShare struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type Benchmarks struct {
	GrossMargin      BenchmarkPair `json:"grossMargin"`
	RestockFrequency BenchmarkPair `json:"restockFrequency"`
}

type BenchmarkPair struct {
	You    int `json:"you"`
	Sector int `json:"sector"`
}
