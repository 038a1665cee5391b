package model

import "github.com/shopspring/decimal"

// ReportGranularity selects the bucketing of a balance report.
type ReportGranularity string

const (
	GranularityMonth ReportGranularity = "month"
	GranularityYear  ReportGranularity = "year"
)

// BalanceLine is one period of a balance report: total credits, total
// debits, and the net over every matching ledger entry.
type BalanceLine struct {
	Period  string          `json:"period"` // "2026-03" or "2026"
	Credit  decimal.Decimal `json:"credit"`
	Debit   decimal.Decimal `json:"debit"`
	Balance decimal.Decimal `json:"balance"`
}

// ReportFilter controls balance queries.
type ReportFilter struct {
	Granularity ReportGranularity
	Year        int         // 0 = all years
	Account     *AccountRef // nil = whole association ledger
}
