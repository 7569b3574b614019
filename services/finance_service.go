package services

import (
	"github.com/atelier-studio/atelier-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClientTotals are the derived financial aggregates for one client
type ClientTotals struct {
	TotalSpent         decimal.Decimal `json:"total_spent"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// FinanceService computes client financial aggregates on demand. Nothing here
// is cached or stored; the sums are folded over the client's billing entries
// with decimal arithmetic so two-decimal currency precision is exact.
type FinanceService struct {
	db *gorm.DB
}

// NewFinanceService creates a finance service backed by db
func NewFinanceService(db *gorm.DB) *FinanceService {
	return &FinanceService{db: db}
}

// Totals returns totalSpent (sum of paid entries) and outstandingBalance
// (sum of unpaid entries) for a client. A client with no orders gets zeros.
// The two always partition the client's full ledger:
// totalSpent + outstandingBalance == sum of all entry amounts.
func (s *FinanceService) Totals(clientID string) (ClientTotals, error) {
	totals := ClientTotals{
		TotalSpent:         decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	var entries []models.BillingEntry
	if err := s.db.Where("client_id = ?", clientID).Find(&entries).Error; err != nil {
		return totals, err
	}

	for _, entry := range entries {
		if entry.Paid {
			totals.TotalSpent = totals.TotalSpent.Add(entry.Amount)
		} else {
			totals.OutstandingBalance = totals.OutstandingBalance.Add(entry.Amount)
		}
	}

	return totals, nil
}
