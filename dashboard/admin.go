package dashboard

import (
	"context"
	"fmt"

	"github.com/agrichain/agrichain/i18n"
	"github.com/agrichain/agrichain/repository"
	"github.com/agrichain/agrichain/repository/models"
)

// Platform totals shown until a real ledger backs them
const (
	mockTotalProducts = 1250
	mockTotalUsers    = 45
	mockFraudDetected = 2
)

const adminLedgerSize = 50

// Analytics are the counters on the admin analytics tab
type Analytics struct {
	TotalProducts     int   `json:"totalProducts"`
	TotalUsers        int   `json:"totalUsers"`
	FraudDetected     int   `json:"fraudDetected"`
	TransactionsToday int64 `json:"transactionsToday"`
	PendingUsers      int   `json:"pendingUsers"`
}

// Admin serves the admin dashboard from the shared registration database
type Admin struct {
	repo *repository.Repository
}

func NewAdmin(repo *repository.Repository) *Admin {
	return &Admin{repo: repo}
}

func (a *Admin) remove(ctx context.Context, id uint) error {
	if repoErr := a.repo.DeleteRegistration(ctx, id); repoErr != nil {
		if repoErr.Code == repository.CodeNotFound {
			return fmt.Errorf("registration %d: %w", id, ErrNotFound)
		}
		return repoErr
	}
	return nil
}

// Approve accepts a sign-up request and removes it from the pending list
func (a *Admin) Approve(ctx context.Context, id uint) error {
	return a.remove(ctx, id)
}

// Reject declines a sign-up request and removes it from the pending list
func (a *Admin) Reject(ctx context.Context, id uint) error {
	return a.remove(ctx, id)
}

// PendingUsers lists sign-up requests awaiting a decision
func (a *Admin) PendingUsers(ctx context.Context) ([]models.Registration, error) {
	regs, repoErr := a.repo.ListRegistrations(ctx)
	if repoErr != nil {
		return nil, repoErr
	}
	return regs, nil
}

func (a *Admin) view(ctx context.Context, t Translate) (View, error) {
	pending, err := a.PendingUsers(ctx)
	if err != nil {
		return View{}, err
	}
	transactions, repoErr := a.repo.ListActivities(ctx, adminLedgerSize)
	if repoErr != nil {
		return View{}, repoErr
	}
	total, repoErr := a.repo.CountActivities(ctx)
	if repoErr != nil {
		return View{}, repoErr
	}

	analytics := Analytics{
		TotalProducts:     mockTotalProducts,
		TotalUsers:        mockTotalUsers,
		FraudDetected:     mockFraudDetected,
		TransactionsToday: total,
		PendingUsers:      len(pending),
	}

	return View{
		Title: t(i18n.KeyAdminDashboard),
		Stats: []Stat{
			{Label: t(i18n.KeyTotalProducts), Value: analytics.TotalProducts, Icon: "📦"},
			{Label: t(i18n.KeyTotalUsers), Value: analytics.TotalUsers, Icon: "👥"},
			{Label: t(i18n.KeyFraudDetected), Value: analytics.FraudDetected, Icon: "⚠️"},
			{Label: t(i18n.KeyTransactionsDay), Value: analytics.TransactionsToday, Icon: "🔗"},
		},
		Data: map[string]any{
			"pendingUsers": pending,
			"transactions": transactions,
			"analytics":    analytics,
		},
	}, nil
}
