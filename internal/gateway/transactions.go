package gateway

import (
	"context"
	"strings"

	"github.com/ebanking/bff-gateway/internal/domain"
	"github.com/ebanking/bff-gateway/internal/logger"
	"github.com/google/uuid"
	graphql "github.com/graph-gophers/graphql-go"
)

const (
	transferCurrency = "USD"
	transferCategory = "Transfer"
	transferIcon     = "bi-send"
	transferIDLength = 9
)

func recentTransactions() []*domain.Transaction {
	return []*domain.Transaction{
		{ID: "1", Amount: 45.0, Currency: "USD", Description: "Grocery Store", Date: "2026-01-01", Type: string(domain.TransactionExpense), Category: "Shopping", Icon: "bi-cart"},
		{ID: "2", Amount: 120.0, Currency: "USD", Description: "Monthly Utilities", Date: "2026-01-01", Type: string(domain.TransactionExpense), Category: "Utilities", Icon: "bi-lightning"},
		{ID: "3", Amount: 450.0, Currency: "USD", Description: "Travel Tickets", Date: "2025-12-30", Type: string(domain.TransactionExpense), Category: "Travel", Icon: "bi-airplane"},
		{ID: "4", Amount: 2500.0, Currency: "USD", Description: "Salary Deposit", Date: "2025-12-28", Type: string(domain.TransactionIncome), Category: "Income", Icon: "bi-cash-stack"},
	}
}

// newTransferID returns 9 lowercase hex characters taken from a random UUID.
func newTransferID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:transferIDLength]
}

type sendMoneyArgs struct {
	Recipient   string
	Amount      float64
	Description *string
}

// simulateTransfer builds the record a transfer would produce. Nothing is
// persisted and no funds move.
func (r *Resolver) simulateTransfer(ctx context.Context, args sendMoneyArgs) *domain.Transaction {
	note := ""
	if args.Description != nil {
		note = *args.Description
	}

	tx := &domain.Transaction{
		ID:          graphql.ID(r.newID()),
		Amount:      args.Amount,
		Currency:    transferCurrency,
		Description: "Transfer to " + args.Recipient + ": " + note,
		Date:        r.now().UTC().Format("2006-01-02"),
		Type:        string(domain.TransactionExpense),
		Category:    transferCategory,
		Icon:        transferIcon,
	}

	logger.Ctx(ctx).Info().
		Str("transaction_id", string(tx.ID)).
		Str("recipient", args.Recipient).
		Float64("amount", args.Amount).
		Msg("transfer_simulated")

	return tx
}
