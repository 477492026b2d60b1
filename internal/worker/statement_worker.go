package worker

// statement_worker.go
// Re-renders customer statement PDFs off the request path. Ledger writes
// enqueue a refresh here so the copy on disk tracks the ledger; the download
// endpoint still renders a fresh statement on demand.

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/infra"
	"github.com/MKOdeh2024/Market-Debt-Management-System-MDMS/internal/repository"
)

// StatementJobPayload is the job envelope sent to QueueStatement.
type StatementJobPayload struct {
	CustomerID string `json:"customer_id"`
}

type StatementWorker struct {
	customerRepo repository.CustomerRepository
	debtRepo     repository.DebtTransactionRepository
	storagePath  string
}

func NewStatementWorker(
	customerRepo repository.CustomerRepository,
	debtRepo repository.DebtTransactionRepository,
	storagePath string,
) *StatementWorker {
	return &StatementWorker{
		customerRepo: customerRepo,
		debtRepo:     debtRepo,
		storagePath:  storagePath,
	}
}

func (w *StatementWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload StatementJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("statement_worker: invalid payload")
		return
	}

	customerID, err := uuid.Parse(payload.CustomerID)
	if err != nil {
		log.Error().Str("customer_id", payload.CustomerID).Msg("statement_worker: invalid customer_id")
		return
	}

	customer, err := w.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", payload.CustomerID).Msg("statement_worker: customer not found")
		return
	}

	transactions, err := w.debtRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		log.Error().Err(err).Str("customer_id", payload.CustomerID).Msg("statement_worker: failed to load transactions")
		return
	}

	path, err := infra.GenerateStatementPDF(customer, transactions, w.storagePath)
	if err != nil {
		log.Error().Err(err).Str("customer_id", payload.CustomerID).Msg("statement_worker: PDF generation failed")
		return
	}
	log.Info().Str("pdf", path).Str("customer_id", payload.CustomerID).Msg("statement_worker: statement generated")
}
