// Package summary aggregates period totals and renders them to prose through
// the generative client. The client only ever sees the numeric aggregates,
// never raw ledger entries.
package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/interfaces"
	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Compile-time interface check
var _ interfaces.SummaryService = (*Service)(nil)

// Service implements SummaryService
type Service struct {
	storage interfaces.StorageManager
	client  interfaces.SummaryClient
	logger  *common.Logger
}

// NewService creates a new summary service. The client may be nil, in which
// case only numeric summaries are available.
func NewService(storage interfaces.StorageManager, client interfaces.SummaryClient, logger *common.Logger) *Service {
	return &Service{
		storage: storage,
		client:  client,
		logger:  logger,
	}
}

// PeriodSummary aggregates incomes and expenses between from (inclusive) and
// to (exclusive), optionally scoped to one property.
func (s *Service) PeriodSummary(ctx context.Context, from, to time.Time, propertyID string) (*models.PeriodSummary, error) {
	if from.IsZero() || to.IsZero() {
		return nil, fmt.Errorf("%w: both period bounds are required", models.ErrValidation)
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("%w: period start must precede period end", models.ErrValidation)
	}
	if propertyID != "" {
		if _, err := s.storage.Properties().Get(ctx, propertyID); err != nil {
			return nil, err
		}
	}

	filter := interfaces.TransactionFilter{PropertyID: propertyID, From: from, To: to}
	incomes, err := s.storage.Transactions().ListIncomes(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.storage.Transactions().ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	subNames, err := s.subcategoryNames(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.PeriodSummary{
		From:       from,
		To:         to,
		PropertyID: propertyID,
	}

	incomeCats := make(map[string]*models.CategoryTotal)
	flows := make(map[string]*models.WalletFlow)
	for _, in := range incomes {
		summary.TotalIncome = summary.TotalIncome.Add(in.Amount)
		summary.IncomeCount++
		accumulateCategory(incomeCats, in.SubcategoryID, subNames, in.Amount)
		s.accumulateFlow(ctx, flows, in.WalletID, in.Amount, decimal.Zero)
	}

	expenseCats := make(map[string]*models.CategoryTotal)
	for _, ex := range expenses {
		summary.TotalExpense = summary.TotalExpense.Add(ex.Amount)
		summary.ExpenseCount++
		accumulateCategory(expenseCats, ex.SubcategoryID, subNames, ex.Amount)
		s.accumulateFlow(ctx, flows, ex.WalletID, decimal.Zero, ex.Amount)
	}

	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.ByIncomeCat = sortedTotals(incomeCats)
	summary.ByExpenseCat = sortedTotals(expenseCats)
	summary.WalletFlows = sortedFlows(flows)
	return summary, nil
}

// GenerateSummary computes the period aggregates and asks the client to turn
// them into prose.
func (s *Service) GenerateSummary(ctx context.Context, from, to time.Time, propertyID string) (*models.PeriodSummary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: no summary client configured", models.ErrValidation)
	}

	summary, err := s.PeriodSummary(ctx, from, to, propertyID)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(summary)
	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Msg("Summary generation failed")
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}
	summary.GeneratedText = strings.TrimSpace(text)

	s.logger.Info().Time("from", from).Time("to", to).
		Int("chars", len(summary.GeneratedText)).
		Msg("Summary generated")
	return summary, nil
}

func (s *Service) subcategoryNames(ctx context.Context) (map[string]string, error) {
	names := make(map[string]string)
	for _, kind := range []models.CategoryKind{models.CategoryIncome, models.CategoryExpense} {
		categories, err := s.storage.Categories().List(ctx, kind)
		if err != nil {
			return nil, err
		}
		for _, cat := range categories {
			for _, sub := range cat.Subcategories {
				names[sub.ID] = cat.Name + " / " + sub.Name
			}
		}
	}
	return names, nil
}

func accumulateCategory(totals map[string]*models.CategoryTotal, subID string, names map[string]string, amount decimal.Decimal) {
	key := subID
	name := names[subID]
	if subID == "" {
		key = "uncategorized"
		name = "Sin categoría"
	} else if name == "" {
		name = subID
	}
	total, ok := totals[key]
	if !ok {
		total = &models.CategoryTotal{SubcategoryID: subID, Name: name}
		totals[key] = total
	}
	total.Total = total.Total.Add(amount)
	total.Count++
}

func (s *Service) accumulateFlow(ctx context.Context, flows map[string]*models.WalletFlow, walletID string, in, out decimal.Decimal) {
	flow, ok := flows[walletID]
	if !ok {
		flow = &models.WalletFlow{WalletID: walletID, Name: walletID}
		if w, err := s.storage.Wallets().Get(ctx, walletID); err == nil {
			flow.Name = w.Name
			flow.Currency = w.Currency
		}
		flows[walletID] = flow
	}
	flow.In = flow.In.Add(in)
	flow.Out = flow.Out.Add(out)
	flow.Net = flow.In.Sub(flow.Out)
}

func sortedTotals(totals map[string]*models.CategoryTotal) []models.CategoryTotal {
	out := make([]models.CategoryTotal, 0, len(totals))
	for _, t := range totals {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.GreaterThan(out[j].Total) })
	return out
}

func sortedFlows(flows map[string]*models.WalletFlow) []models.WalletFlow {
	out := make([]models.WalletFlow, 0, len(flows))
	for _, f := range flows {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// buildPrompt renders the aggregates as the full context the model receives.
func buildPrompt(s *models.PeriodSummary) string {
	p := message.NewPrinter(language.Spanish)
	var b strings.Builder

	b.WriteString("Sos un asistente financiero. Escribí un resumen breve y claro, en español, ")
	b.WriteString("del siguiente período. Mencioná el resultado neto, los rubros más relevantes ")
	b.WriteString("y cualquier señal de alerta. No inventes datos que no estén en los totales.\n\n")
	p.Fprintf(&b, "Período: %s a %s\n", s.From.Format("2006-01-02"), s.To.Format("2006-01-02"))
	p.Fprintf(&b, "Ingresos totales: %s (%d movimientos)\n", s.TotalIncome.StringFixed(2), s.IncomeCount)
	p.Fprintf(&b, "Gastos totales: %s (%d movimientos)\n", s.TotalExpense.StringFixed(2), s.ExpenseCount)
	p.Fprintf(&b, "Resultado neto: %s\n", s.Net.StringFixed(2))

	if len(s.ByIncomeCat) > 0 {
		b.WriteString("\nIngresos por rubro:\n")
		for _, c := range s.ByIncomeCat {
			p.Fprintf(&b, "- %s: %s (%d)\n", c.Name, c.Total.StringFixed(2), c.Count)
		}
	}
	if len(s.ByExpenseCat) > 0 {
		b.WriteString("\nGastos por rubro:\n")
		for _, c := range s.ByExpenseCat {
			p.Fprintf(&b, "- %s: %s (%d)\n", c.Name, c.Total.StringFixed(2), c.Count)
		}
	}
	if len(s.WalletFlows) > 0 {
		b.WriteString("\nMovimiento por billetera:\n")
		for _, f := range s.WalletFlows {
			p.Fprintf(&b, "- %s (%s): entradas %s, salidas %s, neto %s\n",
				f.Name, f.Currency, f.In.StringFixed(2), f.Out.StringFixed(2), f.Net.StringFixed(2))
		}
	}
	return b.String()
}
