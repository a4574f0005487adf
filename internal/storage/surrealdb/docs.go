package surrealdb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// Monetary fields are persisted as strings. SurrealQL casts them with
// type::decimal for guarded arithmetic, and the Go side round-trips them
// through shopspring/decimal without loss. Documents therefore have their own
// persistence structs here, mapped to and from the domain models.

type walletDoc struct {
	WalletID       string    `json:"wallet_id"`
	Name           string    `json:"name"`
	Currency       string    `json:"currency"`
	Balance        string    `json:"balance"`
	InitialBalance string    `json:"initial_balance"`
	Icon           string    `json:"icon,omitempty"`
	AllowNegative  bool      `json:"allow_negative"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type incomeDoc struct {
	IncomeID      string    `json:"income_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	WalletID      string    `json:"wallet_id"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes,omitempty"`
	PropertyID    string    `json:"property_id,omitempty"`
	AssetID       string    `json:"asset_id,omitempty"`
	LiabilityID   string    `json:"liability_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type expenseDoc struct {
	ExpenseID     string    `json:"expense_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	WalletID      string    `json:"wallet_id"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes,omitempty"`
	PropertyID    string    `json:"property_id,omitempty"`
	AssetID       string    `json:"asset_id,omitempty"`
	LiabilityID   string    `json:"liability_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type expectedDoc struct {
	ExpectedID    string    `json:"expected_id"`
	SubcategoryID string    `json:"subcategory_id,omitempty"`
	PropertyID    string    `json:"property_id,omitempty"`
	Amount        string    `json:"amount"`
	Currency      string    `json:"currency"`
	Month         int       `json:"month"`
	Year          int       `json:"year"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type transferDoc struct {
	TransferID     string    `json:"transfer_id"`
	FromWalletID   string    `json:"from_wallet_id"`
	ToWalletID     string    `json:"to_wallet_id"`
	AmountSent     string    `json:"amount_sent"`
	AmountReceived string    `json:"amount_received"`
	FromCurrency   string    `json:"from_currency"`
	ToCurrency     string    `json:"to_currency"`
	ExchangeRate   string    `json:"exchange_rate,omitempty"`
	Date           time.Time `json:"date"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type assetDoc struct {
	AssetID            string    `json:"asset_id"`
	Name               string    `json:"name"`
	TotalAmount        string    `json:"total_amount"`
	OutstandingBalance string    `json:"outstanding_balance"`
	Currency           string    `json:"currency"`
	CreationDate       time.Time `json:"creation_date"`
	Notes              string    `json:"notes,omitempty"`
	SourceWalletID     string    `json:"source_wallet_id"`
	PropertyID         string    `json:"property_id,omitempty"`
	CreationExpenseID  string    `json:"creation_expense_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type collectionDoc struct {
	CollectionID string    `json:"collection_id"`
	AssetID      string    `json:"asset_id"`
	Date         time.Time `json:"date"`
	Amount       string    `json:"amount"`
	WalletID     string    `json:"wallet_id"`
	Currency     string    `json:"currency"`
	Notes        string    `json:"notes,omitempty"`
	IncomeID     string    `json:"income_id"`
	PropertyID   string    `json:"property_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type liabilityDoc struct {
	LiabilityID        string    `json:"liability_id"`
	Name               string    `json:"name"`
	TotalAmount        string    `json:"total_amount"`
	OutstandingBalance string    `json:"outstanding_balance"`
	Currency           string    `json:"currency"`
	CreationDate       time.Time `json:"creation_date"`
	Notes              string    `json:"notes,omitempty"`
	TargetWalletID     string    `json:"target_wallet_id,omitempty"`
	PropertyID         string    `json:"property_id,omitempty"`
	CreationIncomeID   string    `json:"creation_income_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type paymentDoc struct {
	PaymentID       string    `json:"payment_id"`
	LiabilityID     string    `json:"liability_id"`
	Date            time.Time `json:"date"`
	Amount          string    `json:"amount"`
	WalletID        string    `json:"wallet_id"`
	Currency        string    `json:"currency"`
	Notes           string    `json:"notes,omitempty"`
	ActualExpenseID string    `json:"actual_expense_id"`
	PropertyID      string    `json:"property_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("malformed stored amount %q: %w", s, err)
	}
	return d, nil
}

func walletToDoc(w *models.Wallet) *walletDoc {
	return &walletDoc{
		WalletID:      w.ID,
		Name:          w.Name,
		Currency:       string(w.Currency),
		Balance:        w.Balance.String(),
		InitialBalance: w.InitialBalance.String(),
		Icon:           w.Icon,
		AllowNegative: w.AllowNegative,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func walletFromDoc(d *walletDoc) (*models.Wallet, error) {
	balance, err := parseAmount(d.Balance)
	if err != nil {
		return nil, err
	}
	initial, err := parseAmount(d.InitialBalance)
	if err != nil {
		return nil, err
	}
	return &models.Wallet{
		ID:             d.WalletID,
		Name:           d.Name,
		Currency:       models.Currency(d.Currency),
		Balance:        balance,
		InitialBalance: initial,
		Icon:           d.Icon,
		AllowNegative: d.AllowNegative,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func incomeToDoc(in *models.Income) *incomeDoc {
	return &incomeDoc{
		IncomeID:      in.ID,
		SubcategoryID: in.SubcategoryID,
		WalletID:      in.WalletID,
		Amount:        in.Amount.String(),
		Currency:      string(in.Currency),
		Date:          in.Date,
		Notes:         in.Notes,
		PropertyID:    in.PropertyID,
		AssetID:       in.AssetID,
		LiabilityID:   in.LiabilityID,
		CreatedAt:     in.CreatedAt,
		UpdatedAt:     in.UpdatedAt,
	}
}

func incomeFromDoc(d *incomeDoc) (*models.Income, error) {
	amount, err := parseAmount(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.Income{
		ID:            d.IncomeID,
		SubcategoryID: d.SubcategoryID,
		WalletID:      d.WalletID,
		Amount:        amount,
		Currency:      models.Currency(d.Currency),
		Date:          d.Date,
		Notes:         d.Notes,
		PropertyID:    d.PropertyID,
		AssetID:       d.AssetID,
		LiabilityID:   d.LiabilityID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func expenseToDoc(ex *models.ActualExpense) *expenseDoc {
	return &expenseDoc{
		ExpenseID:     ex.ID,
		SubcategoryID: ex.SubcategoryID,
		WalletID:      ex.WalletID,
		Amount:        ex.Amount.String(),
		Currency:      string(ex.Currency),
		Date:          ex.Date,
		Notes:         ex.Notes,
		PropertyID:    ex.PropertyID,
		AssetID:       ex.AssetID,
		LiabilityID:   ex.LiabilityID,
		CreatedAt:     ex.CreatedAt,
		UpdatedAt:     ex.UpdatedAt,
	}
}

func expenseFromDoc(d *expenseDoc) (*models.ActualExpense, error) {
	amount, err := parseAmount(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.ActualExpense{
		ID:            d.ExpenseID,
		SubcategoryID: d.SubcategoryID,
		WalletID:      d.WalletID,
		Amount:        amount,
		Currency:      models.Currency(d.Currency),
		Date:          d.Date,
		Notes:         d.Notes,
		PropertyID:    d.PropertyID,
		AssetID:       d.AssetID,
		LiabilityID:   d.LiabilityID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func expectedToDoc(ex *models.ExpectedExpense) *expectedDoc {
	return &expectedDoc{
		ExpectedID:    ex.ID,
		SubcategoryID: ex.SubcategoryID,
		PropertyID:    ex.PropertyID,
		Amount:        ex.Amount.String(),
		Currency:      string(ex.Currency),
		Month:         ex.Month,
		Year:          ex.Year,
		Notes:         ex.Notes,
		CreatedAt:     ex.CreatedAt,
		UpdatedAt:     ex.UpdatedAt,
	}
}

func expectedFromDoc(d *expectedDoc) (*models.ExpectedExpense, error) {
	amount, err := parseAmount(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.ExpectedExpense{
		ID:            d.ExpectedID,
		SubcategoryID: d.SubcategoryID,
		PropertyID:    d.PropertyID,
		Amount:        amount,
		Currency:      models.Currency(d.Currency),
		Month:         d.Month,
		Year:          d.Year,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}, nil
}

func transferToDoc(t *models.Transfer) *transferDoc {
	doc := &transferDoc{
		TransferID:     t.ID,
		FromWalletID:   t.FromWalletID,
		ToWalletID:     t.ToWalletID,
		AmountSent:     t.AmountSent.String(),
		AmountReceived: t.AmountReceived.String(),
		FromCurrency:   string(t.FromCurrency),
		ToCurrency:     string(t.ToCurrency),
		Date:           t.Date,
		Notes:          t.Notes,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if !t.ExchangeRate.IsZero() {
		doc.ExchangeRate = t.ExchangeRate.String()
	}
	return doc
}

func transferFromDoc(d *transferDoc) (*models.Transfer, error) {
	sent, err := parseAmount(d.AmountSent)
	if err != nil {
		return nil, err
	}
	received, err := parseAmount(d.AmountReceived)
	if err != nil {
		return nil, err
	}
	rate, err := parseAmount(d.ExchangeRate)
	if err != nil {
		return nil, err
	}
	return &models.Transfer{
		ID:             d.TransferID,
		FromWalletID:   d.FromWalletID,
		ToWalletID:     d.ToWalletID,
		AmountSent:     sent,
		AmountReceived: received,
		FromCurrency:   models.Currency(d.FromCurrency),
		ToCurrency:     models.Currency(d.ToCurrency),
		ExchangeRate:   rate,
		Date:           d.Date,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

func assetToDoc(a *models.Asset) *assetDoc {
	return &assetDoc{
		AssetID:            a.ID,
		Name:               a.Name,
		TotalAmount:        a.TotalAmount.String(),
		OutstandingBalance: a.OutstandingBalance.String(),
		Currency:           string(a.Currency),
		CreationDate:       a.CreationDate,
		Notes:              a.Notes,
		SourceWalletID:     a.SourceWalletID,
		PropertyID:         a.PropertyID,
		CreationExpenseID:  a.CreationExpenseID,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func assetFromDoc(d *assetDoc) (*models.Asset, error) {
	total, err := parseAmount(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	outstanding, err := parseAmount(d.OutstandingBalance)
	if err != nil {
		return nil, err
	}
	return &models.Asset{
		ID:                 d.AssetID,
		Name:               d.Name,
		TotalAmount:        total,
		OutstandingBalance: outstanding,
		Currency:           models.Currency(d.Currency),
		CreationDate:       d.CreationDate,
		Notes:              d.Notes,
		SourceWalletID:     d.SourceWalletID,
		PropertyID:         d.PropertyID,
		CreationExpenseID:  d.CreationExpenseID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

func collectionToDoc(c *models.AssetCollection) *collectionDoc {
	return &collectionDoc{
		CollectionID: c.ID,
		AssetID:      c.AssetID,
		Date:         c.Date,
		Amount:       c.Amount.String(),
		WalletID:     c.WalletID,
		Currency:     string(c.Currency),
		Notes:        c.Notes,
		IncomeID:     c.IncomeID,
		PropertyID:   c.PropertyID,
		CreatedAt:    c.CreatedAt,
	}
}

func collectionFromDoc(d *collectionDoc) (*models.AssetCollection, error) {
	amount, err := parseAmount(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.AssetCollection{
		ID:         d.CollectionID,
		AssetID:    d.AssetID,
		Date:       d.Date,
		Amount:     amount,
		WalletID:   d.WalletID,
		Currency:   models.Currency(d.Currency),
		Notes:      d.Notes,
		IncomeID:   d.IncomeID,
		PropertyID: d.PropertyID,
		CreatedAt:  d.CreatedAt,
	}, nil
}

func liabilityToDoc(l *models.Liability) *liabilityDoc {
	return &liabilityDoc{
		LiabilityID:        l.ID,
		Name:               l.Name,
		TotalAmount:        l.TotalAmount.String(),
		OutstandingBalance: l.OutstandingBalance.String(),
		Currency:           string(l.Currency),
		CreationDate:       l.CreationDate,
		Notes:              l.Notes,
		TargetWalletID:     l.TargetWalletID,
		PropertyID:         l.PropertyID,
		CreationIncomeID:   l.CreationIncomeID,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
	}
}

func liabilityFromDoc(d *liabilityDoc) (*models.Liability, error) {
	total, err := parseAmount(d.TotalAmount)
	if err != nil {
		return nil, err
	}
	outstanding, err := parseAmount(d.OutstandingBalance)
	if err != nil {
		return nil, err
	}
	return &models.Liability{
		ID:                 d.LiabilityID,
		Name:               d.Name,
		TotalAmount:        total,
		OutstandingBalance: outstanding,
		Currency:           models.Currency(d.Currency),
		CreationDate:       d.CreationDate,
		Notes:              d.Notes,
		TargetWalletID:     d.TargetWalletID,
		PropertyID:         d.PropertyID,
		CreationIncomeID:   d.CreationIncomeID,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}, nil
}

func paymentToDoc(p *models.LiabilityPayment) *paymentDoc {
	return &paymentDoc{
		PaymentID:       p.ID,
		LiabilityID:     p.LiabilityID,
		Date:            p.Date,
		Amount:          p.Amount.String(),
		WalletID:        p.WalletID,
		Currency:        string(p.Currency),
		Notes:           p.Notes,
		ActualExpenseID: p.ActualExpenseID,
		PropertyID:      p.PropertyID,
		CreatedAt:       p.CreatedAt,
	}
}

func paymentFromDoc(d *paymentDoc) (*models.LiabilityPayment, error) {
	amount, err := parseAmount(d.Amount)
	if err != nil {
		return nil, err
	}
	return &models.LiabilityPayment{
		ID:              d.PaymentID,
		LiabilityID:     d.LiabilityID,
		Date:            d.Date,
		Amount:          amount,
		WalletID:        d.WalletID,
		Currency:        models.Currency(d.Currency),
		Notes:           d.Notes,
		ActualExpenseID: d.ActualExpenseID,
		PropertyID:      d.PropertyID,
		CreatedAt:       d.CreatedAt,
	}, nil
}

// docForPut maps a domain model (or raw doc) to its persistence form for a
// batch put. Non-monetary entities (Property, Category) persist as-is.
func docForPut(doc any) (any, error) {
	switch v := doc.(type) {
	case *models.Wallet:
		return walletToDoc(v), nil
	case *models.Income:
		return incomeToDoc(v), nil
	case *models.ActualExpense:
		return expenseToDoc(v), nil
	case *models.ExpectedExpense:
		return expectedToDoc(v), nil
	case *models.Transfer:
		return transferToDoc(v), nil
	case *models.Asset:
		return assetToDoc(v), nil
	case *models.AssetCollection:
		return collectionToDoc(v), nil
	case *models.Liability:
		return liabilityToDoc(v), nil
	case *models.LiabilityPayment:
		return paymentToDoc(v), nil
	case *models.Property, *models.Category:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported document type %T", doc)
	}
}
