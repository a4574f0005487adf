package surrealdb

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"

	"github.com/Gabaldaar/gestionomiscuentas/internal/models"
)

// THROW reason prefixes used inside generated transactions. Commit maps them
// back to the sentinel errors in models.
const (
	throwNotFound       = "not_found"
	throwInsufficient   = "insufficient_funds"
	throwOverCollection = "over_collection"
)

// buildTransaction renders a WriteBatch into a single SurrealQL transaction.
// Guards run server-side against the stored state at execution time, so the
// read-check-write sequence is atomic: two racing commits cannot both pass a
// balance guard they jointly violate.
//
// Application order: wallet deltas (insertion order), outstanding deltas,
// puts, deletes. Statements inside a transaction see the writes of earlier
// statements, which is what makes revert-then-reapply edits compose.
func buildTransaction(batch *models.WriteBatch) (string, map[string]any, error) {
	var sb strings.Builder
	vars := make(map[string]any)

	sb.WriteString("BEGIN TRANSACTION;\n")

	for i, d := range batch.Deltas {
		wVar := fmt.Sprintf("w%d", i)
		idVar := fmt.Sprintf("wid%d", i)
		amtVar := fmt.Sprintf("wamt%d", i)
		balVar := fmt.Sprintf("wbal%d", i)
		vars[idVar] = d.WalletID
		vars[amtVar] = d.Amount.String()

		fmt.Fprintf(&sb, "LET $%s = (SELECT * FROM ONLY type::record('%s', $%s));\n",
			wVar, models.TableWallet, idVar)
		fmt.Fprintf(&sb, "IF $%s == NONE { THROW \"%s:%s:%s\" };\n",
			wVar, throwNotFound, models.TableWallet, d.WalletID)
		fmt.Fprintf(&sb, "LET $%s = <decimal>$%s.balance + <decimal>$%s;\n",
			balVar, wVar, amtVar)
		if d.Amount.IsNegative() {
			fmt.Fprintf(&sb, "IF $%s < 0 AND !$%s.allow_negative { THROW \"%s:%s:%s\" };\n",
				balVar, wVar, throwInsufficient, models.TableWallet, d.WalletID)
		}
		fmt.Fprintf(&sb, "UPDATE type::record('%s', $%s) SET balance = <string>$%s, updated_at = time::now();\n",
			models.TableWallet, idVar, balVar)
	}

	for i, o := range batch.Outstanding {
		if o.Table != models.TableAsset && o.Table != models.TableLiability {
			return "", nil, fmt.Errorf("outstanding delta on unsupported table %q", o.Table)
		}
		aVar := fmt.Sprintf("o%d", i)
		idVar := fmt.Sprintf("oid%d", i)
		amtVar := fmt.Sprintf("oamt%d", i)
		newVar := fmt.Sprintf("onew%d", i)
		vars[idVar] = o.ID
		vars[amtVar] = o.Amount.String()

		fmt.Fprintf(&sb, "LET $%s = (SELECT * FROM ONLY type::record('%s', $%s));\n",
			aVar, o.Table, idVar)
		fmt.Fprintf(&sb, "IF $%s == NONE { THROW \"%s:%s:%s\" };\n",
			aVar, throwNotFound, o.Table, o.ID)
		fmt.Fprintf(&sb, "LET $%s = <decimal>$%s.outstanding_balance + <decimal>$%s;\n",
			newVar, aVar, amtVar)
		fmt.Fprintf(&sb, "IF $%s < 0 OR $%s > <decimal>$%s.total_amount { THROW \"%s:%s:%s\" };\n",
			newVar, newVar, aVar, throwOverCollection, o.Table, o.ID)
		fmt.Fprintf(&sb, "UPDATE type::record('%s', $%s) SET outstanding_balance = <string>$%s, updated_at = time::now();\n",
			o.Table, idVar, newVar)
	}

	for i, p := range batch.Puts {
		idVar := fmt.Sprintf("pid%d", i)
		docVar := fmt.Sprintf("pdoc%d", i)
		doc, err := docForPut(p.Doc)
		if err != nil {
			return "", nil, err
		}
		vars[idVar] = p.ID
		vars[docVar] = doc
		fmt.Fprintf(&sb, "UPSERT type::record('%s', $%s) CONTENT $%s;\n", p.Table, idVar, docVar)
	}

	for i, d := range batch.Deletes {
		idVar := fmt.Sprintf("did%d", i)
		vars[idVar] = d.ID
		fmt.Fprintf(&sb, "DELETE type::record('%s', $%s);\n", d.Table, idVar)
	}

	sb.WriteString("COMMIT TRANSACTION;\n")
	return sb.String(), vars, nil
}

// Commit applies the batch as one atomic transaction.
func (m *Manager) Commit(ctx context.Context, batch *models.WriteBatch) error {
	if batch == nil || batch.Empty() {
		return nil
	}

	sql, vars, err := buildTransaction(batch)
	if err != nil {
		return fmt.Errorf("failed to build transaction: %w", err)
	}

	if _, err := surrealdb.Query[any](ctx, m.db, sql, vars); err != nil {
		return mapTxnError(err)
	}

	m.logger.Debug().
		Int("deltas", len(batch.Deltas)).
		Int("outstanding", len(batch.Outstanding)).
		Int("puts", len(batch.Puts)).
		Int("deletes", len(batch.Deletes)).
		Msg("Batch committed")
	return nil
}

// mapTxnError translates a THROWn guard reason back into the matching
// sentinel error. Anything else is a transport/storage failure and the batch
// is presumed not committed.
func mapTxnError(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, throwInsufficient):
		return fmt.Errorf("%w: %s", models.ErrInsufficientFunds, throwDetail(msg, throwInsufficient))
	case strings.Contains(msg, throwOverCollection):
		return fmt.Errorf("%w: %s", models.ErrOverCollection, throwDetail(msg, throwOverCollection))
	case strings.Contains(msg, throwNotFound):
		return fmt.Errorf("%w: %s", models.ErrNotFound, throwDetail(msg, throwNotFound))
	default:
		return fmt.Errorf("%w: %v", models.ErrStoreUnavailable, err)
	}
}

// throwDetail extracts the "table:id" part of a THROW reason.
func throwDetail(msg, prefix string) string {
	idx := strings.Index(msg, prefix+":")
	if idx < 0 {
		return ""
	}
	rest := msg[idx+len(prefix)+1:]
	if end := strings.IndexAny(rest, "\" \n"); end >= 0 {
		rest = rest[:end]
	}
	return rest
}
