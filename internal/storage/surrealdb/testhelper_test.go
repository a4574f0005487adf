package surrealdb_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	surreal "github.com/surrealdb/surrealdb.go"

	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	sdbstore "github.com/Gabaldaar/gestionomiscuentas/internal/storage/surrealdb"
	tcommon "github.com/Gabaldaar/gestionomiscuentas/tests/common"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", s, err)
	}
	return d
}

// testManager starts the shared SurrealDB container and returns a Manager
// bound to a unique database name per test to ensure isolation.
func testManager(t *testing.T) *sdbstore.Manager {
	t.Helper()

	sc := tcommon.StartSurrealDB(t)
	ctx := context.Background()

	db, err := surreal.New(sc.Address())
	if err != nil {
		t.Fatalf("connect to SurrealDB: %v", err)
	}

	if _, err := db.SignIn(ctx, map[string]interface{}{
		"user": "root",
		"pass": "root",
	}); err != nil {
		t.Fatalf("sign in to SurrealDB: %v", err)
	}

	// Sanitize t.Name() because subtests produce names like "Test/subtest"
	// and SurrealDB rejects "/" in database names.
	sanitized := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dbName := fmt.Sprintf("t_%s_%d", sanitized, time.Now().UnixNano()%100000)
	if err := db.Use(ctx, "gmc_test", dbName); err != nil {
		t.Fatalf("select namespace/database: %v", err)
	}

	t.Cleanup(func() {
		db.Close(context.Background())
	})

	m, err := sdbstore.NewManagerWithDB(db, common.NewSilentLogger())
	if err != nil {
		t.Fatalf("manager: %v", err)
	}
	return m
}
