package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/Gabaldaar/gestionomiscuentas/internal/app"
	"github.com/Gabaldaar/gestionomiscuentas/internal/common"
	"github.com/Gabaldaar/gestionomiscuentas/internal/server"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/asset"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/category"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/liability"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/property"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/summary"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/transfer"
	"github.com/Gabaldaar/gestionomiscuentas/internal/services/wallet"
	"github.com/Gabaldaar/gestionomiscuentas/internal/storage/surrealdb"
)

// Env is an isolated API test environment: a SurrealDB-backed application
// served over httptest. Each Env uses its own database so tests don't see
// each other's documents.
type Env struct {
	t       *testing.T
	App     *app.App
	httpSrv *httptest.Server
}

// NewEnv builds a test environment over the shared SurrealDB container.
// The summary client is left nil, so AI generation endpoints return 400.
func NewEnv(t *testing.T) *Env {
	t.Helper()

	sdb := StartSurrealDB(t)

	config := common.NewDefaultConfig()
	config.Storage.Address = sdb.Address()
	config.Storage.Namespace = "gmc_test"
	config.Storage.Database = "db_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]

	logger := common.NewSilentLogger()

	storage, err := surrealdb.NewManager(logger, config)
	if err != nil {
		t.Fatalf("storage manager: %v", err)
	}

	categoryService := category.NewService(storage, logger)

	a := &app.App{
		Config:           config,
		Logger:           logger,
		Storage:          storage,
		WalletService:    wallet.NewService(storage, logger),
		TransferService:  transfer.NewService(storage, logger),
		AssetService:     asset.NewService(storage, categoryService, logger),
		LiabilityService: liability.NewService(storage, categoryService, logger),
		PropertyService:  property.NewService(storage, logger),
		CategoryService:  categoryService,
		SummaryService:   summary.NewService(storage, nil, logger),
	}

	srv := server.NewServer(a)
	httpSrv := httptest.NewServer(srv.Handler())

	env := &Env{t: t, App: a, httpSrv: httpSrv}
	t.Cleanup(env.Close)
	return env
}

// Close shuts down the HTTP server and storage connection.
func (e *Env) Close() {
	if e.httpSrv != nil {
		e.httpSrv.Close()
		e.httpSrv = nil
	}
	if e.App != nil && e.App.Storage != nil {
		e.App.Storage.Close()
		e.App.Storage = nil
	}
}

// HTTPRequest issues a request against the test server. body may be nil or
// any JSON-marshalable value.
func (e *Env) HTTPRequest(method, path string, body interface{}) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.httpSrv.URL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return http.DefaultClient.Do(req)
}

// DoJSON issues a request and decodes the JSON response body into a generic
// map, returning it with the status code.
func (e *Env) DoJSON(t *testing.T, method, path string, body interface{}) (map[string]interface{}, int) {
	t.Helper()
	resp, err := e.HTTPRequest(method, path, body)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	var result map[string]interface{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, string(data), err)
		}
	}
	return result, resp.StatusCode
}

// DoJSONList issues a request expecting a JSON array response.
func (e *Env) DoJSONList(t *testing.T, method, path string) ([]interface{}, int) {
	t.Helper()
	resp, err := e.HTTPRequest(method, path, nil)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode
	}
	var result []interface{}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("%s %s: decode %q: %v", method, path, string(data), err)
	}
	return result, resp.StatusCode
}
