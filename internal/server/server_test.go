package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/reports"
	"github.com/zubbicodes/adsonsLab/internal/repository"
)

const samplePayload = `{"Rows":[
	{"DcNo":"DC-9","PoNo":"PO-1","Date":"2026-05-01","AccName":"Crescent Textiles","AccAddress":"Faisalabad","Remarks":"urgent",
	 "DetailName":"Black Elastic 45MM","DetailUnit":"Mtr","JobNo":"J-10","Pack":"4","Qty":"100","Weight":"10"},
	{"DetailName":"White Elastic 20 mm","DetailUnit":"Mtr","JobNo":"J-11","Pack":"2","Qty":"50","Weight":"5","DcNo":"2"}
]}`

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db, err := repository.Open(context.Background(), common.DatabaseConfig{DSN: ":memory:"}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db, logger))

	products := repository.NewProductRepository(db, logger)
	papers := repository.NewPaperRepository(db, logger)
	reportsRepo := repository.NewReportRepository(db, logger)
	reporter := reports.NewService(products, reportsRepo, logger)

	return New(logger, products, papers, reportsRepo, reporter)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestProductEndpoints(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/products",
		`{"product_code":"EL-45","description":"ELASTIC","width":"45MM","color":"BLACK"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "EL-45", created.ProductCode)

	rec = do(t, s, http.MethodGet, "/api/v1/products", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = do(t, s, http.MethodPost, "/api/v1/products", `{"description":"no code"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// code on its own is not enough; width and color are part of the form contract
	rec = do(t, s, http.MethodPost, "/api/v1/products", `{"product_code":"EL-20"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/products", `{"product_code":"EL-20","width":"20MM"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/v1/products/"+created.ID.String(),
		`{"product_code":"EL-45","color":"BLACK"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/v1/products/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, "/api/v1/products/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateProductDefaultsDescription(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/products",
		`{"product_code":"EL-20","width":"20MM","color":"WHITE"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created entity.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "ELASTIC", created.Description)
}

func TestReportEndpoints(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/products",
		`{"product_code":"EL-45","description":"ELASTIC","width":"45MM","color":"BLACK"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/reports",
		`{"product_code":"EL-45","po_number":"PO-77"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var rep entity.ShrinkageReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rep))
	assert.Equal(t, "PO-77", rep.PONumber)
	assert.Equal(t, "Elastic 45MM", rep.ProductDescription)

	rec = do(t, s, http.MethodGet, "/api/v1/reports/"+rep.ID.String()+"/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = do(t, s, http.MethodPost, "/api/v1/reports", `{"product_code":"MISSING","po_number":"PO-1"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/reports", `{"product_code":"EL-45"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	s := testServer(t)

	// nothing loaded yet
	rec := do(t, s, http.MethodGet, "/api/v1/loading-papers/session", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/loading-papers/ingest", samplePayload)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc entity.Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Items, 2)
	// items sorted by dc number: "2" before "DC-9"
	assert.Equal(t, "2", doc.Items[0].DCNo)
	assert.Equal(t, 1, doc.Items[0].SR)
	assert.Equal(t, "PO-1", doc.Items[1].PONo)
	assert.InDelta(t, 6.0, doc.Totals.Pack, 1e-9)
	assert.InDelta(t, 150.0, doc.Totals.Qty, 1e-9)

	rec = do(t, s, http.MethodPut, "/api/v1/loading-papers/session/header-note", `{"value":"handle with care"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPut, "/api/v1/loading-papers/session/items/1/remark", `{"value":"short pack"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "short pack", doc.Items[0].Remarks)
	assert.Equal(t, "handle with care", doc.Header.HeaderNote)

	rec = do(t, s, http.MethodDelete, "/api/v1/loading-papers/session/items/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 1, doc.Items[0].SR)
	assert.InDelta(t, 4.0, doc.Totals.Pack, 1e-9)

	rec = do(t, s, http.MethodPost, "/api/v1/loading-papers/session/save", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var saved map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.NotEmpty(t, saved["id"])

	rec = do(t, s, http.MethodGet, "/api/v1/loading-papers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var papers []entity.Paper
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &papers))
	require.Len(t, papers, 1)

	rec = do(t, s, http.MethodGet, "/api/v1/loading-papers/"+saved["id"]+"/pdf", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = do(t, s, http.MethodGet, "/api/v1/loading-papers/session/xlsx", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = do(t, s, http.MethodDelete, "/api/v1/loading-papers/session", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, s, http.MethodGet, "/api/v1/loading-papers/session", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngestErrors(t *testing.T) {
	s := testServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/loading-papers/ingest", `{"Rows":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/loading-papers/ingest", `{"Rows":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/loading-papers/ingest", `{"Other":true}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionItemBadSerial(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, http.MethodPut, "/api/v1/loading-papers/session/items/abc/remark", `{"value":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
