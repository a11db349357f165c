package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/scan"
	"github.com/renaqiu/stylematch/internal/domain/verdict"
	"github.com/renaqiu/stylematch/internal/infra/config"
	apperrors "github.com/renaqiu/stylematch/pkg/errors"
)

type stubScanService struct {
	evaluateFn func(ctx context.Context, req scan.Request) (scan.Response, error)
	saveFn     func(ctx context.Context, req scan.SaveRequest) error
	unsaveFn   func(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error)
	trendingFn func(ctx context.Context) ([]scan.TrendingStyle, error)
}

func (s *stubScanService) EvaluateScan(ctx context.Context, req scan.Request) (scan.Response, error) {
	return s.evaluateFn(ctx, req)
}

func (s *stubScanService) SaveScan(ctx context.Context, req scan.SaveRequest) error {
	return s.saveFn(ctx, req)
}

func (s *stubScanService) UnsaveScan(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error) {
	return s.unsaveFn(ctx, scanID)
}

func (s *stubScanService) TrendingStyles(ctx context.Context) ([]scan.TrendingStyle, error) {
	return s.trendingFn(ctx)
}

type stubClosetService struct {
	snapshotFn func(ctx context.Context) ([]closet.WardrobeItem, error)
	addFn      func(ctx context.Context, req closet.AddItemRequest) (closet.AddItemResult, error)
	removeFn   func(ctx context.Context, id uuid.UUID) error
}

func (s *stubClosetService) Snapshot(ctx context.Context) ([]closet.WardrobeItem, error) {
	return s.snapshotFn(ctx)
}

func (s *stubClosetService) AddItem(ctx context.Context, req closet.AddItemRequest) (closet.AddItemResult, error) {
	return s.addFn(ctx, req)
}

func (s *stubClosetService) RemoveItem(ctx context.Context, id uuid.UUID) error {
	return s.removeFn(ctx, id)
}

func newRouterUnderTest(t *testing.T, scanSvc scan.Service, closetSvc closet.Service) *http.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := NewHandler(scanSvc, closetSvc, logger)
	cfg := &config.Config{}
	cfg.HTTP.Address = ":0"
	cfg.HTTP.ReadTimeout = time.Second
	cfg.HTTP.WriteTimeout = time.Second
	return NewRouter(cfg, handler)
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeErrorBody(t *testing.T, data []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(data, &body))
	return body
}

func TestRouter_EvaluateScanSuccess(t *testing.T) {
	scanID := uuid.New()
	svc := &stubScanService{
		evaluateFn: func(ctx context.Context, req scan.Request) (scan.Response, error) {
			require.Equal(t, closet.CategoryTops, req.Item.Category)
			return scan.Response{ScanID: scanID}, nil
		},
	}

	rec := performRequest(http.MethodPost, "/api/v1/scans/evaluate",
		`{"item":{"category":"tops","isFashionItem":true,"contextSufficient":true}}`,
		newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusOK, rec.Code)

	var got scan.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, scanID, got.ScanID)
}

func TestRouter_EvaluateScanInvalidJSON(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/scans/evaluate", `{"item":`,
		newRouterUnderTest(t, &stubScanService{}, &stubClosetService{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_EvaluateScanInvalidInput(t *testing.T) {
	svc := &stubScanService{
		evaluateFn: func(ctx context.Context, req scan.Request) (scan.Response, error) {
			return scan.Response{}, apperrors.Wrap("invalid_input", "unknown category", nil)
		},
	}

	rec := performRequest(http.MethodPost, "/api/v1/scans/evaluate",
		`{"item":{"category":"hats"}}`, newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "unknown category")
}

func TestRouter_SaveScan(t *testing.T) {
	scanID := uuid.New()
	svc := &stubScanService{
		saveFn: func(ctx context.Context, req scan.SaveRequest) error {
			require.Equal(t, scanID, req.ScanID)
			require.Equal(t, verdict.UIStateGreat, req.UIState)
			return nil
		},
	}

	path := fmt.Sprintf("/api/v1/scans/%s/save", scanID)
	rec := performRequest(http.MethodPost, path,
		`{"category":"tops","verdictUIState":"great"}`,
		newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_SaveScanMalformedID(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/scans/not-a-uuid/save", `{}`,
		newRouterUnderTest(t, &stubScanService{}, &stubClosetService{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnsaveScanNotFound(t *testing.T) {
	svc := &stubScanService{
		unsaveFn: func(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error) {
			return "", apperrors.Wrap("not_found", "scan is not saved", nil)
		},
	}

	path := fmt.Sprintf("/api/v1/scans/%s/save", uuid.New())
	rec := performRequest(http.MethodDelete, path, "", newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusNotFound, rec.Code)

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "not_found", errBody["error"]["code"])
}

func TestRouter_UnsaveScanSuccess(t *testing.T) {
	svc := &stubScanService{
		unsaveFn: func(ctx context.Context, scanID uuid.UUID) (verdict.Outcome, error) {
			return verdict.OutcomeGoodMatch, nil
		},
	}

	path := fmt.Sprintf("/api/v1/scans/%s/save", uuid.New())
	rec := performRequest(http.MethodDelete, path, "", newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), string(verdict.OutcomeGoodMatch))
}

func TestRouter_TrendingStyles(t *testing.T) {
	svc := &stubScanService{
		trendingFn: func(ctx context.Context) ([]scan.TrendingStyle, error) {
			return []scan.TrendingStyle{{Tag: "casual", Count: 7}}, nil
		},
	}

	rec := performRequest(http.MethodGet, "/api/v1/styles/trending", "",
		newRouterUnderTest(t, svc, &stubClosetService{}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "casual")
}

func TestRouter_ListCloset(t *testing.T) {
	svc := &stubClosetService{
		snapshotFn: func(ctx context.Context) ([]closet.WardrobeItem, error) {
			return []closet.WardrobeItem{{ID: uuid.New(), Category: closet.CategoryShoes}}, nil
		},
	}

	rec := performRequest(http.MethodGet, "/api/v1/closet", "",
		newRouterUnderTest(t, &stubScanService{}, svc))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Items []closet.WardrobeItem `json:"items"`
		Count int                   `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.Count)
	require.Len(t, body.Items, 1)
}

func TestRouter_AddClosetItem(t *testing.T) {
	svc := &stubClosetService{
		addFn: func(ctx context.Context, req closet.AddItemRequest) (closet.AddItemResult, error) {
			require.Equal(t, "tops", req.Category)
			require.Equal(t, []byte("photo"), req.ImageData)
			require.Equal(t, "image/jpeg", req.ImageMime)
			return closet.AddItemResult{Item: closet.WardrobeItem{ID: uuid.New(), Category: closet.CategoryTops}}, nil
		},
	}

	body := `{"category":"tops","colors":[{"hex":"#ffffff","name":"white"}],"image":"cGhvdG8=","imageMime":"image/jpeg"}`
	rec := performRequest(http.MethodPost, "/api/v1/closet/items", body,
		newRouterUnderTest(t, &stubScanService{}, svc))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_AddClosetItemBadBase64(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/closet/items",
		`{"category":"tops","colors":[{"hex":"#ffffff"}],"image":"%%%"}`,
		newRouterUnderTest(t, &stubScanService{}, &stubClosetService{}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RemoveClosetItem(t *testing.T) {
	removed := uuid.Nil
	svc := &stubClosetService{
		removeFn: func(ctx context.Context, id uuid.UUID) error {
			removed = id
			return nil
		},
	}

	id := uuid.New()
	rec := performRequest(http.MethodDelete, "/api/v1/closet/items/"+id.String(), "",
		newRouterUnderTest(t, &stubScanService{}, svc))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, id, removed)
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := newRouterUnderTest(t, &stubScanService{}, &stubClosetService{})
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/closet", nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
