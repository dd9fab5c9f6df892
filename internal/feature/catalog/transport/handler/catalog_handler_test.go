package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market_backend/internal/feature/catalog/domain/entity"
	"market_backend/internal/feature/catalog/usecase"
	"market_backend/internal/platform/token"
)

// mockCatalogUsecase is a mock implementation of the CatalogUsecase interface.
type mockCatalogUsecase struct {
	ListAllFunc    func(ctx context.Context) ([]entity.ProduceListing, error)
	AddListingFunc func(ctx context.Context, accountID uint, kind string, count int, description string) (uint, error)
	PurchaseFunc   func(ctx context.Context, listingID uint) (*entity.ProduceListing, error)
}

func (m *mockCatalogUsecase) ListAll(ctx context.Context) ([]entity.ProduceListing, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockCatalogUsecase) AddListing(ctx context.Context, accountID uint, kind string, count int, description string) (uint, error) {
	if m.AddListingFunc != nil {
		return m.AddListingFunc(ctx, accountID, kind, count, description)
	}
	return 1, nil
}

func (m *mockCatalogUsecase) Purchase(ctx context.Context, listingID uint) (*entity.ProduceListing, error) {
	if m.PurchaseFunc != nil {
		return m.PurchaseFunc(ctx, listingID)
	}
	return nil, usecase.ErrListingNotFound
}

// fakeAuth injects an authenticated account ID the way the session middleware would.
func fakeAuth(accountID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(token.ContextAccountID, accountID)
		c.Next()
	}
}

func newTestRouter(mockUC *mockCatalogUsecase, accountID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(mockUC)
	r := gin.New()
	r.GET("/get_all_produce", h.ListAll)
	auth := r.Group("/", fakeAuth(accountID))
	auth.POST("/add_produce_type", h.AddProduce)
	auth.POST("/buy_produce", h.BuyProduce)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, path, bytes.NewBuffer(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCatalogHandler_ListAll(t *testing.T) {
	t.Run("success: wire field names", func(t *testing.T) {
		mockUC := &mockCatalogUsecase{
			ListAllFunc: func(ctx context.Context) ([]entity.ProduceListing, error) {
				return []entity.ProduceListing{
					{ID: 1, Kind: "Orange", Count: 10, Description: "Fresh Florida oranges", AccountID: 7},
				}, nil
			},
		}
		r := newTestRouter(mockUC, 7)

		req, _ := http.NewRequest(http.MethodGet, "/get_all_produce", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var body []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body, 1)
		assert.Equal(t, "Orange", body[0]["fruit_type"])
		assert.Equal(t, float64(10), body[0]["num_fruits"])
		assert.Equal(t, "Fresh Florida oranges", body[0]["description"])
		assert.NotContains(t, body[0], "account_id", "owner reference is not exposed on the wire")
	})

	t.Run("success: empty catalog is an empty array", func(t *testing.T) {
		r := newTestRouter(&mockCatalogUsecase{}, 1)

		req, _ := http.NewRequest(http.MethodGet, "/get_all_produce", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("failure: storage error is generic", func(t *testing.T) {
		mockUC := &mockCatalogUsecase{
			ListAllFunc: func(ctx context.Context) ([]entity.ProduceListing, error) {
				return nil, assert.AnError
			},
		}
		r := newTestRouter(mockUC, 1)

		req, _ := http.NewRequest(http.MethodGet, "/get_all_produce", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error(),
			"internal error detail must not leak to the caller")
	})
}

func TestCatalogHandler_AddProduce(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    gin.H
		addErr         error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "success",
			requestBody:    gin.H{"fruit_type": "Orange", "num_fruits": 10, "description": "Fresh Florida oranges"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "failure: missing fields",
			requestBody:    gin.H{"fruit_type": "", "num_fruits": 10, "description": ""},
			addErr:         usecase.ErrMissingFields,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "FRUIT TYPE AND DESCRIPTION ARE REQUIRED",
		},
		{
			name:           "failure: negative count",
			requestBody:    gin.H{"fruit_type": "Orange", "num_fruits": -1, "description": "d"},
			addErr:         usecase.ErrNegativeCount,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "NUM FRUITS MUST NOT BE NEGATIVE",
		},
		{
			name:           "failure: duplicate description",
			requestBody:    gin.H{"fruit_type": "Orange", "num_fruits": 10, "description": "taken"},
			addErr:         usecase.ErrDescriptionTaken,
			expectedStatus: http.StatusConflict,
			expectedError:  "DESCRIPTION ALREADY EXISTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUC := &mockCatalogUsecase{
				AddListingFunc: func(ctx context.Context, accountID uint, kind string, count int, description string) (uint, error) {
					assert.Equal(t, uint(7), accountID, "owner must come from the session context")
					return 1, tt.addErr
				},
			}
			w := postJSON(t, newTestRouter(mockUC, 7), "/add_produce_type", tt.requestBody)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var body gin.H
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.expectedError != "" {
				assert.Equal(t, false, body["success"])
				assert.Equal(t, tt.expectedError, body["error"])
			} else {
				assert.Equal(t, true, body["success"])
			}
		})
	}

	t.Run("failure: no account in context", func(t *testing.T) {
		w := postJSON(t, newTestRouter(&mockCatalogUsecase{}, 0), "/add_produce_type",
			gin.H{"fruit_type": "Orange", "num_fruits": 10, "description": "d"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestCatalogHandler_BuyProduce(t *testing.T) {
	t.Run("success: acknowledgment only", func(t *testing.T) {
		mockUC := &mockCatalogUsecase{
			PurchaseFunc: func(ctx context.Context, listingID uint) (*entity.ProduceListing, error) {
				assert.Equal(t, uint(3), listingID)
				return &entity.ProduceListing{ID: 3, Kind: "Orange", Count: 10}, nil
			},
		}
		w := postJSON(t, newTestRouter(mockUC, 7), "/buy_produce", gin.H{"listing_id": 3})

		assert.Equal(t, http.StatusOK, w.Code)

		var body gin.H
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Orange", body["fruit_type"])
	})

	t.Run("failure: unknown listing", func(t *testing.T) {
		w := postJSON(t, newTestRouter(&mockCatalogUsecase{}, 7), "/buy_produce", gin.H{"listing_id": 99})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
