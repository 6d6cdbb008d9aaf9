package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/veggie-board/internal/common"
	"github.com/Veraticus/veggie-board/internal/config"
	"github.com/Veraticus/veggie-board/internal/model"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, router http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	cfg := config.DefaultAPIConfig()
	cfg.BaseURL = server.URL + "/api"
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 100
	cfg.RetryDelay = time.Millisecond

	client, err := NewClient(cfg)
	require.NoError(t, err)
	return client
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestClient_Login(t *testing.T) {
	tests := []struct {
		response    map[string]any
		name        string
		wantMessage string
		wantUser    model.Commissioner
		wantErr     bool
	}{
		{
			name: "success",
			response: map[string]any{
				"success":      true,
				"commissioner": map[string]any{"id": 7, "name": "Maria", "email": "maria@example.com"},
			},
			wantUser: model.Commissioner{ID: 7, Name: "Maria", Email: "maria@example.com"},
		},
		{
			name:        "rejected with message",
			response:    map[string]any{"success": false, "message": "Wrong password"},
			wantErr:     true,
			wantMessage: "Wrong password",
		},
		{
			name:        "rejected without message",
			response:    map[string]any{"success": false},
			wantErr:     true,
			wantMessage: MsgLoginFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			router.POST("/api/login.php", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				var req loginRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "maria@example.com", req.Email)
				assert.Equal(t, "secret1", req.Password)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
				writeJSON(t, w, http.StatusOK, tt.response)
			})

			client := newTestClient(t, router)
			user, err := client.Login(context.Background(), "maria@example.com", "secret1")

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrAPIRejected)
				assert.Equal(t, tt.wantMessage, common.UserMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, user)
		})
	}
}

func TestClient_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := httprouter.New()
		router.POST("/api/signup.php", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
			var req signupRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "Jose", req.Name)
			writeJSON(t, w, http.StatusOK, map[string]any{
				"success":         true,
				"commissioner_id": 12,
				"name":            "Jose",
				"email":           "jose@example.com",
			})
		})

		client := newTestClient(t, router)
		user, err := client.Signup(context.Background(), "Jose", "jose@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, model.Commissioner{ID: 12, Name: "Jose", Email: "jose@example.com"}, user)
	})

	t.Run("already registered", func(t *testing.T) {
		router := httprouter.New()
		router.POST("/api/signup.php", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
			writeJSON(t, w, http.StatusConflict, map[string]any{
				"success": false,
				"message": "Email already registered",
			})
		})

		client := newTestClient(t, router)
		_, err := client.Signup(context.Background(), "Jose", "jose@example.com", "secret1")
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrAccountExists)

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "signup.php", apiErr.Endpoint)
	})
}

func TestClient_ReadAll(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/read_all.php", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"entries": []map[string]any{
				{"id": 1, "vegetableName": "Carrot", "price": 50.5, "unit": "kg", "quantity": 10,
					"status": "Good Quality", "commissionerName": "Maria", "commissionerId": 7,
					"updatedAt": "2024-01-02 10:00:00"},
			},
		})
	})

	client := newTestClient(t, router)
	entries, err := client.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Carrot", entries[0].VegetableName)
	assert.InDelta(t, 50.5, entries[0].Price, 0.001)
	assert.Equal(t, model.StatusGood, entries[0].Status)
	assert.Equal(t, 7, entries[0].CommissionerID)
}

func TestClient_ReadByCommissioner(t *testing.T) {
	router := httprouter.New()
	router.GET("/api/read.php", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		assert.Equal(t, "7", r.URL.Query().Get("commissioner_id"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"entries": []map[string]any{{"id": 3, "vegetableName": "Onion", "price": 30}},
			"statistics": map[string]any{
				"totalVegetables": 1,
				"averagePrice":    30,
				"staleCount":      0,
				"lastUpdate":      "Today",
			},
		})
	})

	client := newTestClient(t, router)
	got, err := client.ReadByCommissioner(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, got.Entries, 1)
	assert.Equal(t, 1, got.Statistics.TotalVegetables)
	assert.Equal(t, "Today", got.Statistics.LastUpdate)
}

func TestClient_RetriesTransportFailuresOnReads(t *testing.T) {
	var calls atomic.Int32

	router := httprouter.New()
	router.GET("/api/read_all.php", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "entries": []any{}})
	})

	client := newTestClient(t, router)
	entries, err := client.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NonJSONIsTransportError(t *testing.T) {
	var calls atomic.Int32

	router := httprouter.New()
	router.POST("/api/delete.php", func(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Fatal error"))
	})

	client := newTestClient(t, router)
	_, err := client.Delete(context.Background(), 7, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTransport)
	assert.Equal(t, common.GenericFailureMessage, common.UserMessage(err))
	// Writes are not retried.
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_Save(t *testing.T) {
	tests := []struct {
		name         string
		wantEndpoint string
		draft        model.EntryDraft
	}{
		{
			name:         "create",
			draft:        model.EntryDraft{Vegetable: "Carrot", Price: 50, Unit: "kg", Quantity: 1, Status: model.StatusGood},
			wantEndpoint: "create",
		},
		{
			name:         "update",
			draft:        model.EntryDraft{ID: 4, Vegetable: "Carrot", Price: 55, Unit: "kg", Quantity: 1, Status: model.StatusLow},
			wantEndpoint: "update",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got entryRequest
			var hit string

			handler := func(name string) httprouter.Handle {
				return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
					hit = name
					assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
					writeJSON(t, w, http.StatusOK, map[string]any{"success": true, "message": "Saved"})
				}
			}

			router := httprouter.New()
			router.POST("/api/create.php", handler("create"))
			router.POST("/api/update.php", handler("update"))

			client := newTestClient(t, router)
			msg, err := client.Save(context.Background(), 7, tt.draft)
			require.NoError(t, err)
			assert.Equal(t, "Saved", msg)
			assert.Equal(t, tt.wantEndpoint, hit)
			assert.Equal(t, 7, got.CommissionerID)
			assert.Equal(t, tt.draft.ID, got.ID)
			assert.Equal(t, tt.draft.Vegetable, got.Vegetable)
			assert.Equal(t, tt.draft.Status, got.Status)
		})
	}
}

func TestClient_BulkUpdate(t *testing.T) {
	tests := []struct {
		response    map[string]any
		name        string
		wantMessage string
		wantPartial bool
		wantErr     bool
	}{
		{
			name:     "all saved",
			response: map[string]any{"success": true, "message": "2 prices updated", "updatedCount": 2},
		},
		{
			name: "partial",
			response: map[string]any{
				"success": false, "message": "Some updates failed",
				"updatedCount": 1, "errors": []string{"Entry 9 not found"},
			},
			wantPartial: true,
		},
		{
			name: "all failed with details",
			response: map[string]any{
				"success": false, "updatedCount": 0,
				"errors": []string{"Entry 8 not found", "Entry 9 not found"},
			},
			wantErr:     true,
			wantMessage: "Entry 8 not found, Entry 9 not found",
		},
		{
			name:        "failed without details",
			response:    map[string]any{"success": false},
			wantErr:     true,
			wantMessage: MsgBulkFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			router.POST("/api/bulk_update.php", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				var req bulkRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Len(t, req.Updates, 2)
				writeJSON(t, w, http.StatusOK, tt.response)
			})

			client := newTestClient(t, router)
			result, err := client.BulkUpdate(context.Background(), []model.PriceUpdate{
				{ID: 8, Price: 10, Status: model.StatusGood},
				{ID: 9, Price: 20, Status: model.StatusLow},
			})

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPartial, result.Partial())
		})
	}
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := config.DefaultAPIConfig()
	cfg.BaseURL = ""

	_, err := NewClient(cfg)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestBulkResult_Summary(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		result  BulkResult
		partial bool
	}{
		{name: "server message", result: BulkResult{Message: "Prices updated", UpdatedCount: 2}, want: "Prices updated"},
		{name: "no message", result: BulkResult{UpdatedCount: 2}, want: MsgBulkUpdated},
		{
			name:    "partial",
			result:  BulkResult{Message: "ignored", UpdatedCount: 1, Errors: []string{"Onion: not found", "Okra: locked"}},
			want:    "1 item(s) updated. Some updates failed: Onion: not found, Okra: locked",
			partial: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.partial, tt.result.Partial())
			assert.Equal(t, tt.want, tt.result.Summary())
		})
	}
}

func TestClient_Delete(t *testing.T) {
	tests := []struct {
		response    map[string]any
		name        string
		wantMessage string
		wantErr     bool
	}{
		{name: "deleted", response: map[string]any{"success": true, "message": "Entry deleted"}, wantMessage: "Entry deleted"},
		{name: "rejected", response: map[string]any{"success": false, "message": "Not your entry"}, wantErr: true, wantMessage: "Not your entry"},
		{name: "rejected without message", response: map[string]any{"success": false}, wantErr: true, wantMessage: MsgDeleteFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got deleteRequest
			router := httprouter.New()
			router.POST("/api/delete.php", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
				writeJSON(t, w, http.StatusOK, tt.response)
			})

			client := newTestClient(t, router)
			msg, err := client.Delete(context.Background(), 7, 12)
			assert.Equal(t, deleteRequest{ID: 12, CommissionerID: 7}, got)

			if tt.wantErr {
				require.ErrorIs(t, err, common.ErrAPIRejected)
				assert.Equal(t, tt.wantMessage, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}
