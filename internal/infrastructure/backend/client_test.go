package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

func clientePrueba(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return NewClient(srv.URL, 5*time.Second, log)
}

func TestClient_LoginExitoso(t *testing.T) {
	// Caso 1: login envía credenciales y devuelve usuario + bearer token.
	c := clientePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@acme.co", body["email"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "backend-token",
			"user":  map[string]string{"id": "u1", "name": "Ana", "email": "ana@acme.co", "role": "ADMIN"},
		})
	})

	user, token, err := c.Login(context.Background(), "ana@acme.co", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "backend-token", token)
	assert.Equal(t, "u1", user.ID)
	assert.True(t, user.IsAdmin())
}

func TestClient_LoginCredencialesInvalidas(t *testing.T) {
	// Caso 2: un 401 del remote store se mapea a ErrUnauthorized.
	c := clientePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, _, err := c.Login(context.Background(), "ana@acme.co", "mala")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestClient_FetchEntriesValidaFrontera(t *testing.T) {
	// Caso 3: una entrada sin productId es payload malformado, no datos.
	c := clientePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "e1", "productId": "p1", "date": "2025-03-01", "count": 4},
			{"id": "e2", "date": "2025-03-02", "count": 1},
		})
	})

	_, err := c.FetchEntries(context.Background(), "tok")
	require.ErrorIs(t, err, domain.ErrDecoding)
}

func TestClient_FetchEntriesExitoso(t *testing.T) {
	// Caso 4: entradas bien formadas se mapean tal cual (la normalización
	// de fechas es responsabilidad del Entry Store, no del adaptador).
	c := clientePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "e1", "productId": "p1", "date": "2025-03-01T00:00:00.000Z", "count": 4, "userId": "u1"},
		})
	})

	entries, err := c.FetchEntries(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2025-03-01T00:00:00.000Z", entries[0].Date)
	assert.Equal(t, 4, entries[0].Count)
}

func TestClient_PushEntriesEnviaConjuntoCompleto(t *testing.T) {
	// Caso 5: el push lleva todas las entradas en un solo cuerpo.
	var recibido struct {
		Entries []map[string]any `json:"entries"`
	}
	c := clientePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/entries/bulk", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&recibido))
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.PushEntries(context.Background(), "tok", []entity.InventoryEntry{
		{ID: "e1", ProductID: "p1", Date: "2025-03-01", Count: 4, UserID: "u1"},
		{ID: "e2", ProductID: "p2", Date: "2025-03-02", Count: 0, UserID: "u1"},
	})
	require.NoError(t, err)
	assert.Len(t, recibido.Entries, 2)
}

func TestClient_FetchProductsCapacidadNegativa(t *testing.T) {
	// Caso 6: capacidad negativa viola el contrato y se rechaza.
	c := clientePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "p1", "code": "B06", "name": "Harina", "capacity": -5},
		})
	})

	_, err := c.FetchProducts(context.Background(), "tok")
	require.ErrorIs(t, err, domain.ErrDecoding)
}

func TestClient_DeleteProductNoEncontrado(t *testing.T) {
	// Caso 7: 404 se mapea a ErrNotFound.
	c := clientePrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.DeleteProduct(context.Background(), "tok", "p-x")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_FetchAnalytics(t *testing.T) {
	// Caso 8: el documento del tablero pasa la validación de frontera.
	c := clientePrueba(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analytics/dashboard", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"stats":          map[string]int{"totalProducts": 12, "lowStockCount": 3},
			"recentActivity": []map[string]string{{"name": "Harina", "action": "conteo", "time": "hace 2h"}},
			"movementData":   []map[string]any{{"name": "Lun", "value": 40}},
			"pieData":        []map[string]any{{"name": "Secos", "value": 60}},
		})
	})

	doc, err := c.FetchAnalytics(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 12, doc.Stats.TotalProducts)
	require.Len(t, doc.MovementData, 1)
	assert.Equal(t, "Lun", doc.MovementData[0].Name)
}
