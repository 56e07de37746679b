package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

func servicioPrueba(t *testing.T, handler http.HandlerFunc) *GeminiService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	s := NewGeminiService("clave-prueba", "gemini-2.5-flash", log)
	s.baseURL = srv.URL + "/%s:generateContent?key=%s"
	return s
}

func respuestaGemini(texto string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": texto}}}},
		},
	}
}

func TestGeminiService_ExtraccionExitosa(t *testing.T) {
	// Caso 1: el arreglo JSON del modelo se mapea a tripletas.
	s := servicioPrueba(t, func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		// La imagen viaja inline junto al texto de instrucción.
		require.Len(t, req.Contents[0].Parts, 2)
		assert.Equal(t, "aW1hZ2Vu", req.Contents[0].Parts[1].InlineData.Data)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)

		json.NewEncoder(w).Encode(respuestaGemini(`[
			{"productCode": "B06", "date": "2025-03-10", "count": 42},
			{"productCode": "A01", "date": "2025-03-10", "count": "7"}
		]`))
	})

	rows, err := s.ExtractInventory(context.Background(), "aW1hZ2Vu", "image/png")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B06", rows[0].ProductCode)
	assert.Equal(t, 42, rows[0].Count)
	assert.Equal(t, 7, rows[1].Count, "conteo citado como string también se acepta")
}

func TestGeminiService_ItemsMalformadosSeOmiten(t *testing.T) {
	// Caso 2: ítems sin código, sin fecha o con conteo inválido se
	// descartan uno a uno sin abortar el lote.
	s := servicioPrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(respuestaGemini(`[
			{"productCode": "B06", "date": "2025-03-10", "count": 5},
			{"date": "2025-03-10", "count": 5},
			{"productCode": "A01", "count": 5},
			{"productCode": "A02", "date": "2025-03-10", "count": "muchos"},
			{"productCode": "A03", "date": "2025-03-10", "count": -4}
		]`))
	})

	rows, err := s.ExtractInventory(context.Background(), "aW1n", "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "B06", rows[0].ProductCode)
}

func TestGeminiService_RespuestaNoArreglo(t *testing.T) {
	// Caso 3: si el modelo no devuelve un arreglo, la extracción falla
	// completa (nada que fusionar a medias).
	s := servicioPrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(respuestaGemini(`{"mensaje": "no pude leer la imagen"}`))
	})

	_, err := s.ExtractInventory(context.Background(), "aW1n", "image/jpeg")
	require.Error(t, err)
}

func TestGeminiService_ErrorDeAPI(t *testing.T) {
	// Caso 4: un error HTTP de Gemini propaga código y mensaje.
	s := servicioPrueba(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 429, "message": "cuota agotada"},
		})
	})

	_, err := s.ExtractInventory(context.Background(), "aW1n", "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiService_SinAPIKey(t *testing.T) {
	// Caso 5: sin clave configurada no se intenta la llamada.
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	s := NewGeminiService("", "gemini-2.5-flash", log)

	_, err := s.ExtractInventory(context.Background(), "aW1n", "image/jpeg")
	require.Error(t, err)
}
