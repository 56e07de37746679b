// Package ai adapta la API REST de Google Gemini al puerto de extracción
// por imagen. Usa únicamente net/http: la API es un POST JSON plano.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/omnistock-hub/internal/application/ports"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

// Verificar en tiempo de compilación que GeminiService implementa el puerto.
var _ ports.ExtractionService = (*GeminiService)(nil)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent?key=%s"

	// extractionPrompt define el rol del modelo y el contrato de salida.
	// Con responseMimeType=application/json Gemini devuelve JSON puro, sin
	// bloques de markdown que limpiar.
	extractionPrompt = `Eres un asistente de inventario. La imagen es una planilla física de conteos de stock.
Devuelve ÚNICAMENTE un arreglo JSON (sin texto adicional) donde cada elemento tiene esta estructura exacta:
{
  "productCode": "<código corto del producto tal como aparece en la planilla, ej. B06>",
  "date": "<fecha del conteo en formato YYYY-MM-DD>",
  "count": <número entero de unidades contadas>
}

Reglas:
- Incluye solo filas donde el código, la fecha y el conteo sean legibles.
- No inventes códigos ni fechas: si una celda es ilegible, omite esa fila.
- count es un entero no negativo.`
)

// GeminiService implementa la extracción de conteos desde fotos de
// planillas llamando a Gemini con la imagen inline.
type GeminiService struct {
	apiKey     string
	model      string
	baseURL    string // formato con %s para modelo y api key
	httpClient *http.Client
	log        *logger.Logger
}

// NewGeminiService construye el adaptador. model suele ser "gemini-2.5-flash".
func NewGeminiService(apiKey, model string, log *logger.Logger) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		model:   model,
		baseURL: geminiBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // las imágenes tardan más que el texto
		},
		log: log,
	}
}

// ── Estructuras internas para la API de Gemini ────────────────────────────────

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  genConfig       `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role,omitempty"`
}

type geminiPart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *geminiBlobPart `json:"inline_data,omitempty"`
}

type geminiBlobPart struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type genConfig struct {
	ResponseMIMEType string  `json:"responseMimeType"`
	Temperature      float32 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// extractedItemPayload fila tal como la devuelve el modelo. Count viaja
// como json.Number porque el modelo a veces lo cita como string.
type extractedItemPayload struct {
	ProductCode string      `json:"productCode"`
	Date        string      `json:"date"`
	Count       json.Number `json:"count"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// ExtractInventory envía la imagen y devuelve las tripletas legibles. Los
// ítems malformados del arreglo se descartan uno a uno; solo un fallo de la
// llamada completa (o un cuerpo que no es un arreglo JSON) es error.
func (s *GeminiService) ExtractInventory(ctx context.Context, imageBase64, mimeType string) ([]ports.ExtractionRow, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: GEMINI_API_KEY no configurado")
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	payload := geminiRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: extractionPrompt}},
		},
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: "Extrae los conteos de esta planilla."},
					{InlineData: &geminiBlobPart{MIMEType: mimeType, Data: imageBase64}},
				},
			},
		},
		GenerationConfig: genConfig{
			ResponseMIMEType: "application/json",
			Temperature:      0.1, // transcripción, no creatividad
			MaxOutputTokens:  4096,
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	url := fmt.Sprintf(s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp geminiResponse
		if jsonErr := json.Unmarshal(rawBody, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, fmt.Errorf("AI: Gemini error %d: %s", errResp.Error.Code, errResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Gemini HTTP %d", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(rawBody, &gemResp); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Gemini: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("AI: Gemini devolvió respuesta vacía")
	}

	rawJSON := strings.TrimSpace(gemResp.Candidates[0].Content.Parts[0].Text)

	var items []extractedItemPayload
	if err := json.Unmarshal([]byte(rawJSON), &items); err != nil {
		return nil, fmt.Errorf("AI: respuesta del modelo no es un arreglo JSON válido: %w", err)
	}

	rows := make([]ports.ExtractionRow, 0, len(items))
	descartados := 0
	for _, item := range items {
		if item.ProductCode == "" || item.Date == "" {
			descartados++
			continue
		}
		count, err := item.Count.Int64()
		if err != nil || count < 0 {
			descartados++
			continue
		}
		rows = append(rows, ports.ExtractionRow{
			ProductCode: item.ProductCode,
			Date:        item.Date,
			Count:       int(count),
		})
	}
	if descartados > 0 {
		s.log.Warn().Int("descartados", descartados).Msg("ítems de extracción malformados omitidos")
	}
	return rows, nil
}
