// Package backend es el adaptador HTTP contra el remote store REST que
// custodia el estado durable (catálogo, cuentas, entradas, analítica).
// Cada payload entrante se valida en la frontera: un documento con forma
// inesperada se rechaza con domain.ErrDecoding en lugar de dejar que datos
// sin validar lleguen al dominio.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/omnistock-hub/internal/application/dto"
	"github.com/jhoicas/omnistock-hub/internal/domain"
	"github.com/jhoicas/omnistock-hub/internal/domain/entity"
	"github.com/jhoicas/omnistock-hub/pkg/logger"
)

const maxResponseBytes = 4 << 20 // respuestas mayores son un backend roto

// Client implementa los puertos remotos (auth, entradas, catálogo, cuentas
// y analítica) sobre la API REST del remote store.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *logger.Logger
}

// NewClient construye el adaptador.
func NewClient(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		log:      log,
	}
}

// --- payloads de la API remota ---

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponsePayload struct {
	Token string      `json:"token" validate:"required"`
	User  userPayload `json:"user" validate:"required"`
}

type userPayload struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role" validate:"required,oneof=ADMIN STAFF"`
}

type productPayload struct {
	ID       string `json:"id" validate:"required"`
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Unit     string `json:"unit"`
	Capacity int    `json:"capacity" validate:"min=0"`
	Category string `json:"category"`
}

type categoryPayload struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type entryPayload struct {
	ID        string `json:"id" validate:"required"`
	ProductID string `json:"productId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	Count     int    `json:"count" validate:"min=0"`
	UserID    string `json:"userId"`
}

// --- transporte ---

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote store: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("remote store: leyendo respuesta: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return domain.ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case resp.StatusCode >= 400:
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("error del remote store")
		return fmt.Errorf("remote store: %s %s devolvió %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecoding, err)
	}
	return nil
}

func (c *Client) checkPayload(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDecoding, err)
	}
	return nil
}

// --- AuthRemote ---

// Login verifica credenciales y devuelve el usuario más su bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (entity.User, string, error) {
	var payload loginResponsePayload
	err := c.do(ctx, http.MethodPost, "/auth/login", "", loginPayload{Email: email, Password: password}, &payload)
	if err != nil {
		return entity.User{}, "", err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.User{}, "", err
	}
	return toUser(payload.User), payload.Token, nil
}

// --- EntryRemote ---

// FetchEntries trae el conjunto autoritativo completo de entradas.
func (c *Client) FetchEntries(ctx context.Context, token string) ([]entity.InventoryEntry, error) {
	var payload []entryPayload
	if err := c.do(ctx, http.MethodGet, "/entries", token, nil, &payload); err != nil {
		return nil, err
	}
	entries := make([]entity.InventoryEntry, 0, len(payload))
	for _, e := range payload {
		if err := c.checkPayload(e); err != nil {
			return nil, err
		}
		entries = append(entries, entity.InventoryEntry{
			ID:        e.ID,
			ProductID: e.ProductID,
			Date:      e.Date,
			Count:     e.Count,
			UserID:    e.UserID,
		})
	}
	return entries, nil
}

// PushEntries envía el Entry Store entero; el remote store reemplaza su
// conjunto con este (no es un diff).
func (c *Client) PushEntries(ctx context.Context, token string, entries []entity.InventoryEntry) error {
	payload := make([]entryPayload, 0, len(entries))
	for _, e := range entries {
		payload = append(payload, entryPayload{
			ID:        e.ID,
			ProductID: e.ProductID,
			Date:      e.Date,
			Count:     e.Count,
			UserID:    e.UserID,
		})
	}
	return c.do(ctx, http.MethodPost, "/entries/bulk", token, map[string]any{"entries": payload}, nil)
}

// --- CatalogRemote ---

// FetchProducts trae el catálogo completo.
func (c *Client) FetchProducts(ctx context.Context, token string) ([]entity.Product, error) {
	var payload []productPayload
	if err := c.do(ctx, http.MethodGet, "/products", token, nil, &payload); err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(payload))
	for _, p := range payload {
		if err := c.checkPayload(p); err != nil {
			return nil, err
		}
		products = append(products, toProduct(p))
	}
	return products, nil
}

// CreateProduct da de alta un producto y devuelve la versión con ID asignado.
func (c *Client) CreateProduct(ctx context.Context, token string, p entity.Product) (entity.Product, error) {
	var payload productPayload
	body := map[string]any{"code": p.Code, "name": p.Name, "unit": p.Unit, "capacity": p.Capacity, "category": p.Category}
	if err := c.do(ctx, http.MethodPost, "/products", token, body, &payload); err != nil {
		return entity.Product{}, err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.Product{}, err
	}
	return toProduct(payload), nil
}

// UpdateProduct reemplaza los campos del producto.
func (c *Client) UpdateProduct(ctx context.Context, token string, p entity.Product) (entity.Product, error) {
	var payload productPayload
	body := map[string]any{"code": p.Code, "name": p.Name, "unit": p.Unit, "capacity": p.Capacity, "category": p.Category}
	if err := c.do(ctx, http.MethodPut, "/products/"+p.ID, token, body, &payload); err != nil {
		return entity.Product{}, err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.Product{}, err
	}
	return toProduct(payload), nil
}

// DeleteProduct elimina el producto del catálogo.
func (c *Client) DeleteProduct(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/products/"+id, token, nil, nil)
}

// FetchCategories trae las categorías registradas.
func (c *Client) FetchCategories(ctx context.Context, token string) ([]entity.Category, error) {
	var payload []categoryPayload
	if err := c.do(ctx, http.MethodGet, "/categories", token, nil, &payload); err != nil {
		return nil, err
	}
	categories := make([]entity.Category, 0, len(payload))
	for _, cat := range payload {
		if err := c.checkPayload(cat); err != nil {
			return nil, err
		}
		categories = append(categories, entity.Category{ID: cat.ID, Name: cat.Name, Description: cat.Description})
	}
	return categories, nil
}

// CreateCategory da de alta una categoría.
func (c *Client) CreateCategory(ctx context.Context, token string, cat entity.Category) (entity.Category, error) {
	var payload categoryPayload
	body := map[string]any{"name": cat.Name, "description": cat.Description}
	if err := c.do(ctx, http.MethodPost, "/categories", token, body, &payload); err != nil {
		return entity.Category{}, err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.Category{}, err
	}
	return entity.Category{ID: payload.ID, Name: payload.Name, Description: payload.Description}, nil
}

// DeleteCategory elimina la categoría.
func (c *Client) DeleteCategory(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/categories/"+id, token, nil, nil)
}

// --- UserRemote ---

// FetchUsers trae las cuentas registradas.
func (c *Client) FetchUsers(ctx context.Context, token string) ([]entity.User, error) {
	var payload []userPayload
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &payload); err != nil {
		return nil, err
	}
	users := make([]entity.User, 0, len(payload))
	for _, u := range payload {
		if err := c.checkPayload(u); err != nil {
			return nil, err
		}
		users = append(users, toUser(u))
	}
	return users, nil
}

// CreateUser da de alta una cuenta; la contraseña viaja solo en el cuerpo.
func (c *Client) CreateUser(ctx context.Context, token string, u entity.User, password string) (entity.User, error) {
	var payload userPayload
	body := map[string]any{"name": u.Name, "email": u.Email, "role": u.Role, "password": password}
	if err := c.do(ctx, http.MethodPost, "/users", token, body, &payload); err != nil {
		return entity.User{}, err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.User{}, err
	}
	return toUser(payload), nil
}

// UpdateUser actualiza la cuenta; password vacío conserva la credencial.
func (c *Client) UpdateUser(ctx context.Context, token string, u entity.User, password string) (entity.User, error) {
	body := map[string]any{"name": u.Name, "email": u.Email, "role": u.Role}
	if password != "" {
		body["password"] = password
	}
	var payload userPayload
	if err := c.do(ctx, http.MethodPut, "/users/"+u.ID, token, body, &payload); err != nil {
		return entity.User{}, err
	}
	if err := c.checkPayload(payload); err != nil {
		return entity.User{}, err
	}
	return toUser(payload), nil
}

// DeleteUser elimina la cuenta.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/users/"+id, token, nil, nil)
}

// --- AnalyticsRemote ---

// FetchAnalytics trae el documento agregado del tablero.
func (c *Client) FetchAnalytics(ctx context.Context, token string) (*dto.DashboardResponse, error) {
	var payload dto.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/analytics/dashboard", token, nil, &payload); err != nil {
		return nil, err
	}
	if err := c.checkPayload(payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func toUser(u userPayload) entity.User {
	return entity.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toProduct(p productPayload) entity.Product {
	return entity.Product{
		ID:       p.ID,
		Code:     p.Code,
		Name:     p.Name,
		Unit:     p.Unit,
		Capacity: p.Capacity,
		Category: p.Category,
	}
}
