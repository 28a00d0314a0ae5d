package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// API is the HTTP Syncer talking to the storefront backend. It is
// authenticated whenever a session token has been set.
type API struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewAPI(baseURL string) *API {
	return &API{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs (or, with "", clears) the session token.
func (a *API) SetToken(token string) {
	a.mu.Lock()
	a.token = token
	a.mu.Unlock()
}

func (a *API) Authenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token != ""
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func (a *API) do(ctx context.Context, method, path string, body any, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	a.mu.RLock()
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	a.mu.RUnlock()

	resp, err := a.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: status %d: %w", method, path, resp.StatusCode, err)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		return fmt.Errorf("%s %s: %s", method, path, msg)
	}
	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

// serverProduct is the wire shape of a product; translation into the flat
// client Product defaults missing numbers to 0 and missing text to "".
type serverProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"originalPrice"`
	Images        []string `json:"images"`
	Category      string   `json:"category"`
	Rating        float64  `json:"rating"`
	InStock       bool     `json:"inStock"`
}

func (sp serverProduct) toProduct() Product {
	image := ""
	if len(sp.Images) > 0 {
		image = sp.Images[0]
	}
	return Product{
		Ref:             ParseRef(sp.ID),
		Name:            sp.Name,
		Image:           image,
		Category:        sp.Category,
		DiscountedPrice: sp.Price,
		OriginalPrice:   sp.OriginalPrice,
		Rating:          sp.Rating,
		InStock:         sp.InStock,
	}
}

func (a *API) FetchCart(ctx context.Context) ([]CartItem, error) {
	var data struct {
		Cart []struct {
			Product  serverProduct `json:"product"`
			Quantity int           `json:"quantity"`
		} `json:"cart"`
	}
	if err := a.do(ctx, http.MethodGet, "/cart", nil, &data); err != nil {
		return nil, err
	}
	items := make([]CartItem, 0, len(data.Cart))
	for _, entry := range data.Cart {
		items = append(items, CartItem{Product: entry.Product.toProduct(), Quantity: entry.Quantity})
	}
	return items, nil
}

func (a *API) AddToCart(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return a.do(ctx, http.MethodPost, "/cart", body, nil)
}

func (a *API) UpdateCartItem(ctx context.Context, productID string, quantity int) error {
	body := map[string]any{"quantity": quantity}
	return a.do(ctx, http.MethodPut, "/cart/"+productID, body, nil)
}

func (a *API) RemoveFromCart(ctx context.Context, productID string) error {
	return a.do(ctx, http.MethodDelete, "/cart/"+productID, nil, nil)
}

func (a *API) ClearCart(ctx context.Context) error {
	return a.do(ctx, http.MethodDelete, "/cart", nil, nil)
}

func (a *API) FetchWishlist(ctx context.Context) ([]Product, error) {
	var data struct {
		Wishlist []serverProduct `json:"wishlist"`
	}
	if err := a.do(ctx, http.MethodGet, "/wishlist", nil, &data); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(data.Wishlist))
	for _, sp := range data.Wishlist {
		products = append(products, sp.toProduct())
	}
	return products, nil
}

func (a *API) AddToWishlist(ctx context.Context, productID string) error {
	body := map[string]any{"productId": productID}
	return a.do(ctx, http.MethodPost, "/wishlist", body, nil)
}

func (a *API) RemoveFromWishlist(ctx context.Context, productID string) error {
	return a.do(ctx, http.MethodDelete, "/wishlist/"+productID, nil, nil)
}
