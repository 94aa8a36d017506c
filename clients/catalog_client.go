package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "github.com/yashrajoria/storefront/common/errors"
	"github.com/yashrajoria/storefront/models"
)

// CatalogClient is the external catalog collaborator: one read returning the
// full product listing, or an error the view surfaces as a failed attempt.
type CatalogClient interface {
	FetchProducts(ctx context.Context) ([]models.Product, error)
}

// HTTPCatalogClient fetches the listing from a fakestoreapi-shaped endpoint.
type HTTPCatalogClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPCatalogClient(baseURL string, timeout time.Duration) *HTTPCatalogClient {
	return &HTTPCatalogClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPCatalogClient) FetchProducts(ctx context.Context) ([]models.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/products", nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCatalogUnavailable, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, apperrors.Wrap(apperrors.ErrCatalogResponse,
			fmt.Errorf("upstream error: status=%d body=%s", resp.StatusCode, string(body)))
	}

	var products []models.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCatalogResponse, err)
	}
	return products, nil
}
