package directory

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"findoc_service/internal/domain/entities"
	"findoc_service/internal/infrastructure/httpjson"
	"findoc_service/internal/infrastructure/logger"
	"findoc_service/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

type clientResponse struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// HTTPOrderDirectory reads client details of a service order from the order service.
// An unknown order yields an empty snapshot so the operator-supplied fields stand alone.
type HTTPOrderDirectory struct {
	client *httpjson.Client
	log    zerolog.Logger
}

var _ interfaces.IOrderDirectory = (*HTTPOrderDirectory)(nil)

func NewHTTPOrderDirectory(baseURL string, timeout time.Duration) *HTTPOrderDirectory {
	return &HTTPOrderDirectory{
		client: httpjson.New(baseURL, timeout),
		log:    logger.WithComponent("order-directory"),
	}
}

func (d *HTTPOrderDirectory) GetClientSnapshot(ctx context.Context, orderRef string) (entities.ClientSnapshot, error) {
	var out clientResponse
	err := d.client.Do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderRef)+"/client", nil, nil, &out)

	var se *httpjson.StatusError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		d.log.Warn().Str("order_ref", orderRef).Msg("order not found in directory")
		return entities.ClientSnapshot{}, nil
	}
	if err != nil {
		d.log.Error().Err(err).Str("order_ref", orderRef).Msg("directory lookup failed")
		return entities.ClientSnapshot{}, err
	}
	return entities.ClientSnapshot{Name: out.Name, Email: out.Email, Phone: out.Phone, Address: out.Address}, nil
}

// New returns nil when no directory is configured; the use cases then rely on the input alone.
func New(baseURL string, timeout time.Duration) interfaces.IOrderDirectory {
	if baseURL == "" {
		return nil
	}
	return NewHTTPOrderDirectory(baseURL, timeout)
}
