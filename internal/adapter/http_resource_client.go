package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/flicsl/jsonsync/internal/config"
	"github.com/flicsl/jsonsync/internal/logger"
	"github.com/flicsl/jsonsync/internal/utils"
	"github.com/flicsl/jsonsync/models"
	"github.com/go-resty/resty/v2"
)

type httpResourceClient struct {
	client *utils.HTTPClient
	path   string

	logger *logger.Logger
}

// NewHTTPResourceClient constructs an HTTP/REST implementation of
// [ResourceClient] bound to basePath under adapterCfg.HTTPAddress.
//
// The base URL is normalised (scheme defaulting, trailing slash trimming)
// and every request is bounded by adapterCfg.RequestTimeout when positive.
//
// Returns an error wrapping [ErrConfiguration] if basePath is blank or the
// address cannot be parsed as a valid URL.
func NewHTTPResourceClient(adapterCfg config.Adapter, basePath string, log *logger.Logger) (ResourceClient, error) {
	path := strings.Trim(strings.TrimSpace(basePath), "/")
	if path == "" {
		return nil, fmt.Errorf("%w: empty resource path", ErrConfiguration)
	}

	client, err := utils.NewHTTPClientFor(adapterCfg.HTTPAddress, adapterCfg.RequestTimeout)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid adapter http address: %w", ErrConfiguration, err)
	}

	if log == nil {
		log = logger.Nop()
	}

	return &httpResourceClient{
		client: client,
		path:   "/" + path,
		logger: log.WithResource("/" + path),
	}, nil
}

// Path implements [ResourceClient].
func (c *httpResourceClient) Path() string {
	return c.path
}

// Find implements [ResourceClient]. It sends GET {path}?q=&_start=&_limit=
// followed by the remaining filters. The total count is read from the
// X-Total-Count header, or from the "total" field when the backend wraps
// the page as {"items": [...], "total": n}.
func (c *httpResourceClient) Find(ctx context.Context, query models.Query, opts models.PageOptions) (models.PageResponse, error) {
	opts = opts.WithDefaults()

	params := url.Values{}
	if q, ok := query.TextSearch(); ok {
		params.Set("q", q)
	}
	params.Set("_start", strconv.Itoa(opts.Offset()))
	params.Set("_limit", strconv.Itoa(opts.PageSize))
	for k, v := range query.Filters() {
		params.Set(k, v)
	}

	resp, err := c.execute(c.request(ctx).SetQueryParamsFromValues(params), http.MethodGet, c.path, "find")
	if err != nil {
		return models.PageResponse{}, err
	}

	page, err := decodePage(resp.Body())
	if err != nil {
		return models.PageResponse{}, &RequestError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%w: %w", ErrDecodeResponse, err),
		}
	}

	page.Header = resp.Header()
	if raw := resp.Header().Get(utils.TotalCountHeader); raw != "" {
		total, convErr := strconv.Atoi(strings.TrimSpace(raw))
		if convErr != nil {
			c.logger.Warn().Str("value", raw).Msg("ignoring malformed total count header")
		} else {
			page.TotalCount = total
			page.HasTotalCount = true
		}
	}

	return page, nil
}

// FindOne implements [ResourceClient]. It sends GET {path}/{id}.
func (c *httpResourceClient) FindOne(ctx context.Context, id string) (models.Item, error) {
	itemURL, err := c.itemURL(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.execute(c.request(ctx), http.MethodGet, itemURL, "find one")
	if err != nil {
		return nil, err
	}

	return decodeItem(resp)
}

// Put implements [ResourceClient]. It sends PUT {path} with item as the JSON
// body. An empty success body returns item unchanged.
func (c *httpResourceClient) Put(ctx context.Context, item models.Item) (models.Item, error) {
	req := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(item)

	resp, err := c.execute(req, http.MethodPut, c.path, "put")
	if err != nil {
		return nil, err
	}

	// 204 No Content: the backend stored the item as sent
	if len(bytes.TrimSpace(resp.Body())) == 0 {
		return item, nil
	}

	return decodeItem(resp)
}

// Destroy implements [ResourceClient]. It sends DELETE {path}/{id}. An empty
// success body yields an empty acknowledgement.
func (c *httpResourceClient) Destroy(ctx context.Context, id string) (models.Ack, error) {
	itemURL, err := c.itemURL(id)
	if err != nil {
		return nil, err
	}

	resp, err := c.execute(c.request(ctx), http.MethodDelete, itemURL, "destroy")
	if err != nil {
		return nil, err
	}

	ack := models.Ack{}
	if len(bytes.TrimSpace(resp.Body())) == 0 {
		return ack, nil
	}
	if err = json.Unmarshal(resp.Body(), &ack); err != nil {
		return nil, &RequestError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%w: %w", ErrDecodeResponse, err),
		}
	}

	return ack, nil
}

func (c *httpResourceClient) itemURL(id string) (string, error) {
	if strings.TrimSpace(id) == "" {
		return "", &RequestError{Err: ErrEmptyID}
	}
	return c.path + "/" + url.PathEscape(id), nil
}

func (c *httpResourceClient) request(ctx context.Context) *resty.Request {
	req := c.client.R().SetContext(ctx)
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		req.SetHeader(utils.TraceIDHeader, traceID)
	}
	return req
}

func (c *httpResourceClient) execute(req *resty.Request, method, target, op string) (*resty.Response, error) {
	resp, err := req.Execute(method, target)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", op).Str("method", method).Msg("request failed")
		return nil, &RequestError{Err: fmt.Errorf("%s request: %w", op, err)}
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("url", resp.Request.URL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Send()

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp, nil
}

type pageEnvelope struct {
	Items []models.Item `json:"items"`
	Total *int          `json:"total"`
}

// decodePage accepts a bare JSON array or an {"items", "total"} envelope.
func decodePage(body []byte) (models.PageResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return models.PageResponse{Items: []models.Item{}}, nil
	}

	if trimmed[0] == '{' {
		var envelope pageEnvelope
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return models.PageResponse{}, err
		}
		page := models.PageResponse{Items: envelope.Items}
		if page.Items == nil {
			page.Items = []models.Item{}
		}
		if envelope.Total != nil {
			page.TotalCount = *envelope.Total
			page.HasTotalCount = true
		}
		return page, nil
	}

	var items []models.Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return models.PageResponse{}, err
	}
	if items == nil {
		items = []models.Item{}
	}

	return models.PageResponse{Items: items}, nil
}

func decodeItem(resp *resty.Response) (models.Item, error) {
	var item models.Item
	if err := json.Unmarshal(resp.Body(), &item); err != nil {
		return nil, &RequestError{
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("%w: %w", ErrDecodeResponse, err),
		}
	}
	return item, nil
}
