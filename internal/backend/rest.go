package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const objectMediaType = "application/vnd.pgrst.object+json"

// RESTStore talks to the hosted PostgREST endpoint under /rest/v1.
type RESTStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type RESTConfig struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

func NewRESTStore(cfg RESTConfig) *RESTStore {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &RESTStore{
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: httpClient,
	}
}

func (s *RESTStore) Table(name string) Table {
	return &restTable{store: s, name: name}
}

type restTable struct {
	store *RESTStore
	name  string
}

func (t *restTable) endpoint(params url.Values) string {
	u := fmt.Sprintf("%s/rest/v1/%s", t.store.baseURL, t.name)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func filterParams(q Query, params url.Values) {
	for _, f := range q.Filters {
		params.Add(f.Column, fmt.Sprintf("eq.%v", f.Value))
	}
}

func readParams(q Query) url.Values {
	params := url.Values{}
	columns := "*"
	if len(q.Columns) > 0 {
		columns = strings.Join(q.Columns, ",")
	}
	params.Set("select", columns)
	filterParams(q, params)
	if len(q.Orders) > 0 {
		orders := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			dir := "desc"
			if o.Ascending {
				dir = "asc"
			}
			orders = append(orders, o.Column+"."+dir)
		}
		params.Set("order", strings.Join(orders, ","))
	}
	if q.Max > 0 {
		params.Set("limit", fmt.Sprintf("%d", q.Max))
	}
	return params
}

func (t *restTable) Select(ctx context.Context, q Query, dest any) error {
	return t.store.do(ctx, http.MethodGet, t.endpoint(readParams(q)), nil, false, dest)
}

func (t *restTable) SelectOne(ctx context.Context, q Query, dest any) error {
	return t.store.do(ctx, http.MethodGet, t.endpoint(readParams(q)), nil, true, dest)
}

func (t *restTable) Insert(ctx context.Context, values map[string]any, dest any) error {
	return t.store.do(ctx, http.MethodPost, t.endpoint(url.Values{"select": {"*"}}), values, true, dest)
}

func (t *restTable) Update(ctx context.Context, q Query, values map[string]any, dest any) error {
	params := url.Values{"select": {"*"}}
	filterParams(q, params)
	return t.store.do(ctx, http.MethodPatch, t.endpoint(params), values, true, dest)
}

func (s *RESTStore) do(ctx context.Context, method, reqURL string, body any, single bool, dest any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	bearer := s.apiKey
	if token := AccessToken(ctx); token != "" {
		bearer = token
	}
	req.Header.Set("apikey", s.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if single {
		req.Header.Set("Accept", objectMediaType)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Prefer", "return=representation")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return parseError(resp.StatusCode, payload)
	}

	if dest == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode %s response: %w", req.URL.Path, err)
	}
	return nil
}

func parseError(status int, body []byte) *Error {
	e := &Error{StatusCode: status}
	if !gjson.ValidBytes(body) {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}
	parsed := gjson.ParseBytes(body)
	e.Code = parsed.Get("code").String()
	e.Details = parsed.Get("details").String()
	e.Hint = parsed.Get("hint").String()
	for _, key := range []string{"message", "msg", "error_description", "error"} {
		if v := parsed.Get(key).String(); v != "" {
			e.Message = v
			break
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}
