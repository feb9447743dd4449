package rentobj

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/vmkteam/embedlog"
)

// Query parameter names of the backend GET endpoints.
const (
	userIDParam     = "userId"
	objectNameParam = "objectName"
)

// Client is a typed wrapper around the rent-object storage backend.
// It holds no state besides the connection settings; the backend is
// the single source of truth for persisted objects and records.
type Client struct {
	baseURL string
	http    *http.Client
	logger  embedlog.Logger
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string, logger embedlog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

// AddObject creates a new object for the user.
func (c *Client) AddObject(ctx context.Context, userID int64, obj RentObject) error {
	body := map[string]any{"user_id": userID, "object": obj}
	return c.post(ctx, "/addObject", body)
}

// DeleteObject deletes the named object.
func (c *Client) DeleteObject(ctx context.Context, userID int64, objectName string) error {
	body := map[string]any{"user_id": userID, "object_name": objectName}
	return c.post(ctx, "/deleteObject", body)
}

// UpdateObject applies a partial update to the named object.
func (c *Client) UpdateObject(ctx context.Context, userID int64, objectName string, update UpdateRentObjectInput) error {
	body := map[string]any{"user_id": userID, "object_name": objectName, "update_input": update}
	return c.post(ctx, "/updateObject", body)
}

// ObjectByName fetches one object with its records.
func (c *Client) ObjectByName(ctx context.Context, userID int64, objectName string) (*RentObject, error) {
	params := url.Values{
		objectNameParam: {objectName},
		userIDParam:     {strconv.FormatInt(userID, 10)},
	}

	obj := &RentObject{}
	if err := c.get(ctx, "/getObject", params, obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// AllObjects lists every object of the user.
func (c *Client) AllObjects(ctx context.Context, userID int64) ([]RentObject, error) {
	params := url.Values{userIDParam: {strconv.FormatInt(userID, 10)}}

	var objects []RentObject
	if err := c.get(ctx, "/getAll", params, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

// AddRecord appends a record to the named object.
func (c *Client) AddRecord(ctx context.Context, userID int64, objectName string, record Record) error {
	body := map[string]any{"user_id": userID, "object_name": objectName, "record": record}
	return c.post(ctx, "/addRecord", body)
}

// DeleteRecord deletes the record at the given index.
func (c *Client) DeleteRecord(ctx context.Context, userID int64, objectName string, recordIndex int) error {
	body := map[string]any{"user_id": userID, "object_name": objectName, "record_index": recordIndex}
	return c.post(ctx, "/deleteRecord", body)
}

// UpdateRecord applies a partial update to the record at the given index.
func (c *Client) UpdateRecord(ctx context.Context, userID int64, objectName string, recordIndex int, update UpdateRecordInput) error {
	body := map[string]any{
		"user_id":      userID,
		"object_name":  objectName,
		"record_index": recordIndex,
		"update_input": update,
	}
	return c.post(ctx, "/updateRecord", body)
}

// RecordByIndex fetches one record of the named object.
func (c *Client) RecordByIndex(ctx context.Context, userID int64, objectName string, recordIndex int) (*Record, error) {
	params := url.Values{
		"user_id":      {strconv.FormatInt(userID, 10)},
		"object_name":  {objectName},
		"record_index": {strconv.Itoa(recordIndex)},
	}

	rec := &Record{}
	if err := c.get(ctx, "/getRecord", params, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// AllRecords lists the records of the named object in date order.
func (c *Client) AllRecords(ctx context.Context, userID int64, objectName string) ([]Record, error) {
	params := url.Values{
		userIDParam:     {strconv.FormatInt(userID, 10)},
		objectNameParam: {objectName},
	}

	var records []Record
	if err := c.get(ctx, "/getRecords", params, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// ObjectInfo fetches the computed financial report for the named object.
func (c *Client) ObjectInfo(ctx context.Context, userID int64, objectName string) (*RentObjectInfo, error) {
	params := url.Values{
		userIDParam:     {strconv.FormatInt(userID, 10)},
		objectNameParam: {objectName},
	}

	info := &RentObjectInfo{}
	if err := c.get(ctx, "/getObjectInfo", params, info); err != nil {
		return nil, err
	}
	return info, nil
}

func (c *Client) post(ctx context.Context, endpoint string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	text, status, err := c.do(ctx, http.MethodPost, endpoint, nil, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	return classifyStatus(status, text)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	text, status, err := c.do(ctx, http.MethodGet, endpoint, params, nil)
	if err != nil {
		return err
	}
	if err := classifyStatus(status, text); err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(text), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, params url.Values, body io.Reader) (string, int, error) {
	uri := c.baseURL + endpoint
	if len(params) > 0 {
		uri += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, body)
	if err != nil {
		return "", 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	backendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		backendErrors.WithLabelValues(endpoint).Inc()
		c.logger.Error(ctx, "backend request failed", "endpoint", endpoint, "err", err)
		return "", 0, fmt.Errorf("backend request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read %s response: %w", endpoint, err)
	}

	return string(text), resp.StatusCode, nil
}
