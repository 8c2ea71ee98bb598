package misskey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tpc3/MisskeyIntegrate/internal/metrics"
)

const userAgent = "MisskeyIntegrate"

// AdDuration is how long a created advertisement stays active.
const AdDuration = 30 * 24 * time.Hour

// Fixed tiers the admin API expects for ads created by this integration.
const (
	adPriority = "middle"
	adRatio    = 10
)

// StatusError is a non-success reply from the Misskey API. It carries
// everything the chat reply needs to surface the failure.
type StatusError struct {
	StatusCode int
	Status     string // e.g. "500 Internal Server Error"
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("misskey: %s: %s", e.Status, e.Body)
}

// Client talks to one Misskey instance's HTTP API.
type Client struct {
	baseURL string
	token   string
	httpCli *http.Client
}

// NewClient creates a client for the instance at baseURL.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpCli: &http.Client{Timeout: timeout},
	}
}

// DriveFile is the subset of the drive API's file object we use.
type DriveFile struct {
	URL string `json:"url"`
}

// UploadFile submits file bytes to the instance's drive as a multipart form.
func (c *Client) UploadFile(ctx context.Context, folderID, filename string, file []byte) (*DriveFile, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	if err := form.WriteField("i", c.token); err != nil {
		return nil, err
	}
	if err := form.WriteField("folderId", folderID); err != nil {
		return nil, err
	}
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file); err != nil {
		return nil, err
	}
	if err := form.Close(); err != nil {
		return nil, err
	}

	body, err := c.post(ctx, "/api/drive/files/create", form.FormDataContentType(), &buf)
	if err != nil {
		return nil, err
	}

	var uploaded DriveFile
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return nil, fmt.Errorf("decoding drive response: %w", err)
	}
	return &uploaded, nil
}

// Ad describes the advertisement to create. The remaining admin API fields
// are fixed by the integration.
type Ad struct {
	URL      string
	ImageURL string
	Place    string
	Memo     string
}

type adCreateRequest struct {
	I         string `json:"i"`
	URL       string `json:"url"`
	ImageURL  string `json:"imageUrl"`
	Place     string `json:"place"`
	Priority  string `json:"priority"`
	Ratio     int    `json:"ratio"`
	ExpiresAt int64  `json:"expiresAt"`
	StartsAt  int64  `json:"startsAt"`
	DayOfWeek int    `json:"dayOfWeek"`
	Memo      string `json:"memo"`
}

// CreateAd creates an advertisement record starting now and expiring after
// AdDuration. Timestamps are Unix milliseconds, the unit the admin API uses.
func (c *Client) CreateAd(ctx context.Context, ad Ad) error {
	now := time.Now()
	payload, err := json.Marshal(adCreateRequest{
		I:         c.token,
		URL:       ad.URL,
		ImageURL:  ad.ImageURL,
		Place:     ad.Place,
		Priority:  adPriority,
		Ratio:     adRatio,
		ExpiresAt: now.Add(AdDuration).UnixMilli(),
		StartsAt:  now.UnixMilli(),
		DayOfWeek: 0,
		Memo:      ad.Memo,
	})
	if err != nil {
		return err
	}

	_, err = c.post(ctx, "/api/admin/ad/create", "application/json", bytes.NewReader(payload))
	return err
}

// post issues one API call and maps any non-2xx reply to a StatusError.
func (c *Client) post(ctx context.Context, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		metrics.MisskeyRequestsTotal.WithLabelValues(path, "error").Inc()
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.MisskeyRequestsTotal.WithLabelValues(path, "error").Inc()
		return nil, err
	}

	metrics.MisskeyRequestsTotal.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(raw),
		}
	}
	return raw, nil
}
