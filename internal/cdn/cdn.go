package cdn

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/upasthiti/admin-console/internal/models"
)

var ErrNoURL = errors.New("cdn: upload response has no secure_url")

// Signer issues upload credentials for the image host. Signatures are the
// hex SHA-1 of the sorted "k=v" parameters joined by "&", followed by the
// API secret.
type Signer struct {
	apiKey    string
	apiSecret string
	now       func() time.Time
}

func NewSigner(apiKey, apiSecret string) *Signer {
	return &Signer{apiKey: apiKey, apiSecret: apiSecret, now: time.Now}
}

func (s *Signer) Sign(folder string) models.UploadCredential {
	ts := s.now().Unix()
	params := map[string]string{"timestamp": strconv.FormatInt(ts, 10)}
	if folder != "" {
		params["folder"] = folder
	}
	return models.UploadCredential{
		Timestamp: ts,
		Signature: signParams(params, s.apiSecret),
		APIKey:    s.apiKey,
		Folder:    folder,
	}
}

func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}
	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

// Uploader pushes images to the host with a previously issued credential.
type Uploader struct {
	endpoint string
	http     *http.Client
}

func NewUploader(baseURL, cloudName string, hc *http.Client) *Uploader {
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Uploader{
		endpoint: strings.TrimRight(baseURL, "/") + "/" + cloudName + "/image/upload",
		http:     hc,
	}
}

// Upload sends the image and returns its public HTTPS URL.
func (u *Uploader) Upload(ctx context.Context, cred models.UploadCredential, filename string, image io.Reader) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, image); err != nil {
		return "", fmt.Errorf("cdn: read image: %w", err)
	}
	fields := [][2]string{
		{"api_key", cred.APIKey},
		{"timestamp", strconv.FormatInt(cred.Timestamp, 10)},
		{"signature", cred.Signature},
		{"folder", cred.Folder},
	}
	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return "", err
		}
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.endpoint, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("cdn: upload: %w", err)
	}
	defer resp.Body.Close()

	var out struct {
		SecureURL string `json:"secure_url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil && resp.StatusCode < 300 {
		return "", fmt.Errorf("cdn: decode: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if out.Error.Message != "" {
			return "", fmt.Errorf("cdn: upload rejected (%d): %s", resp.StatusCode, out.Error.Message)
		}
		return "", fmt.Errorf("cdn: upload rejected (%d)", resp.StatusCode)
	}
	if out.SecureURL == "" {
		return "", ErrNoURL
	}
	return out.SecureURL, nil
}
