package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/upasthiti/admin-console/internal/models"
)

// CSVFileField is the multipart field name the backend reads the file from.
const CSVFileField = "csvFile"

// UploadFaculty forwards a faculty CSV for bulk import. A partially failed
// import is still a successful call; check the returned stats.
func (c *Client) UploadFaculty(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error) {
	return c.uploadRoster(ctx, "POST /api/admin/faculties/upload", "/api/admin/faculties/upload", filename, csv)
}

func (c *Client) UploadStudents(ctx context.Context, filename string, csv io.Reader) (*models.UploadResult, error) {
	return c.uploadRoster(ctx, "POST /api/admin/students/upload", "/api/admin/students/upload", filename, csv)
}

func (c *Client) uploadRoster(ctx context.Context, endpoint, path, filename string, csv io.Reader) (*models.UploadResult, error) {
	req, err := c.multipartRequest(ctx, path, filename, csv, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	var res models.UploadResult
	if err := c.do(req, endpoint, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UploadTimetables forwards a timetable CSV valid for [validFrom, validUntil]
// (YYYY-MM-DD) and returns the timetables the backend created.
func (c *Client) UploadTimetables(ctx context.Context, filename string, csv io.Reader, validFrom, validUntil string) ([]models.TimetableDocument, error) {
	const endpoint = "POST /api/admin/timetables/upload"
	fields := map[string]string{"validFrom": validFrom, "validUntil": validUntil}
	req, err := c.multipartRequest(ctx, "/api/admin/timetables/upload", filename, csv, fields)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	var env listEnvelope[models.TimetableDocument]
	if err := c.do(req, endpoint, &env); err != nil {
		return nil, err
	}
	return keepValid(c, endpoint, env.Data), nil
}

func (c *Client) multipartRequest(ctx context.Context, path, filename string, file io.Reader, fields map[string]string) (*http.Request, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(CSVFileField, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req, nil
}
