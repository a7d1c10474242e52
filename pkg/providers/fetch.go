package providers

import (
	"context"
	"io"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/segmentio/encoding/json"
)

// maxBodySize bounds how much of a provider response is read.
const maxBodySize = 8 << 20

// FetchJSON GETs url and decodes the JSON body into dst. Every failure is an
// *Error tagged with provider: transport failures carry status 0, non-2xx
// responses carry their status, and undecodable bodies wrap
// ErrMalformedResponse.
func FetchJSON(ctx context.Context, client *http.Client, provider, url string, header http.Header, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &Error{Provider: provider, Err: errors.Wrap(err, "failed to create request")}
	}
	req.Header.Set("Accept", "application/json")
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return &Error{Provider: provider, Err: errors.Wrap(err, "request failed")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return &Error{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Err:        errors.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Provider: provider, StatusCode: resp.StatusCode, Err: errors.Wrap(err, "failed to read response")}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		// Often an HTML error page served with a 200.
		return &Error{
			Provider:   provider,
			StatusCode: resp.StatusCode,
			Err:        errors.Wrapf(ErrMalformedResponse, "%s: %v", mimetype.Detect(body).String(), err),
		}
	}
	return nil
}
