package prefstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/internal/prefs"
)

const maxResponseSize = 64 << 10

// HTTPRemote submits records to the persistence endpoint of the host.
type HTTPRemote struct {
	// BaseURL is the origin of the host, without a trailing slash.
	BaseURL string
	// Token is the anti-forgery token the host issued for this session.
	Token string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

// Save posts r and returns the record the host stored.
func (h *HTTPRemote) Save(ctx context.Context, r prefs.Record) (prefs.Record, error) {
	body, err := json.Marshal(map[string]prefs.Record{"settings": r})
	if err != nil {
		return prefs.Record{}, err
	}

	env, err := h.post(ctx, prefs.SettingsPath, body)
	if err != nil {
		return prefs.Record{}, err
	}

	p, err := prefs.Decode(env.Data)
	if err != nil {
		return prefs.Record{}, err
	}

	return p.Merge(), nil
}

// Clear asks the host to delete the stored record.
func (h *HTTPRemote) Clear(ctx context.Context) error {
	_, err := h.post(ctx, prefs.ResetPath, []byte("{}"))

	return err
}

func (h *HTTPRemote) post(ctx context.Context, path string, body []byte) (prefs.Envelope, error) {
	var env prefs.Envelope

	url := strings.TrimSuffix(h.BaseURL, "/") + path

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return env, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(prefs.TokenHeader, h.Token)

	resp, err := h.client().Do(req)
	if err != nil {
		return env, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return env, err
	}

	if resp.StatusCode != http.StatusOK {
		return env, fmt.Errorf("%w: %s %s", ErrRejected, path, resp.Status)
	}

	if err = json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("%w: %w", prefs.ErrMalformed, err)
	}

	if !env.Success {
		return env, fmt.Errorf("%w: %s", ErrRejected, string(env.Data))
	}

	return env, nil
}

func (h *HTTPRemote) client() *http.Client {
	if h.Client != nil {
		return h.Client
	}

	return http.DefaultClient
}
