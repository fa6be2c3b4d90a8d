package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrRemoteStatus is wrapped when the endpoint answers with a non-2xx status.
var ErrRemoteStatus = errors.New("remote translation: unexpected status")

type remoteRequest struct {
	Text     string `json:"text"`
	Audience string `json:"audience"`
	Tone     string `json:"tone"`
}

// HTTPRemote calls a /translate endpoint over HTTP.
type HTTPRemote struct {
	Endpoint string
	Client   *http.Client
}

// NewHTTPRemote uses http.DefaultClient when client is nil, which means no
// request timeout beyond what ctx imposes.
func NewHTTPRemote(endpoint string, client *http.Client) (*HTTPRemote, error) {
	if endpoint == "" {
		return nil, errors.New("remote endpoint is required")
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPRemote{Endpoint: endpoint, Client: client}, nil
}

func (r *HTTPRemote) FetchRemoteTranslation(ctx context.Context, text string, opts Options) (RemoteResult, error) {
	body, err := json.Marshal(remoteRequest{Text: text, Audience: opts.Audience, Tone: opts.Tone})
	if err != nil {
		return RemoteResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return RemoteResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return RemoteResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return RemoteResult{}, fmt.Errorf("%w %d: %s", ErrRemoteStatus, resp.StatusCode, bytes.TrimSpace(snippet))
	}

	var data *RemoteResult
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return RemoteResult{}, fmt.Errorf("decode remote translation: %w", err)
	}
	if data == nil {
		return RemoteResult{}, errors.New("decode remote translation: empty body")
	}
	return *data, nil
}
