package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wricardo/mcp-training/celltower/game/service"
)

// maxRemoteBody caps how much of a remote response is read
const maxRemoteBody = 8 << 20

// RemoteSource fetches published puzzles and the dictionary over HTTP
type RemoteSource struct {
	baseURL string
	client  *http.Client
}

// NewRemoteSource creates a source rooted at baseURL
func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// FetchPuzzle downloads {base}/puzzles/{id}.json
func (r *RemoteSource) FetchPuzzle(ctx context.Context, id string) ([]byte, error) {
	return r.get(ctx, "/puzzles/"+url.PathEscape(id)+".json")
}

// FetchDictionary downloads {base}/assets/words.json
func (r *RemoteSource) FetchDictionary(ctx context.Context) ([]byte, error) {
	return r.get(ctx, "/assets/"+DictionaryFilename)
}

func (r *RemoteSource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("remote %s: %w", path, service.ErrPuzzleNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("remote %s returned %s", path, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
