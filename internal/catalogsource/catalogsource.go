// Package catalogsource loads the category catalog from a local file or an
// http(s) URL.
package catalogsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"niche/pkg/categorizer"
)

const (
	defaultTimeout = 15 * time.Second
	// maxCatalogBytes bounds how much of a remote catalog is read.
	maxCatalogBytes = 8 << 20
)

// Loader reads and parses a catalog from a location.
type Loader interface {
	Load(ctx context.Context, location string) (*categorizer.Catalog, error)
}

// New creates the default loader.
func New() Loader {
	return &defaultLoader{client: &http.Client{Timeout: defaultTimeout}}
}

// NewWithClient creates a loader that fetches URLs with client.
func NewWithClient(client *http.Client) Loader {
	return &defaultLoader{client: client}
}

type defaultLoader struct {
	client *http.Client
}

// Load implements the Loader interface.
func (l *defaultLoader) Load(ctx context.Context, location string) (*categorizer.Catalog, error) {
	if location == "" {
		return nil, errors.New("catalog location is empty")
	}

	var (
		data []byte
		err  error
	)
	if u, urlErr := url.Parse(location); urlErr == nil && (u.Scheme == "http" || u.Scheme == "https") {
		data, err = l.fetch(ctx, location)
	} else {
		data, err = readFile(location)
	}
	if err != nil {
		return nil, err
	}

	catalog, err := categorizer.ParseCatalog(Clean(data, location))
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", location, err)
	}
	log.WithFields(log.Fields{"source": location, "categories": catalog.Len()}).Info("catalog loaded")
	return catalog, nil
}

func readFile(path string) ([]byte, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat catalog '%s': %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("catalog '%s' is a directory, not a file", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return nil, fmt.Errorf("permission denied reading catalog '%s': %w", path, err)
		}
		return nil, fmt.Errorf("failed to read catalog '%s': %w", path, err)
	}
	return data, nil
}

func (l *defaultLoader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL '%s': %w", location, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL '%s': %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		hint, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("failed to fetch URL '%s': status code %d %s - Body Hint: %s",
			location, resp.StatusCode, http.StatusText(resp.StatusCode), string(hint))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from URL '%s': %w", location, err)
	}
	if len(data) > maxCatalogBytes {
		return nil, fmt.Errorf("catalog at '%s' exceeds %d bytes", location, maxCatalogBytes)
	}
	return data, nil
}
