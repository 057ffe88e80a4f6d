// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/giuliopime/crossfade/internal/clients"
	"github.com/giuliopime/crossfade/internal/models"
	"github.com/giuliopime/crossfade/internal/platform"
)

// MockClient is a test double for [clients.Client]
type MockClient struct {
	PlatformValue platform.Platform
	Authorized    bool

	FetchByURLFunc         func(ctx context.Context, rawURL string) (*clients.TrackInfo, error)
	FetchByTitleArtistFunc func(ctx context.Context, title, artistName string) (*clients.TrackInfo, error)

	mu               sync.Mutex
	urlCalls         []string
	titleArtistCalls [][2]string
}

func (m *MockClient) Platform() platform.Platform { return m.PlatformValue }

func (m *MockClient) IsAuthorized() bool { return m.Authorized }

func (m *MockClient) FetchByURL(ctx context.Context, rawURL string) (*clients.TrackInfo, error) {
	m.mu.Lock()
	m.urlCalls = append(m.urlCalls, rawURL)
	m.mu.Unlock()
	if m.FetchByURLFunc != nil {
		return m.FetchByURLFunc(ctx, rawURL)
	}
	return nil, errors.New("FetchByURL not configured")
}

func (m *MockClient) FetchByTitleArtist(ctx context.Context, title, artistName string) (*clients.TrackInfo, error) {
	m.mu.Lock()
	m.titleArtistCalls = append(m.titleArtistCalls, [2]string{title, artistName})
	m.mu.Unlock()
	if m.FetchByTitleArtistFunc != nil {
		return m.FetchByTitleArtistFunc(ctx, title, artistName)
	}
	return nil, errors.New("FetchByTitleArtist not configured")
}

// URLCalls returns every rawURL passed to FetchByURL.
func (m *MockClient) URLCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urlCalls...)
}

// TitleArtistCalls returns every (title, artist) pair passed to FetchByTitleArtist.
func (m *MockClient) TitleArtistCalls() [][2]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][2]string(nil), m.titleArtistCalls...)
}

// MockStore records upserted analyses in memory.
type MockStore struct {
	UpsertErr error

	mu       sync.Mutex
	upserted []*models.TrackAnalysis
}

func (m *MockStore) Upsert(analysis *models.TrackAnalysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpsertErr != nil {
		return m.UpsertErr
	}
	m.upserted = append(m.upserted, analysis)
	return nil
}

// Upserted returns the analyses persisted so far.
func (m *MockStore) Upserted() []*models.TrackAnalysis {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*models.TrackAnalysis(nil), m.upserted...)
}

// MockActions records copy/share/open invocations.
type MockActions struct {
	CopyErr  error
	ShareErr error
	OpenErr  error

	mu     sync.Mutex
	Copied []string
	Shared []string
	Opened []string
}

func (m *MockActions) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CopyErr != nil {
		return m.CopyErr
	}
	m.Copied = append(m.Copied, text)
	return nil
}

func (m *MockActions) Share(analysis *models.TrackAnalysis, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ShareErr != nil {
		return m.ShareErr
	}
	m.Shared = append(m.Shared, url)
	return nil
}

func (m *MockActions) Open(url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OpenErr != nil {
		return m.OpenErr
	}
	m.Opened = append(m.Opened, url)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

var _ io.ReadCloser = (*FCloser)(nil)

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
