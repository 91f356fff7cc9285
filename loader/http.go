package loader

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"

	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/projecteru2/preload/config"
	"github.com/projecteru2/preload/types"
)

const acceptHeader = "image/avif,image/webp,image/png,image/jpeg,image/gif,image/*;q=0.8,*/*;q=0.5"

// compile-time interface check.
var _ Loader = (*HTTP)(nil)

// HTTP loads images over http, https and file URLs.
type HTTP struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

// NewHTTP creates an HTTP loader from conf.
// file:// URLs are served from the local filesystem root.
func NewHTTP(conf *config.Config) *HTTP {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert
	transport.RegisterProtocol("file", http.NewFileTransport(http.Dir("/")))
	return &HTTP{
		client:    &http.Client{Timeout: conf.Timeout(), Transport: transport},
		userAgent: conf.UserAgent,
		maxBytes:  conf.MaxImageBytes,
	}
}

// Load fetches url and decodes the body as an image.
func (h *HTTP) Load(ctx context.Context, url string) (*types.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	if h.userAgent != "" {
		req.Header.Set("User-Agent", h.userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %w: %s", url, ErrStatus, resp.Status)
	}

	cr := &countingReader{r: io.LimitReader(resp.Body, h.maxBytes+1)}
	img, format, err := image.Decode(cr)
	if err != nil {
		if cr.n > h.maxBytes {
			return nil, fmt.Errorf("GET %s: %w (%d bytes)", url, ErrTooLarge, h.maxBytes)
		}
		return nil, fmt.Errorf("GET %s: %w: %v", url, ErrNotImage, err) //nolint:errorlint
	}
	// Drain trailing bytes so Size reflects the whole body.
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if cr.n > h.maxBytes {
		return nil, fmt.Errorf("GET %s: %w (%d bytes)", url, ErrTooLarge, h.maxBytes)
	}

	bounds := img.Bounds()
	return &types.Image{
		URL:    url,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Size:   cr.n,
	}, nil
}

// countingReader tracks how many bytes have been read through it.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
