package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/fadilmartias/job-intel/internal/util"
	"github.com/go-resty/resty/v2"
)

const (
	pageFetchTimeout = 3 * time.Second
	maxPageBytes     = 2 << 20
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

var ErrNonPublicAddress = errors.New("refusing to fetch non-public address")

// PageTitleFetcher returns the raw <title> of a page.
type PageTitleFetcher interface {
	FetchTitle(ctx context.Context, url string) (string, error)
}

type PageFetcher struct {
	client  *resty.Client
	timeout time.Duration
}

// NewPageFetcher only dials public unicast addresses, including after
// redirects and DNS resolution.
func NewPageFetcher() *PageFetcher {
	return newPageFetcher(true)
}

func newPageFetcher(publicOnly bool) *PageFetcher {
	dialer := &net.Dialer{Timeout: pageFetchTimeout, KeepAlive: 30 * time.Second}
	if publicOnly {
		dialer.Control = refuseNonPublic
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	client := resty.New().
		SetTransport(transport).
		SetHeader("User-Agent", browserUserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml").
		SetHeader("Accept-Language", "en-US,en;q=0.9").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))
	return &PageFetcher{client: client, timeout: pageFetchTimeout}
}

func (f *PageFetcher) FetchTitle(ctx context.Context, url string) (string, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(timeoutCtx).
		SetDoNotParseResponse(true).
		Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.IsError() {
		return "", fmt.Errorf("fetch page: status %d", resp.StatusCode())
	}

	title := util.ExtractPageTitle(io.LimitReader(body, maxPageBytes))
	if title == "" {
		return "", fmt.Errorf("page has no title")
	}
	return title, nil
}

func refuseNonPublic(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || !isPublicIP(ip) {
		return fmt.Errorf("%w: %s", ErrNonPublicAddress, host)
	}
	return nil
}

func isPublicIP(ip net.IP) bool {
	return !(ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsMulticast())
}
