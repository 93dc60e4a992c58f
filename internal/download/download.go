// Package download fetches the network-layout document over HTTPS when no
// local copy was configured, verifying the server against the same CA pool
// the STOMP transport uses.
package download

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"os"
)

// FetchLayout GETs https://host:port/network-layout.json, verifying the
// server certificate against caCertFile, and returns the response body.
func FetchLayout(ctx context.Context, host string, port int, caCertFile string) ([]byte, error) {
	pool, err := loadCertPool(caCertFile)
	if err != nil {
		return nil, err
	}

	client := &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
		},
	}

	url := fmt.Sprintf("https://%s:%d/network-layout.json", host, port)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %s", ErrDownloadFailed, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}
	return body, nil
}

func loadCertPool(caCertFile string) (*x509.CertPool, error) {
	if caCertFile == "" {
		return nil, ErrMissingCACertFile
	}
	pem, err := os.ReadFile(caCertFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCACertFile, err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("%w: no certificates found in %s", ErrMissingCACertFile, caCertFile)
	}
	return pool, nil
}
