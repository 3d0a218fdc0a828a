package wsclient

import (
	"crypto/tls"
	"crypto/x509"
	"os"

	"github.com/pkg/errors"
)

// loadTLSConfig builds a tls.Config whose sole trust anchor is the PEM
// certificate at caCertPath, with SNI set to host. The certificate is
// read off disk on every call: once at Client construction, to reject
// an unusable file early, and again on each connect attempt.
func loadTLSConfig(host, caCertPath string) (*tls.Config, error) {
	pem, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, errors.Wrap(err, "wsclient: read CA certificate")
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.New("wsclient: CA certificate file contains no usable certificates")
	}

	return &tls.Config{
		RootCAs:    pool,
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}, nil
}
