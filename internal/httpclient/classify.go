package httpclient

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"strings"
)

// Stable failure kinds recorded in the error histogram. Reports and tests
// depend on these strings staying fixed.
const (
	KindTimeout         = "timeout"
	KindConnectionError = "connection_error"
	KindDNSError        = "dns_error"
	KindTLSError        = "tls_error"
	KindProtocolError   = "protocol_error"
	KindOther           = "other"
)

// Classify maps a transport-level failure to one of the stable kinds. It
// never returns an empty string for a non-nil error, so no failure escapes
// the histogram unclassified.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNSError
	}

	if isTLSError(err) {
		return KindTLSError
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindConnectionError
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return KindConnectionError
	}

	if isProtocolError(err) {
		return KindProtocolError
	}

	return KindOther
}

func isTLSError(err error) bool {
	var recordErr tls.RecordHeaderError
	if errors.As(err, &recordErr) {
		return true
	}
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var certInvalid x509.CertificateInvalidError
	return errors.As(err, &certInvalid)
}

// isProtocolError matches the string-only errors net/http produces for
// malformed responses and invalid request construction.
func isProtocolError(err error) bool {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "malformed HTTP"),
		strings.Contains(msg, "bad Content-Length"),
		strings.Contains(msg, "invalid method"),
		strings.Contains(msg, "missing protocol scheme"),
		strings.Contains(msg, "unsupported protocol scheme"):
		return true
	}
	return false
}
