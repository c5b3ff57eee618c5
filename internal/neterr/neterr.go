// Package neterr classifies transport failures into numeric codes and
// human-readable messages.
//
// Codes below zero follow the URL-loading convention (-1001 timed out, -1009
// offline, and so on). Codes from 400 to 511 are HTTP response statuses. When
// a number appears in both tables the HTTP message wins.
package neterr

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
)

// Transport failure codes.
const (
	CodeUnknown                = -1
	CodeCancelled              = -999
	CodeBadURL                 = -1000
	CodeTimedOut               = -1001
	CodeCannotFindHost         = -1003
	CodeCannotConnectToHost    = -1004
	CodeNetworkConnectionLost  = -1005
	CodeDNSLookupFailed        = -1006
	CodeTooManyRedirects       = -1007
	CodeNotConnectedToInternet = -1009
	CodeBadServerResponse      = -1011
	CodeZeroByteResource       = -1014
	CodeSecureConnectionFailed = -1200
	CodeCertificateUntrusted   = -1202
)

// ErrTooManyRedirects is returned by redirect policies that give up.
var ErrTooManyRedirects = errors.New("too many redirects")

// TransportError is a failure to obtain a response body. Code is either a
// transport code or the HTTP status of the response.
type TransportError struct {
	Code int
	Op   string
	Err  error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: code %d", e.Op, e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// StatusError builds the TransportError for an HTTP response status.
func StatusError(op string, status int) *TransportError {
	return &TransportError{
		Code: status,
		Op:   op,
		Err:  fmt.Errorf("api %s returned status %d", op, status),
	}
}

// Wrap attaches the code derived from err.
func Wrap(op string, err error) *TransportError {
	return &TransportError{Code: CodeOf(err), Op: op, Err: err}
}

// CodeOf extracts the numeric code describing err. A TransportError anywhere
// in the chain supplies its own code.
func CodeOf(err error) int {
	if err == nil {
		return 0
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Code
	}
	switch {
	case errors.Is(err, context.Canceled):
		return CodeCancelled
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimedOut
	case errors.Is(err, ErrTooManyRedirects):
		return CodeTooManyRedirects
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		switch {
		case dnsErr.IsTimeout:
			return CodeTimedOut
		case dnsErr.IsNotFound:
			return CodeCannotFindHost
		default:
			return CodeDNSLookupFailed
		}
	}

	var unknownAuthority x509.UnknownAuthorityError
	var invalidCert x509.CertificateInvalidError
	var hostname x509.HostnameError
	if errors.As(err, &unknownAuthority) || errors.As(err, &invalidCert) || errors.As(err, &hostname) {
		return CodeCertificateUntrusted
	}
	var record tls.RecordHeaderError
	if errors.As(err, &record) {
		return CodeSecureConnectionFailed
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return CodeTimedOut
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return CodeCannotConnectToHost
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE),
		errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return CodeNetworkConnectionLost
	case errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return CodeNotConnectedToInternet
	}
	return CodeUnknown
}
