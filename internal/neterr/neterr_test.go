package neterr

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyKnownCodes(t *testing.T) {
	msg, ok := Classify(403)
	require.True(t, ok)
	assert.Equal(t, "Access to this resource is forbidden.", msg)

	msg, ok = Classify(CodeTimedOut)
	require.True(t, ok)
	assert.Equal(t, "The request timed out.", msg)
}

func TestClassifyUnknownCode(t *testing.T) {
	for _, code := range []int{0, 200, 299, 999, -42} {
		_, ok := Classify(code)
		assert.False(t, ok, "code %d", code)
	}
}

func TestMergeStatusWins(t *testing.T) {
	transport := map[int]string{404: "transport 404", -1: "unknown"}
	status := map[int]string{404: "status 404", 500: "server"}

	got := merge(transport, status)

	assert.Equal(t, "status 404", got[404])
	assert.Equal(t, "unknown", got[-1])
	assert.Equal(t, "server", got[500])
	assert.Equal(t, "transport 404", transport[404], "inputs must not change")
}

func TestMergeNilTransport(t *testing.T) {
	got := merge(nil, map[int]string{400: "bad"})
	assert.Equal(t, map[int]string{400: "bad"}, got)
}

func TestAlertTitle(t *testing.T) {
	assert.Equal(t, "Error: 403", AlertTitle(403))
	assert.Equal(t, "Error: -1009", AlertTitle(CodeNotConnectedToInternet))
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "transport error", err: StatusError("filter.php", 503), want: 503},
		{name: "wrapped transport error", err: fmt.Errorf("fetch: %w", &TransportError{Code: -1011}), want: -1011},
		{name: "cancelled", err: fmt.Errorf("do: %w", context.Canceled), want: CodeCancelled},
		{name: "deadline", err: context.DeadlineExceeded, want: CodeTimedOut},
		{name: "redirects", err: &url.Error{Op: "Get", URL: "u", Err: ErrTooManyRedirects}, want: CodeTooManyRedirects},
		{name: "dns not found", err: &net.DNSError{Err: "no such host", Name: "x", IsNotFound: true}, want: CodeCannotFindHost},
		{name: "dns failure", err: &net.DNSError{Err: "server misbehaving", Name: "x"}, want: CodeDNSLookupFailed},
		{name: "dns timeout", err: &net.DNSError{Err: "timeout", Name: "x", IsTimeout: true}, want: CodeTimedOut},
		{name: "net timeout", err: &url.Error{Op: "Get", URL: "u", Err: timeoutErr{}}, want: CodeTimedOut},
		{name: "refused", err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, want: CodeCannotConnectToHost},
		{name: "reset", err: &net.OpError{Op: "read", Err: os.NewSyscallError("read", syscall.ECONNRESET)}, want: CodeNetworkConnectionLost},
		{name: "eof", err: fmt.Errorf("read body: %w", io.ErrUnexpectedEOF), want: CodeNetworkConnectionLost},
		{name: "unreachable", err: &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ENETUNREACH)}, want: CodeNotConnectedToInternet},
		{name: "untrusted cert", err: &url.Error{Op: "Get", URL: "u", Err: x509.UnknownAuthorityError{}}, want: CodeCertificateUntrusted},
		{name: "other", err: errors.New("boom"), want: CodeUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestTransportErrorUnwrap(t *testing.T) {
	err := Wrap("lookup.php", context.Canceled)
	assert.Equal(t, CodeCancelled, err.Code)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "lookup.php: context canceled", err.Error())
}
