package backend

import (
	"errors"
	"net"
	"strings"
	"syscall"

	apperrors "github.com/Rorical/RoriMail/internal/errors"
)

// Error classes reported by Classify.
const (
	ClassTimeout           = "timeout"
	ClassDNS               = "dns"
	ClassConnectionRefused = "connection_refused"
	ClassTLS               = "tls"
	ClassServer            = "server"
	ClassClient            = "client"
	ClassDecode            = "decode"
	ClassUnknown           = "unknown"
)

// Classify maps a gateway error to a short class for log fields.
// It never produces user-facing text.
func Classify(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 {
			return ClassServer
		}
		return ClassClient
	}

	if apperrors.Is(err, apperrors.Decode) {
		return ClassDecode
	}

	if isTimeoutError(err) {
		return ClassTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassDNS
	}

	if isConnectionRefusedError(err) {
		return ClassConnectionRefused
	}

	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "tls") ||
		strings.Contains(lower, "certificate") ||
		strings.Contains(lower, "handshake") {
		return ClassTLS
	}

	return ClassUnknown
}

func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}
