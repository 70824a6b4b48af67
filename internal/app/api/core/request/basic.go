// Package request provides functions to extract parameters from the request.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
)

const CheckPrivateProxy = "PRIVATE"

// ErrBodyTooLarge is returned by BodyJson if the request body exceeds the given limit.
var ErrBodyTooLarge = errors.New("request body too large")

// ErrTrailingData is returned by BodyJson if the body contains more than one JSON value.
var ErrTrailingData = errors.New("request body contains trailing data")

// ClientIp returns the client IP address.
//
// As the request may come from a proxy, the function checks the
// X-Real-Ip and X-Forwarded-For headers to get the real client IP
// if the request IP matches one of the allowed proxy IPs.
// If the special proxy value CheckPrivateProxy ("PRIVATE") is passed, the function will
// also check the header if the request IP is a private or loopback IP address.
func ClientIp(r *http.Request, allowedProxyIp ...string) string {
	ip := parseIp(r.RemoteAddr)
	if ip == nil {
		return ""
	}

	isProxiedRequest := slices.Contains(allowedProxyIp, ip.String()) ||
		((ip.IsPrivate() || ip.IsLoopback()) && slices.Contains(allowedProxyIp, CheckPrivateProxy))
	if !isProxiedRequest {
		return ip.String()
	}

	realClientIp := r.Header.Get("X-Real-Ip")
	if realClientIp == "" {
		// the first entry is the original client, all others are proxies
		realClientIp, _, _ = strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	}
	if realIp := parseIp(realClientIp); realIp != nil {
		return realIp.String()
	}

	return ip.String()
}

// BodyJson decodes the JSON value from the request body into the target.
// The target must be a pointer to a struct or slice.
// If maxBytes is greater than 0, bodies exceeding the limit are rejected with ErrBodyTooLarge.
// An empty body results in io.EOF. Unknown fields are ignored, anything after the first
// JSON value except whitespace results in ErrTrailingData.
// The body reader is closed after reading.
func BodyJson(w http.ResponseWriter, r *http.Request, maxBytes int64, target any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	defer func() {
		_ = body.Close()
	}()

	dec := json.NewDecoder(body)
	if err := dec.Decode(target); err != nil {
		return bodyJsonError(err)
	}

	// the body must hold exactly one JSON value
	var trailing json.RawMessage
	switch err := dec.Decode(&trailing); {
	case errors.Is(err, io.EOF):
		return nil
	case err == nil:
		return ErrTrailingData
	default:
		if bodyErr := bodyJsonError(err); errors.Is(bodyErr, ErrBodyTooLarge) {
			return bodyErr
		}
		return fmt.Errorf("%w: %w", ErrTrailingData, err)
	}
}

func bodyJsonError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxBytesErr.Limit)
	}
	return err
}

func parseIp(addr string) net.IP {
	addr = strings.TrimSpace(addr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return net.ParseIP(addr)
}
