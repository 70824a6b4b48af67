package request

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientIp(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.168.0.1:1234"}
	if got := ClientIp(r); got != "192.168.0.1" {
		t.Errorf("ClientIp() = %v, want %v", got, "192.168.0.1")
	}
}

func TestClientIp_noPort(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.168.0.1"}
	if got := ClientIp(r); got != "192.168.0.1" {
		t.Errorf("ClientIp() = %v, want %v", got, "192.168.0.1")
	}
}

func TestClientIp_invalid(t *testing.T) {
	r := &http.Request{RemoteAddr: "invalid"}
	if got := ClientIp(r); got != "" {
		t.Errorf("ClientIp() = %v, want %v", got, "")
	}
}

func TestClientIp_ignoreHeader(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.168.0.1:1234", Header: http.Header{"X-Real-Ip": []string{"10.0.0.1"}}}
	if got := ClientIp(r); got != "192.168.0.1" {
		t.Errorf("ClientIp() = %v, want %v", got, "192.168.0.1")
	}
}

func TestClientIp_realIpHeader(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.168.0.1:1234", Header: http.Header{"X-Real-Ip": []string{"10.0.0.1"}}}
	if got := ClientIp(r, "192.168.0.1"); got != "10.0.0.1" {
		t.Errorf("ClientIp() = %v, want %v", got, "10.0.0.1")
	}
}

func TestClientIp_forwardedForHeader(t *testing.T) {
	r := &http.Request{
		RemoteAddr: "127.0.0.1:1234",
		Header:     http.Header{"X-Forwarded-For": []string{"203.0.113.7, 10.0.0.2"}},
	}
	if got := ClientIp(r, CheckPrivateProxy); got != "203.0.113.7" {
		t.Errorf("ClientIp() = %v, want %v", got, "203.0.113.7")
	}
}

func TestClientIp_invalidHeader(t *testing.T) {
	r := &http.Request{RemoteAddr: "192.168.0.1:1234", Header: http.Header{"X-Real-Ip": []string{"garbage"}}}
	if got := ClientIp(r, CheckPrivateProxy); got != "192.168.0.1" {
		t.Errorf("ClientIp() = %v, want %v", got, "192.168.0.1")
	}
}

func TestBodyJson(t *testing.T) {
	type testData struct {
		Name string `json:"name"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Jane","unknown":1}`))
	var data testData
	if err := BodyJson(httptest.NewRecorder(), r, 1024, &data); err != nil {
		t.Fatalf("BodyJson() error = %v", err)
	}
	if data.Name != "Jane" {
		t.Errorf("BodyJson() name = %v, want %v", data.Name, "Jane")
	}
}

func TestBodyJson_empty(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var data map[string]string
	if err := BodyJson(httptest.NewRecorder(), r, 1024, &data); !errors.Is(err, io.EOF) {
		t.Errorf("BodyJson() error = %v, want %v", err, io.EOF)
	}
}

func TestBodyJson_tooLarge(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("a", 64)+`"}`))
	var data map[string]string
	if err := BodyJson(httptest.NewRecorder(), r, 16, &data); !errors.Is(err, ErrBodyTooLarge) {
		t.Errorf("BodyJson() error = %v, want %v", err, ErrBodyTooLarge)
	}
}

func TestBodyJson_invalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	var data map[string]string
	if err := BodyJson(httptest.NewRecorder(), r, 0, &data); err == nil {
		t.Errorf("BodyJson() expected an error")
	}
}

func TestBodyJson_trailingData(t *testing.T) {
	tests := []string{
		`{"name":"Jane"}garbage`,
		`{"name":"Jane"}{"name":"John"}`,
		`{"name":"Jane"} 1`,
	}

	for _, body := range tests {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var data map[string]string
		if err := BodyJson(httptest.NewRecorder(), r, 1024, &data); !errors.Is(err, ErrTrailingData) {
			t.Errorf("BodyJson(%s) error = %v, want %v", body, err, ErrTrailingData)
		}
	}
}

func TestBodyJson_trailingWhitespace(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{\"name\":\"Jane\"}\n\t "))
	var data map[string]string
	if err := BodyJson(httptest.NewRecorder(), r, 1024, &data); err != nil {
		t.Errorf("BodyJson() error = %v", err)
	}
}
