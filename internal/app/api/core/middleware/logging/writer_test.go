package logging

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriterWrapper_WriteHeader(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := newWriterWrapper(rr)

	ww.WriteHeader(http.StatusForbidden)

	if ww.StatusCode != http.StatusForbidden {
		t.Errorf("expected status code to be %v, got %v", http.StatusForbidden, ww.StatusCode)
	}
	if rr.Code != http.StatusForbidden {
		t.Errorf("expected recorder status code to be %v, got %v", http.StatusForbidden, rr.Code)
	}
}

func TestWriterWrapper_Write(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := newWriterWrapper(rr)

	data := []byte(`{"ok":true}`)
	n, err := ww.Write(data)

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if n != len(data) {
		t.Errorf("expected written bytes to be %v, got %v", len(data), n)
	}
	if ww.WrittenBytes != int64(len(data)) {
		t.Errorf("expected WrittenBytes to be %v, got %v", len(data), ww.WrittenBytes)
	}
	if rr.Body.String() != string(data) {
		t.Errorf("expected response body to be %v, got %v", string(data), rr.Body.String())
	}
}

func TestWriterWrapper_LateWriteHeaderIsIgnored(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := newWriterWrapper(rr)

	_, _ = ww.Write([]byte("body"))
	ww.WriteHeader(http.StatusInternalServerError)

	if ww.StatusCode != http.StatusOK {
		t.Errorf("expected status code to stay %v, got %v", http.StatusOK, ww.StatusCode)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("expected recorder status code to be %v, got %v", http.StatusOK, rr.Code)
	}
}

func TestWriterWrapper_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := newWriterWrapper(rr)

	if ww.Unwrap() != rr {
		t.Errorf("expected Unwrap to return the original writer")
	}
}

func TestNewWriterWrapper(t *testing.T) {
	rr := httptest.NewRecorder()
	ww := newWriterWrapper(rr)

	if ww.StatusCode != http.StatusOK {
		t.Errorf("expected initial status code to be %v, got %v", http.StatusOK, ww.StatusCode)
	}
	if ww.WrittenBytes != 0 {
		t.Errorf("expected initial WrittenBytes to be %v, got %v", 0, ww.WrittenBytes)
	}
}
