package netcheck

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestChecker_Online(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if !c.Online() {
		t.Error("expected online against a responding server")
	}
}

func TestChecker_AnyStatusCountsAsOnline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if !c.Online() {
		t.Error("a 5xx response still proves connectivity")
	}
}

func TestChecker_Offline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	c := New(url, 200*time.Millisecond)
	if c.Online() {
		t.Error("expected offline against a closed server")
	}
}
