package ari

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func netInterp(t *testing.T, url string) *Interpreter {
	t.Helper()
	ip := NewInterpreter(testConfig())
	ip.Global.Define("url", StringValue(url))
	return ip
}

func TestWebGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("method: want GET, got %s", r.Method)
		}
		io.WriteString(w, "pong")
	}))
	defer srv.Close()

	ip := netInterp(t, srv.URL)
	v, err := ip.EvalSource(`web_get(url);`)
	if err != nil {
		t.Fatalf("web_get: %v", err)
	}
	if v.Kind != ArrayKind || len(v.Arr()) != 2 {
		t.Fatalf("want [status, body], got %#v", v)
	}
	wantNum(t, v.Arr()[0], 200)
	wantStr(t, v.Arr()[1], "pong")
}

func TestWebGetNon2xxIsStillAResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	ip := netInterp(t, srv.URL)
	v, err := ip.EvalSource(`web_get(url);`)
	if err != nil {
		t.Fatalf("web_get: %v", err)
	}
	wantNum(t, v.Arr()[0], 404)
}

func TestWebPost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: want POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		io.WriteString(w, "got:"+string(body))
	}))
	defer srv.Close()

	ip := netInterp(t, srv.URL)
	v, err := ip.EvalSource(`web_post(url, "payload");`)
	if err != nil {
		t.Fatalf("web_post: %v", err)
	}
	wantNum(t, v.Arr()[0], 200)
	wantStr(t, v.Arr()[1], "got:payload")
}

func TestWebGetTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // nothing listens anymore

	ip := netInterp(t, url)
	_, err := ip.EvalSource(`web_get(url);`)
	wantNativeErr(t, err, NativeTransportError)
}

func TestServeStaticFolderRejectsBadArgs(t *testing.T) {
	ip := NewInterpreter(testConfig())
	_, err := ip.EvalSource(`serve_static_folder("/definitely/not/a/dir", 8080);`)
	wantNativeErr(t, err, NativeIoError)

	ip.Global.Define("dir", StringValue(t.TempDir()))
	_, err = ip.EvalSource(`serve_static_folder(dir, 0);`)
	wantNativeErr(t, err, NativeRangeError)
}
