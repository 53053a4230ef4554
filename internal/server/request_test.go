package server

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
	"testing/iotest"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		method  string
		path    string
		proto   string
		body    string
		header  map[string]string
		wantErr bool
	}{
		{
			name:   "simple get",
			raw:    "GET /index.html HTTP/1.0\r\nHost: lights\r\n\r\n",
			method: "GET", path: "/index.html", proto: "HTTP/1.0",
			header: map[string]string{"host": "lights"},
		},
		{
			name:   "bare lf",
			raw:    "GET /a.css HTTP/1.1\nAccept: */*\n\n",
			method: "GET", path: "/a.css", proto: "HTTP/1.1",
			header: map[string]string{"accept": "*/*"},
		},
		{
			name:   "no version",
			raw:    "GET /\r\n\r\n",
			method: "GET", path: "/",
		},
		{
			name:   "query stripped",
			raw:    "GET /ajax/scheme/1?t=123 HTTP/1.0\r\n\r\n",
			method: "GET", path: "/ajax/scheme/1", proto: "HTTP/1.0",
		},
		{
			name:   "percent decoded",
			raw:    "GET /my%20file.html HTTP/1.0\r\n\r\n",
			method: "GET", path: "/my file.html", proto: "HTTP/1.0",
		},
		{
			name:   "absolute form",
			raw:    "GET http://lights:8080/js/app.js HTTP/1.0\r\n\r\n",
			method: "GET", path: "/js/app.js", proto: "HTTP/1.0",
		},
		{
			name:   "absolute form without path",
			raw:    "GET http://lights HTTP/1.0\r\n\r\n",
			method: "GET", path: "/", proto: "HTTP/1.0",
		},
		{
			name:   "malformed header skipped",
			raw:    "GET / HTTP/1.0\r\nnot a header\r\nX-Key:  value \r\n\r\n",
			method: "GET", path: "/", proto: "HTTP/1.0",
			header: map[string]string{"x-key": "value"},
		},
		{
			name:   "post body truncated to content length",
			raw:    "POST /form HTTP/1.0\r\nContent-Length: 3\r\n\r\nabcdef",
			method: "POST", path: "/form", proto: "HTTP/1.0", body: "abc",
		},
		{
			name:   "post body shorter than content length",
			raw:    "POST /form HTTP/1.0\r\nContent-Length: 10\r\n\r\nabc",
			method: "POST", path: "/form", proto: "HTTP/1.0", body: "abc",
		},
		{name: "empty", raw: "", wantErr: true},
		{name: "method only", raw: "GET\r\n\r\n", wantErr: true},
		{name: "relative target", raw: "GET index.html HTTP/1.0\r\n\r\n", wantErr: true},
		{name: "bad escape", raw: "GET /%zz HTTP/1.0\r\n\r\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest([]byte(tt.raw))
			if tt.wantErr {
				if !errors.Is(err, ErrParse) {
					t.Fatalf("ParseRequest() error = %v, want ErrParse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRequest() error = %v", err)
			}
			if req.Method != tt.method || req.Path != tt.path || req.Proto != tt.proto {
				t.Errorf("got %s %s %s, want %s %s %s", req.Method, req.Path, req.Proto, tt.method, tt.path, tt.proto)
			}
			if string(req.Body) != tt.body {
				t.Errorf("body = %q, want %q", req.Body, tt.body)
			}
			for k, v := range tt.header {
				if req.Header[k] != v {
					t.Errorf("header %q = %q, want %q", k, req.Header[k], v)
				}
			}
		})
	}
}

func TestReadRequest(t *testing.T) {
	t.Run("stops at end of head", func(t *testing.T) {
		raw := "GET / HTTP/1.0\r\n\r\n"
		got, err := readRequest(iotest.OneByteReader(strings.NewReader(raw+"trailing")), 1024)
		if err != nil {
			t.Fatalf("readRequest() error = %v", err)
		}
		if string(got) != raw {
			t.Errorf("readRequest() = %q, want %q", got, raw)
		}
	})

	t.Run("reads content length body", func(t *testing.T) {
		raw := "POST / HTTP/1.0\r\nContent-Length: 4\r\n\r\nbody"
		got, err := readRequest(iotest.OneByteReader(strings.NewReader(raw)), 1024)
		if err != nil {
			t.Fatalf("readRequest() error = %v", err)
		}
		if string(got) != raw {
			t.Errorf("readRequest() = %q, want %q", got, raw)
		}
	})

	t.Run("eof after partial head", func(t *testing.T) {
		got, err := readRequest(strings.NewReader("GET /"), 1024)
		if err != nil {
			t.Fatalf("readRequest() error = %v", err)
		}
		if string(got) != "GET /" {
			t.Errorf("readRequest() = %q", got)
		}
	})

	t.Run("deadline after partial head", func(t *testing.T) {
		r := io.MultiReader(strings.NewReader("GET / HTTP/1.0\r\n"), iotest.ErrReader(os.ErrDeadlineExceeded))
		got, err := readRequest(r, 1024)
		if err != nil {
			t.Fatalf("readRequest() error = %v", err)
		}
		if string(got) != "GET / HTTP/1.0\r\n" {
			t.Errorf("readRequest() = %q", got)
		}
	})

	t.Run("nothing sent", func(t *testing.T) {
		got, err := readRequest(strings.NewReader(""), 1024)
		if len(got) != 0 || !errors.Is(err, io.EOF) {
			t.Errorf("readRequest() = %q, %v; want empty, EOF", got, err)
		}
	})

	t.Run("limit", func(t *testing.T) {
		raw := bytes.Repeat([]byte("x"), 4096)
		got, err := readRequest(bytes.NewReader(raw), 100)
		if err != nil {
			t.Fatalf("readRequest() error = %v", err)
		}
		if len(got) != 100 {
			t.Errorf("len = %d, want 100", len(got))
		}
	})
}
