package server

import "testing"

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"html", `text/html; charset="utf8"`},
		{".html", `text/html; charset="utf8"`},
		{"HTML", `text/html; charset="utf8"`},
		{"css", "text/css"},
		{"js", "application/javascript"},
		{"png", "image/png"},
		{"jpg", "image/jpeg"},
		{"gif", "image/gif"},
		{"json", "application/json"},
		{"txt", "application/octet-stream"},
		{"", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentTypeFor(tt.ext); got != tt.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestResponseBytes(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{
			name: "ok json empty",
			resp: Response{Code: 200, ContentType: "application/json"},
			want: "HTTP/1.0 200 OK\r\nServer: HttpServer\r\nConnection: close\r\nContent-Type: application/json\r\n\r\n\n",
		},
		{
			name: "not found",
			resp: notFound("/x.html"),
			want: "HTTP/1.0 404 Not Found\r\nServer: HttpServer\r\nConnection: close\r\n" +
				"Content-Type: text/html; charset=\"utf8\"\r\n\r\n<h1>404 - File Not Found (/x.html)</h1>\n",
		},
		{
			name: "internal error",
			resp: internalError(),
			want: "HTTP/1.0 500 Internal Server Error\r\nServer: HttpServer\r\nConnection: close\r\n" +
				"Content-Type: text/html; charset=\"utf8\"\r\n\r\n<h1>500 - Internal Error</h1>\n",
		},
		{
			name: "unlisted code uses standard reason",
			resp: Response{Code: 501, ContentType: "text/css", Body: []byte("x")},
			want: "HTTP/1.0 501 Not Implemented\r\nServer: HttpServer\r\nConnection: close\r\nContent-Type: text/css\r\n\r\nx\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(tt.resp.Bytes()); got != tt.want {
				t.Errorf("Bytes() = %q, want %q", got, tt.want)
			}
		})
	}
}
