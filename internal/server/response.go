package server

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

const (
	contentTypeHTML    = `text/html; charset="utf8"`
	contentTypeJSON    = "application/json"
	contentTypeDefault = "application/octet-stream"
)

var contentTypes = map[string]string{
	"html": contentTypeHTML,
	"css":  "text/css",
	"js":   "application/javascript",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"gif":  "image/gif",
	"json": contentTypeJSON,
}

var reasons = map[int]string{
	http.StatusOK:                  "OK",
	http.StatusNotFound:            "Not Found",
	http.StatusInternalServerError: "Internal Server Error",
}

// ContentTypeFor maps a file extension, with or without the leading dot,
// to a content type. Unknown extensions get application/octet-stream.
func ContentTypeFor(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return contentTypeDefault
}

// Response is a status code, content type and body.
type Response struct {
	Code        int
	ContentType string
	Body        []byte
}

// Bytes renders the response in wire form:
//
//	HTTP/1.0 <code> <reason>\r\n
//	Server: HttpServer\r\n
//	Connection: close\r\n
//	Content-Type: <type>\r\n
//	\r\n
//	<body>\n
func (r Response) Bytes() []byte {
	reason, ok := reasons[r.Code]
	if !ok {
		reason = http.StatusText(r.Code)
	}

	var b bytes.Buffer
	b.Grow(96 + len(r.ContentType) + len(r.Body))
	b.WriteString("HTTP/1.0 ")
	b.WriteString(strconv.Itoa(r.Code))
	b.WriteByte(' ')
	b.WriteString(reason)
	b.WriteString("\r\nServer: HttpServer\r\nConnection: close\r\nContent-Type: ")
	b.WriteString(r.ContentType)
	b.WriteString("\r\n\r\n")
	b.Write(r.Body)
	b.WriteByte('\n')
	return b.Bytes()
}

func notFound(path string) Response {
	return Response{
		Code:        http.StatusNotFound,
		ContentType: contentTypeHTML,
		Body:        []byte("<h1>404 - File Not Found (" + path + ")</h1>"),
	}
}

func internalError() Response {
	return Response{
		Code:        http.StatusInternalServerError,
		ContentType: contentTypeHTML,
		Body:        []byte("<h1>500 - Internal Error</h1>"),
	}
}
