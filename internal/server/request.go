package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Request is the parsed form of one client request.
type Request struct {
	Method string
	Target string
	Path   string
	Proto  string
	Header map[string]string
	Body   []byte
}

// ParseRequest parses raw request bytes. Parsing is permissive: bare LF line
// endings are accepted, malformed header lines are skipped, and a missing
// protocol version is allowed. Only an unusable request line is an error.
func ParseRequest(raw []byte) (*Request, error) {
	head, body := splitHead(raw)

	lines := strings.Split(string(head), "\n")
	requestLine := strings.TrimSpace(lines[0])
	fields := strings.Fields(requestLine)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: request line %q", ErrParse, requestLine)
	}

	req := &Request{
		Method: fields[0],
		Target: fields[1],
		Header: make(map[string]string),
		Body:   body,
	}
	if len(fields) > 2 {
		req.Proto = fields[2]
	}

	path, err := targetPath(req.Target)
	if err != nil {
		return nil, err
	}
	req.Path = path

	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		req.Header[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	if n, err := strconv.Atoi(req.Header["content-length"]); err == nil && n >= 0 && n < len(req.Body) {
		req.Body = req.Body[:n]
	}
	return req, nil
}

// targetPath extracts the decoded path from an origin-form or absolute-form
// request target, dropping any query string.
func targetPath(target string) (string, error) {
	if strings.Contains(target, "://") {
		u, err := url.Parse(target)
		if err != nil {
			return "", fmt.Errorf("%w: target %q: %v", ErrParse, target, err)
		}
		target = u.EscapedPath()
		if target == "" {
			target = "/"
		}
	}
	if !strings.HasPrefix(target, "/") {
		return "", fmt.Errorf("%w: target %q", ErrParse, target)
	}
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	path, err := url.PathUnescape(target)
	if err != nil {
		return "", fmt.Errorf("%w: target %q: %v", ErrParse, target, err)
	}
	return path, nil
}

// splitHead separates the request head from the body at the first blank line.
func splitHead(raw []byte) (head, body []byte) {
	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		return raw[:i], raw[i+4:]
	}
	if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		return raw[:i], raw[i+2:]
	}
	return raw, nil
}

// headEnd returns the offset just past the blank line ending the head, or -1.
func headEnd(buf []byte) int {
	if i := bytes.Index(buf, []byte("\r\n\r\n")); i >= 0 {
		return i + 4
	}
	if i := bytes.Index(buf, []byte("\n\n")); i >= 0 {
		return i + 2
	}
	return -1
}

// readRequest reads one request from r: the head up to the blank line and,
// when Content-Length is present, that many body bytes. At most limit bytes
// are read. A timeout or EOF after some data returns what was read.
func readRequest(r io.Reader, limit int) ([]byte, error) {
	buf := make([]byte, 0, 1024)
	chunk := make([]byte, 1024)
	want := -1

	for len(buf) < limit {
		n, err := r.Read(chunk[:min(len(chunk), limit-len(buf))])
		buf = append(buf, chunk[:n]...)

		if want < 0 {
			if end := headEnd(buf); end >= 0 {
				want = end + contentLength(buf[:end])
			}
		}
		if want >= 0 && len(buf) >= want {
			return buf, nil
		}

		if err != nil {
			if len(buf) > 0 && (errors.Is(err, io.EOF) || errors.Is(err, os.ErrDeadlineExceeded)) {
				return buf, nil
			}
			return buf, err
		}
	}
	return buf, nil
}

func contentLength(head []byte) int {
	for _, line := range strings.Split(string(head), "\n") {
		key, value, ok := strings.Cut(strings.TrimRight(line, "\r"), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "content-length") {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
