package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

// StaticResolver serves files from a directory tree.
type StaticResolver struct {
	fsys fs.FS
}

// NewStaticResolver serves files from fsys. Use os.DirFS for a directory.
func NewStaticResolver(fsys fs.FS) *StaticResolver {
	return &StaticResolver{fsys: fsys}
}

// Resolve maps urlPath to a file. Directories resolve to their index.html.
// A missing file returns an error wrapping ErrNotFound.
func (s *StaticResolver) Resolve(urlPath string) (Response, error) {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}

	info, err := s.stat(name)
	if err != nil {
		return Response{}, err
	}
	if info.IsDir() {
		name = path.Join(name, "index.html")
		if info, err = s.stat(name); err != nil {
			return Response{}, err
		}
		if info.IsDir() {
			return Response{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, name)
		}
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	return Response{
		Code:        http.StatusOK,
		ContentType: ContentTypeFor(path.Ext(name)),
		Body:        data,
	}, nil
}

func (s *StaticResolver) stat(name string) (fs.FileInfo, error) {
	info, err := fs.Stat(s.fsys, name)
	switch {
	case err == nil:
		return info, nil
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	default:
		return nil, fmt.Errorf("failed to stat %s: %w", name, err)
	}
}
