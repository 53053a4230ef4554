//go:build !ws281x

package pixel

import "errors"

func newWS281x(int) (Device, error) {
	return nil, errors.New("built without ws281x support (rebuild with -tags ws281x)")
}
