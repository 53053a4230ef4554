//go:build !linux

package pixel

import "errors"

func newFramebuffer(string) (Device, error) {
	return nil, errors.New("framebuffer device is only available on linux")
}
