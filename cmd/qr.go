package cmd

import (
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
)

// ControlURL builds the URL of the control page. An empty host is replaced
// by the first non-loopback IPv4 address of this machine.
func ControlURL(host string, port int) (string, error) {
	if host == "" || host == "0.0.0.0" {
		ip, err := outboundIPv4()
		if err != nil {
			return "", err
		}
		host = ip
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port)) + "/", nil
}

func outboundIPv4() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			return ip4.String(), nil
		}
	}
	return "", errors.New("no non-loopback IPv4 address found, pass --host")
}

// CreateQRCmd creates the qr command, which prints a QR code of the control
// page URL so a phone can open it.
func CreateQRCmd() *cobra.Command {
	var host string
	var port int
	var pngPath string
	var size int

	cmd := &cobra.Command{
		Use:   "qr",
		Short: "Print a QR code linking to the control page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := ControlURL(host, port)
			if err != nil {
				return err
			}

			code, err := qrcode.New(url, qrcode.Medium)
			if err != nil {
				return err
			}

			if pngPath != "" {
				if err := code.WriteFile(size, pngPath); err != nil {
					return fmt.Errorf("failed to write %s: %w", pngPath, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s for %s\n", pngPath, url)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), code.ToSmallString(false))
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Host in the URL (default: first LAN IPv4 address)")
	cmd.Flags().IntVar(&port, "port", 8080, "Controller port")
	cmd.Flags().StringVar(&pngPath, "png", "", "Write a PNG instead of printing to the terminal")
	cmd.Flags().IntVar(&size, "size", 256, "PNG size in pixels")
	return cmd
}
