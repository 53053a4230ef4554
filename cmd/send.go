package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/smazurov/lightnode/internal/engine"
	"github.com/spf13/cobra"
)

// ErrRejected is returned when the controller answers a command with a
// non-200 status.
var ErrRejected = errors.New("command rejected")

// SendCommand issues one control request against the controller at addr
// (host:port). The command is validated locally first.
func SendCommand(ctx context.Context, client *http.Client, addr, name string, arg int) error {
	if _, err := engine.ParseCommand(name, arg); err != nil {
		return err
	}

	url := "http://" + addr + "/ajax/" + name + "/" + strconv.Itoa(arg)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach controller: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s", ErrRejected, resp.Status)
	}
	return nil
}

// CreateSendCmd creates the send command, a one-shot control client.
func CreateSendCmd() *cobra.Command {
	var host string
	var port int
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "send <command> <value>",
		Short: "Send one control command to a running controller",
		Long: "Sends scheme, pattern, width, speed or stop to the controller over its " +
			"control surface, e.g. 'lightnode send scheme 2'.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("value %q is not an integer", args[1])
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			addr := net.JoinHostPort(host, strconv.Itoa(port))
			if err := SendCommand(ctx, &http.Client{}, addr, args[0], arg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d: ok\n", args[0], arg)
			return nil
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Controller host")
	cmd.Flags().IntVar(&port, "port", 8080, "Controller port")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "Request timeout")
	return cmd
}
