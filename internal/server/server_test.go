package server

import (
	"context"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/lightnode/internal/engine"
	"github.com/smazurov/lightnode/internal/pixel"
)

func startServer(t *testing.T, n Notifier) *Server {
	t.Helper()
	srv := New(Options{
		Router:        newTestRouter(n),
		ReadTimeout:   time.Second,
		ShutdownGrace: 500 * time.Millisecond,
		Logger:        testLogger(),
	})
	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { srv.Stop() })
	return srv
}

// roundTrip sends raw on a fresh connection and reads until the server closes it.
func roundTrip(t *testing.T, addr net.Addr, raw string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr.String(), time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(3 * time.Second))

	if _, err := io.WriteString(conn, raw); err != nil {
		t.Fatalf("write: %v", err)
	}
	resp, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(resp)
}

func TestServer_ServesStaticAndAjax(t *testing.T) {
	n := &fakeNotifier{}
	srv := startServer(t, n)

	resp := roundTrip(t, srv.Addr(), "GET / HTTP/1.0\r\n\r\n")
	if !strings.HasPrefix(resp, "HTTP/1.0 200 OK\r\n") || !strings.HasSuffix(resp, string(indexHTML)+"\n") {
		t.Errorf("GET / = %q", resp)
	}

	resp = roundTrip(t, srv.Addr(), "GET /ajax/speed/1 HTTP/1.0\r\n\r\n")
	if !strings.Contains(resp, "Content-Type: application/json\r\n\r\n\n") {
		t.Errorf("GET /ajax/speed/1 = %q", resp)
	}
	if cmds := n.commands(); len(cmds) != 1 || cmds[0].Kind != engine.SetSpeed {
		t.Errorf("commands = %+v", cmds)
	}
}

func TestServer_PostClosesWithoutReply(t *testing.T) {
	srv := startServer(t, &fakeNotifier{})
	resp := roundTrip(t, srv.Addr(), "POST / HTTP/1.0\r\nContent-Length: 2\r\n\r\nhi")
	if resp != "" {
		t.Errorf("POST reply = %q, want empty", resp)
	}
}

func TestServer_SilentClientTimesOut(t *testing.T) {
	srv := New(Options{
		Router:      newTestRouter(&fakeNotifier{}),
		ReadTimeout: 50 * time.Millisecond,
		Logger:      testLogger(),
	})
	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer srv.Stop()

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))

	resp, err := io.ReadAll(conn)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(resp) != 0 {
		t.Errorf("reply to silent client = %q, want none", resp)
	}
}

func TestServer_Stop(t *testing.T) {
	srv := startServer(t, &fakeNotifier{})
	addr := srv.Addr().String()

	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if srv.Listening() {
		t.Error("Listening() = true after Stop")
	}
	select {
	case <-srv.Done():
	default:
		t.Error("Done not closed after Stop")
	}
	if err := srv.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}

	if conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		conn.Close()
		t.Error("dial succeeded after Stop")
	}
}

func TestServer_StopEndsStalledRequest(t *testing.T) {
	srv := New(Options{
		Router:        newTestRouter(&fakeNotifier{}),
		ReadTimeout:   time.Minute,
		ShutdownGrace: 50 * time.Millisecond,
		Logger:        testLogger(),
	})
	if err := srv.Start("127.0.0.1:0"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	conn, err := net.Dial("tcp", srv.Addr().String())
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	io.WriteString(conn, "GET /slow")

	// Give the acceptor time to register the connection.
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		srv.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while a request was stalled")
	}
}

func TestServer_StopCommandEndsEngine(t *testing.T) {
	dev, err := pixel.NewDevice(pixel.DeviceConfig{Kind: pixel.KindNoop}, testLogger())
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	eng := engine.New(engine.Options{
		Driver:       pixel.NewStrip(dev, testLogger()),
		PixelCount:   8,
		Brightness:   0.4,
		PollInterval: 5 * time.Millisecond,
		Logger:       testLogger(),
	})
	runErr := make(chan error, 1)
	go func() { runErr <- eng.Run(context.Background()) }()

	srv := startServer(t, eng)

	resp := roundTrip(t, srv.Addr(), "GET /ajax/stop/0 HTTP/1.0\r\n\r\n")
	if !strings.HasPrefix(resp, "HTTP/1.0 200 OK\r\n") {
		t.Fatalf("GET /ajax/stop/0 = %q", resp)
	}

	select {
	case err := <-runErr:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("engine did not stop")
	}
	if got := eng.State(); got != engine.StateStopped {
		t.Errorf("State() = %v, want %v", got, engine.StateStopped)
	}

	resp = roundTrip(t, srv.Addr(), "GET /ajax/scheme/1 HTTP/1.0\r\n\r\n")
	if !strings.HasPrefix(resp, "HTTP/1.0 500 ") {
		t.Errorf("command after stop = %q, want 500", resp)
	}

	addr := srv.Addr().String()
	srv.Stop()
	if conn, err := net.DialTimeout("tcp", addr, 200*time.Millisecond); err == nil {
		conn.Close()
		t.Error("dial succeeded after shutdown")
	}
}
