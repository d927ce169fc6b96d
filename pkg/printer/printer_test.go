package printer

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "none", cfg: Config{Type: "none"}},
		{name: "empty", cfg: Config{}},
		{name: "usb without path", cfg: Config{Type: "usb"}, wantErr: true},
		{name: "network without address", cfg: Config{Type: "network"}, wantErr: true},
		{name: "unknown", cfg: Config{Type: "bluetooth"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNetworkPrinter(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			data, _ := io.ReadAll(conn)
			conn.Close()
			if len(data) > 0 {
				received <- data
			}
		}
	}()

	p, err := New(Config{Type: "network", Address: ln.Addr().String()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()
	if !p.IsConnected(ctx) {
		t.Error("IsConnected() = false with a listening printer")
	}

	job := NewDocument(Width58mm).Text("hello").PartialCut().Bytes()
	if err := p.Print(ctx, job); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	if got := <-received; !bytes.Equal(got, job) {
		t.Errorf("printer received % x, want % x", got, job)
	}

	ln.Close()
	if p.IsConnected(ctx) {
		t.Error("IsConnected() = true after the printer went away")
	}
	if err := p.Print(ctx, job); err == nil {
		t.Error("Print() should fail when the printer is unreachable")
	}
}

func TestUSBPrinterWritesToDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lp0")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := New(Config{Type: "usb", USBPath: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !p.IsConnected(context.Background()) {
		t.Error("IsConnected() = false for an existing device")
	}
	if err := p.Print(context.Background(), []byte("receipt")); err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "receipt" {
		t.Errorf("device contents = %q", got)
	}
}
