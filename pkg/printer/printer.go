// Package printer sends ESC/POS receipts to thermal printers.
package printer

import (
	"context"
	"fmt"
	"net"
	"os"
	"sync"
	"time"
)

// Printer accepts a complete ESC/POS job
type Printer interface {
	Print(ctx context.Context, data []byte) error
	// IsConnected reports whether the device is reachable right now
	IsConnected(ctx context.Context) bool
}

// Config selects and addresses a printer
type Config struct {
	// Type is usb, network or none
	Type    string
	USBPath string
	Address string
}

// New creates the printer described by cfg
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: usb path is required for usb printers")
		}
		return &usbPrinter{path: cfg.USBPath}, nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printers")
		}
		return &networkPrinter{address: cfg.Address, dialTimeout: 5 * time.Second, writeTimeout: 10 * time.Second}, nil
	case "none", "":
		return nullPrinter{}, nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network or none)", cfg.Type)
	}
}

// usbPrinter writes to a character device such as /dev/usb/lp0. Jobs are
// serialized so two receipts never interleave on the device.
type usbPrinter struct {
	mu   sync.Mutex
	path string
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) IsConnected(context.Context) bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter speaks raw TCP, usually on port 9100
type networkPrinter struct {
	address      string
	dialTimeout  time.Duration
	writeTimeout time.Duration
}

func (p *networkPrinter) dial(ctx context.Context) (net.Conn, error) {
	dialer := net.Dialer{Timeout: p.dialTimeout}
	return dialer.DialContext(ctx, "tcp", p.address)
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	conn, err := p.dial(ctx)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(p.writeTimeout))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) IsConnected(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	conn, err := p.dial(ctx)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter discards jobs when no hardware is configured
type nullPrinter struct{}

func (nullPrinter) Print(context.Context, []byte) error { return nil }

func (nullPrinter) IsConnected(context.Context) bool { return false }
