package printer

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

// Printer sends a rendered receipt to a device.
type Printer interface {
	// Print sends raw ESC/POS bytes.
	Print(data []byte) error
	Close() error
	// IsConnected reports whether the device looks reachable right now.
	IsConnected() bool
}

// Config selects and addresses the receipt printer.
type Config struct {
	Type     string // usb, network, file or none
	USBPath  string // e.g. /dev/usb/lp0
	Address  string // e.g. 192.168.1.100:9100
	SpoolDir string // directory for the file printer
}

// usbPrinter writes to a device file such as /dev/usb/lp0.
type usbPrinter struct {
	path string
}

func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
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

func (p *usbPrinter) Close() error { return nil }

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter dials a raw TCP port (usually 9100) per job.
type networkPrinter struct {
	address string
	timeout time.Duration
}

func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address, timeout: 5 * time.Second}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, p.timeout)
	if err != nil {
		return fmt.Errorf("printer: connect %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error { return nil }

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// filePrinter spools each job to its own file. Useful on tills without a
// thermal printer attached and for keeping reprints on disk.
type filePrinter struct {
	dir string
	now func() time.Time
}

func NewFilePrinter(dir string) Printer {
	return &filePrinter{dir: dir, now: time.Now}
}

func (p *filePrinter) Print(data []byte) error {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return fmt.Errorf("printer: create spool dir %s: %w", p.dir, err)
	}
	name := filepath.Join(p.dir, "receipt-"+p.now().UTC().Format("20060102-150405.000000000")+".escpos")
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return fmt.Errorf("printer: write %s: %w", name, err)
	}
	return nil
}

func (p *filePrinter) Close() error { return nil }

func (p *filePrinter) IsConnected() bool {
	info, err := os.Stat(p.dir)
	return err == nil && info.IsDir()
}

// nullPrinter drops every job.
type nullPrinter struct{}

func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }
func (p *nullPrinter) Close() error            { return nil }
func (p *nullPrinter) IsConnected() bool       { return false }

// New creates the printer named by cfg.Type.
func New(cfg Config) (Printer, error) {
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for usb printer type")
		}
		return NewUSBPrinter(cfg.USBPath), nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address), nil
	case "file":
		if cfg.SpoolDir == "" {
			return nil, fmt.Errorf("printer: spool dir is required for file printer type")
		}
		return NewFilePrinter(cfg.SpoolDir), nil
	case "none", "":
		return NewNullPrinter(), nil
	}
	return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, file or none)", cfg.Type)
}
