package driver

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

const modbusTimeout = 1 * time.Second

// modbusServo drives a pan-unit controller that maps the servo angle onto a
// holding register. It serializes writes: the goburrow client is not safe for
// concurrent use.
type modbusServo struct {
	mu       sync.Mutex
	client   modbus.Client
	closeFn  func() error
	register uint16
}

func newModbusServo(cfg Config) (*modbusServo, error) {
	if cfg.Address == "" {
		return nil, errors.New("servo driver: address required")
	}

	var (
		client  modbus.Client
		closeFn func() error
	)

	switch cfg.Mode {
	case ModeModbusTCP:
		h := modbus.NewTCPClientHandler(cfg.Address)
		h.Timeout = modbusTimeout
		h.SlaveId = cfg.SlaveID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("servo driver: connect %s: %w", cfg.Address, err)
		}
		client = modbus.NewClient(h)
		closeFn = h.Close
	case ModeModbusRTU:
		h := modbus.NewRTUClientHandler(cfg.Address)
		h.Timeout = modbusTimeout
		h.SlaveId = cfg.SlaveID
		if cfg.BaudRate > 0 {
			h.BaudRate = cfg.BaudRate
		}
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("servo driver: open %s: %w", cfg.Address, err)
		}
		client = modbus.NewClient(h)
		closeFn = h.Close
	default:
		return nil, fmt.Errorf("servo driver: unsupported modbus mode %q", cfg.Mode)
	}

	return &modbusServo{
		client:   client,
		closeFn:  closeFn,
		register: cfg.Register,
	}, nil
}

// Move writes the clamped angle to the configured holding register.
// The goburrow API carries no context; ctx is honored only as an early-out.
func (m *modbusServo) Move(ctx context.Context, deg int) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	deg = clamp(deg)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := m.client.WriteSingleRegister(m.register, uint16(deg)); err != nil {
		return 0, fmt.Errorf("servo driver: write register %d: %w", m.register, err)
	}
	return deg, nil
}

func (m *modbusServo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closeFn()
}
