package driver

import (
	"context"
	"fmt"

	"controlling_servo/internal/models"
)

// Servo is the hardware interface the service commands. Move blocks until the
// command has been issued to the actuator; there is no acknowledgment channel
// from the horn itself.
type Servo interface {
	// Move drives the servo to deg (clamped to 0..180) and returns the
	// position actually written.
	Move(ctx context.Context, deg int) (int, error)
	Close() error
}

// Driver modes accepted in configuration.
const (
	ModeSim       = "sim"
	ModeModbusTCP = "modbus-tcp"
	ModeModbusRTU = "modbus-rtu"
)

// Config selects and parameterizes the driver implementation.
type Config struct {
	Mode     string // sim | modbus-tcp | modbus-rtu
	Address  string // host:port for TCP, device path for RTU
	SlaveID  byte
	Register uint16 // holding register receiving the angle
	BaudRate int    // RTU only
}

// New builds the driver selected by cfg.
func New(cfg Config) (Servo, error) {
	switch cfg.Mode {
	case ModeSim, "":
		return NewSim(), nil
	case ModeModbusTCP, ModeModbusRTU:
		return newModbusServo(cfg)
	default:
		return nil, fmt.Errorf("unknown servo driver %q", cfg.Mode)
	}
}

// clamp mirrors the firmware behavior: any write is forced into range rather
// than rejected at this layer.
func clamp(deg int) int {
	return models.ClampPosition(deg)
}
