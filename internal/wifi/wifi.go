package wifi

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// SignalReader reports the control-link signal strength in dBm.
type SignalReader interface {
	Strength() (int, error)
}

const procWireless = "/proc/net/wireless"

// ProcReader reads the RSSI of one wireless interface from /proc/net/wireless.
type ProcReader struct {
	iface string
	path  string
}

// New returns a reader for the named interface (e.g. "wlan0").
func New(iface string) *ProcReader {
	return &ProcReader{iface: iface, path: procWireless}
}

// Strength returns the signal level in dBm for the configured interface.
func (r *ProcReader) Strength() (int, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return 0, fmt.Errorf("wifi: open %s: %w", r.path, err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		level, ok := parseLine(sc.Text(), r.iface)
		if ok {
			return level, nil
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("wifi: read %s: %w", r.path, err)
	}
	return 0, fmt.Errorf("wifi: interface %q not found in %s", r.iface, r.path)
}

// parseLine extracts the signal level from a /proc/net/wireless data row:
//
//	wlan0: 0000   54.  -56.  -256        0      0      0      0      0        0
//
// Column 4 is the signal level; values carry a trailing dot.
func parseLine(line, iface string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 || fields[0] != iface+":" {
		return 0, false
	}
	level, err := strconv.ParseFloat(strings.TrimSuffix(fields[3], "."), 64)
	if err != nil {
		return 0, false
	}
	return int(level), true
}
