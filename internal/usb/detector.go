// Package usb detects USB mass-storage insertions from kernel log lines.
//
// The kernel announces an insertion across several syslog lines: the USB
// subsystem notices the device, the controller driver (uhci for USB 1.x,
// xhci for USB 3.x) claims it, the mass-storage driver attaches, and the
// block layer assigns a device name. A Detector accumulates that evidence
// line by line and reports once all of it has been seen.
package usb

import (
	"fmt"
	"strings"
)

// Markers matched against each log line.
const (
	markerUSB     = "USB"
	markerUHCI    = "uhci"
	markerXHCI    = "xhci"
	markerInsert  = "USB Mass Storage device detected"
	markerBlockSD = "sdb"
)

// Detection describes a confirmed USB mass-storage insertion.
type Detection struct {
	// Controller is the host controller family, "uhci" or "xhci".
	Controller string
	// Device is the kernel block device name, e.g. "sdb", when one was
	// seen before the detection completed.
	Device string
}

func (d Detection) String() string {
	msg := fmt.Sprintf("USB mass storage inserted on a %s controller", d.Controller)
	if d.Device != "" {
		msg += fmt.Sprintf(" (device %s)", d.Device)
	}
	return msg
}

// Detector accumulates evidence of a USB mass-storage insertion across log
// lines. The zero value is ready to use. State is scoped to the Detector;
// feeding two log streams requires two Detectors.
type Detector struct {
	sawUSB    bool
	sawInsert bool
	sawUHCI   bool
	sawXHCI   bool
	device    string
}

// Scan folds one batch of log lines into the detector state and reports
// whether an insertion is now confirmed. Once confirmed, the same detection
// is reported on every subsequent call.
func (d *Detector) Scan(lines [][]byte) (Detection, bool) {
	for _, line := range lines {
		s := string(line)
		if strings.Contains(s, markerUSB) {
			d.sawUSB = true
		}
		if strings.Contains(s, markerUHCI) {
			d.sawUHCI = true
		}
		if strings.Contains(s, markerXHCI) {
			d.sawXHCI = true
		}
		if strings.Contains(s, markerInsert) {
			d.sawInsert = true
		}
		if strings.Contains(s, markerBlockSD) {
			d.device = markerBlockSD
		}
	}
	return d.Detection()
}

// Detection reports the current conclusion without consuming new lines.
// An insertion is confirmed once the USB subsystem, the mass-storage driver,
// and one controller family have all been seen.
func (d *Detector) Detection() (Detection, bool) {
	if !d.sawUSB || !d.sawInsert {
		return Detection{}, false
	}
	switch {
	case d.sawUHCI:
		return Detection{Controller: "uhci", Device: d.device}, true
	case d.sawXHCI:
		return Detection{Controller: "xhci", Device: d.device}, true
	}
	return Detection{}, false
}
