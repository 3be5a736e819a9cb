package diagnostics

import (
	"errors"
	"net"

	"github.com/coreman2200/rgbshades/internal/led"
	"github.com/coreman2200/rgbshades/internal/render"
)

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

// DriverWrite explains a failed frame flush.
func DriverWrite(err error) Diagnostic {
	d := Diagnostic{
		Severity: Err,
		Code:     "DRIVER.WRITE",
		Summary:  "Frame could not be written to the LED sink",
		Detail:   err.Error(),
	}
	var ne net.Error
	switch {
	case errors.Is(err, led.ErrLength):
		d.Code = "DRIVER.LENGTH"
		d.LikelyCauses = []string{"layout physical count differs from the strip length"}
		d.SuggestedFixes = []string{"check layout.kind and the LED count of the strip"}
	case errors.Is(err, led.ErrClosed):
		d.Code = "DRIVER.CLOSED"
		d.Severity = Warn
		d.LikelyCauses = []string{"sink closed during shutdown"}
	case errors.As(err, &ne):
		d.Code = "DRIVER.NETWORK"
		d.Severity = Warn
		d.LikelyCauses = []string{"OPC server not running", "wrong opc.addr"}
		d.SuggestedFixes = []string{"start fcserver or fix opc.addr; the sink redials on the next frame"}
		d.Evidence = map[string]any{"timeout": ne.Timeout()}
	default:
		d.LikelyCauses = []string{"SPI port busy or missing", "insufficient permissions on /dev/spidev*"}
		d.SuggestedFixes = []string{"enable SPI and run with access to the device"}
	}
	return d
}

// Command explains a rejected control command.
func Command(name string, err error) Diagnostic {
	d := Diagnostic{
		Severity: Warn,
		Code:     "CONTROL.INVALID",
		Summary:  "Control command rejected",
		Detail:   err.Error(),
		Evidence: map[string]any{"cmd": name},
	}
	switch {
	case errors.Is(err, render.ErrUnknownEffect):
		d.Code = "CONTROL.UNKNOWN_EFFECT"
		d.SuggestedFixes = []string{"GET /health lists the effect count; select by name or a valid index"}
	case errors.Is(err, render.ErrQueueFull):
		d.Code = "CONTROL.QUEUE_FULL"
		d.LikelyCauses = []string{"commands arrive faster than the engine ticks"}
	}
	return d
}

// Activated reports an effect change.
func Activated(s render.Status) Diagnostic {
	return Diagnostic{
		Severity: Info,
		Code:     "EFFECT.ACTIVE",
		Summary:  "Effect changed",
		Detail:   s.Effect,
		Evidence: map[string]any{"index": s.Index, "brightness": s.Brightness, "auto_cycle": s.AutoCycle},
	}
}
