package diagnostics

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/coreman2200/rgbshades/internal/led"
	"github.com/coreman2200/rgbshades/internal/render"
)

func TestDriverWriteCodes(t *testing.T) {
	cases := []struct {
		err  error
		code string
		sev  Severity
	}{
		{fmt.Errorf("driver write: %w", led.ErrLength), "DRIVER.LENGTH", Err},
		{led.ErrClosed, "DRIVER.CLOSED", Warn},
		{&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, "DRIVER.NETWORK", Warn},
		{errors.New("spi: busy"), "DRIVER.WRITE", Err},
	}
	for _, tc := range cases {
		d := DriverWrite(tc.err)
		assert.Equal(t, tc.code, d.Code, tc.err.Error())
		assert.Equal(t, tc.sev, d.Severity, tc.err.Error())
		assert.Equal(t, tc.err.Error(), d.Detail)
	}
}

func TestCommandCodes(t *testing.T) {
	d := Command("select", fmt.Errorf("select %q: %w", "x", render.ErrUnknownEffect))
	assert.Equal(t, "CONTROL.UNKNOWN_EFFECT", d.Code)
	assert.Equal(t, "select", d.Evidence["cmd"])

	assert.Equal(t, "CONTROL.QUEUE_FULL", Command("next", render.ErrQueueFull).Code)
	assert.Equal(t, "CONTROL.INVALID", Command("zap", errors.New("unknown command")).Code)
}
