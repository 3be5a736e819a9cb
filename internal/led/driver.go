package led

import "errors"

var (
	ErrClosed = errors.New("led: driver closed")
	ErrLength = errors.New("led: frame length does not match LED count")
)

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}

// Fanout writes every frame to several sinks, continuing past failures and
// returning them joined.
type Fanout []Driver

func (f Fanout) Write(rgb []byte) error {
	var errs []error
	for _, d := range f {
		if err := d.Write(rgb); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f Fanout) Close() error {
	var errs []error
	for _, d := range f {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
