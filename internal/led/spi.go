package led

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"
)

// SPIConfig selects the port and encoding for a WS281x strip on SPI.
type SPIConfig struct {
	Port       string // spireg name, "" picks the first port
	Count      int
	// ColorOrder permutes each pixel before nrzled, which already sends
	// GRB on the wire. "RGB" (default) suits WS2812 strips.
	ColorOrder string
	Freq       physic.Frequency
}

// SPI drives a WS281x strip through periph's NRZ encoder.
type SPI struct {
	mu    sync.Mutex
	port  spi.PortCloser // nil when the port is owned by the caller
	dev   *nrzled.Dev
	count int
	order [3]byte
	buf   []byte
}

// OpenSPI initialises the periph host drivers and opens cfg.Port.
func OpenSPI(cfg SPIConfig) (*SPI, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	p, err := spireg.Open(cfg.Port)
	if err != nil {
		return nil, fmt.Errorf("open spi %q: %w", cfg.Port, err)
	}
	s, err := NewSPI(p, cfg)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	s.port = p
	return s, nil
}

// NewSPI wraps an already-open port.
func NewSPI(p spi.Port, cfg SPIConfig) (*SPI, error) {
	if cfg.Count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", cfg.Count)
	}
	if cfg.Freq == 0 {
		cfg.Freq = 2500 * physic.KiloHertz
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: cfg.Count,
		Channels:  3,
		Freq:      cfg.Freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	s := &SPI{
		dev:   d,
		count: cfg.Count,
		order: [3]byte{'R', 'G', 'B'},
		buf:   make([]byte, cfg.Count*3),
	}
	if len(cfg.ColorOrder) == 3 {
		s.order = [3]byte{cfg.ColorOrder[0], cfg.ColorOrder[1], cfg.ColorOrder[2]}
	}
	return s, nil
}

func (s *SPI) reorder(dst []byte, r, g, b byte) {
	for i, ch := range s.order {
		switch ch {
		case 'G':
			dst[i] = g
		case 'B':
			dst[i] = b
		default:
			dst[i] = r
		}
	}
}

// Write takes len(rgb)==3*count.
func (s *SPI) Write(rgb []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.dev == nil {
		return ErrClosed
	}
	if len(rgb) != s.count*3 {
		return fmt.Errorf("%w: %d bytes for %d LEDs", ErrLength, len(rgb), s.count)
	}
	for i := 0; i < s.count; i++ {
		s.reorder(s.buf[i*3:i*3+3], rgb[i*3], rgb[i*3+1], rgb[i*3+2])
	}
	if _, err := s.dev.Write(s.buf); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (s *SPI) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Halt()
	s.dev = nil
	if s.port != nil {
		if cerr := s.port.Close(); err == nil {
			err = cerr
		}
		s.port = nil
	}
	return err
}

func (s *SPI) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return "spi{closed}"
	}
	return s.dev.String()
}
