package led

import (
	"fmt"
	"net"
	"sync"
	"time"
)

// OPC sends frames to an Open Pixel Control server such as a fadecandy
// fcserver. The connection is dialled lazily and re-dialled after a failed
// write.
type OPC struct {
	Addr    string
	Channel byte
	Timeout time.Duration

	mu   sync.Mutex
	conn net.Conn
	msg  []byte
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
}

const opcSetPixels = 0

func NewOPC(addr string, channel byte) *OPC {
	return &OPC{
		Addr:    addr,
		Channel: channel,
		Timeout: 200 * time.Millisecond,
		dial:    net.DialTimeout,
	}
}

// Message encodes one set-pixel-colours command.
func (o *OPC) Message(dst []byte, rgb []byte) []byte {
	n := len(rgb)
	if n > 0xffff {
		n = 0xffff - 0xffff%3
	}
	dst = append(dst[:0], o.Channel, opcSetPixels, byte(n>>8), byte(n))
	return append(dst, rgb[:n]...)
}

func (o *OPC) Write(rgb []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.conn == nil {
		c, err := o.dial("tcp", o.Addr, o.Timeout)
		if err != nil {
			return fmt.Errorf("opc dial %s: %w", o.Addr, err)
		}
		o.conn = c
	}
	o.msg = o.Message(o.msg, rgb)
	_ = o.conn.SetWriteDeadline(time.Now().Add(o.Timeout))
	if _, err := o.conn.Write(o.msg); err != nil {
		_ = o.conn.Close()
		o.conn = nil
		return fmt.Errorf("opc write: %w", err)
	}
	return nil
}

func (o *OPC) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.conn == nil {
		return nil
	}
	err := o.conn.Close()
	o.conn = nil
	return err
}
