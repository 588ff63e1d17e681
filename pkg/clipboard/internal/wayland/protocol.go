//go:build linux

// Package wayland owns the Wayland clipboard through the wlr data-control
// protocol and serves a fixed set of MIME types until another client takes
// the selection.
package wayland

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

var le = binary.LittleEndian

// ErrNoDataControl is returned when the compositor does not offer
// zwlr_data_control_manager_v1 (GNOME, for example).
var ErrNoDataControl = errors.New("wayland: compositor does not support wlr-data-control")

// Fixed object IDs in the client range.
const (
	idDisplay   uint32 = 1
	idRegistry  uint32 = 2
	idCallback1 uint32 = 3
	idSeat      uint32 = 4
	idDCManager uint32 = 5
	idDCSource  uint32 = 6
	idDCDevice  uint32 = 7
	idCallback2 uint32 = 8
)

const (
	opDisplaySync        uint16 = 0
	opDisplayGetRegistry uint16 = 1
	opRegistryBind       uint16 = 0
	opManagerCreateSrc   uint16 = 0
	opManagerGetDevice   uint16 = 1
	opSourceOffer        uint16 = 0
	opDeviceSetSelection uint16 = 0

	evRegistryGlobal uint16 = 0
	evCallbackDone   uint16 = 0
	evSourceSend     uint16 = 0
	evSourceCancel   uint16 = 1
)

type conn struct {
	fd         int
	inBuf      []byte
	pendingFds []int
}

type message struct {
	objectID uint32
	opcode   uint16
	payload  []byte
	fd       int
}

// SocketPath returns the compositor socket from XDG_RUNTIME_DIR and
// WAYLAND_DISPLAY.
func SocketPath() (string, error) {
	display := os.Getenv("WAYLAND_DISPLAY")
	if filepath.IsAbs(display) {
		return display, nil
	}
	if display == "" {
		display = "wayland-0"
	}
	runtime := os.Getenv("XDG_RUNTIME_DIR")
	if runtime == "" {
		return "", fmt.Errorf("wayland: XDG_RUNTIME_DIR not set")
	}
	return filepath.Join(runtime, display), nil
}

func dial(sockPath string) (*conn, error) {
	fd, err := syscall.Socket(syscall.AF_UNIX, syscall.SOCK_STREAM, 0)
	if err != nil {
		return nil, err
	}
	if err := syscall.Connect(fd, &syscall.SockaddrUnix{Name: sockPath}); err != nil {
		syscall.Close(fd) //nolint:errcheck
		return nil, err
	}
	return &conn{fd: fd}, nil
}

func (c *conn) close() {
	syscall.Close(c.fd) //nolint:errcheck
}

func (c *conn) send(objectID uint32, opcode uint16, args ...[]byte) error {
	var body []byte
	for _, a := range args {
		body = append(body, a...)
	}
	size := 8 + len(body)
	buf := make([]byte, size)
	le.PutUint32(buf[0:], objectID)
	le.PutUint32(buf[4:], uint32(opcode)|uint32(size)<<16)
	copy(buf[8:], body)
	_, err := syscall.Write(c.fd, buf)
	return err
}

// next returns the next complete event. fd is -1 unless the event carried a
// file descriptor through SCM_RIGHTS.
func (c *conn) next() (message, error) {
	for {
		if len(c.inBuf) >= 8 {
			sizeOpcode := le.Uint32(c.inBuf[4:8])
			size := int(sizeOpcode >> 16)
			if size >= 8 && len(c.inBuf) >= size {
				m := message{
					objectID: le.Uint32(c.inBuf[0:4]),
					opcode:   uint16(sizeOpcode & 0xffff),
					payload:  append([]byte(nil), c.inBuf[8:size]...),
					fd:       -1,
				}
				c.inBuf = c.inBuf[size:]
				if len(c.pendingFds) > 0 {
					m.fd = c.pendingFds[0]
					c.pendingFds = c.pendingFds[1:]
				}
				return m, nil
			}
		}

		buf := make([]byte, 4096)
		oob := make([]byte, syscall.CmsgSpace(4*8))
		n, oobn, _, _, err := syscall.Recvmsg(c.fd, buf, oob, 0)
		if err != nil {
			return message{}, err
		}
		if n == 0 {
			return message{}, fmt.Errorf("wayland: connection closed")
		}
		c.inBuf = append(c.inBuf, buf[:n]...)

		if oobn > 0 {
			scms, err := syscall.ParseSocketControlMessage(oob[:oobn])
			if err != nil {
				continue
			}
			for _, scm := range scms {
				if rights, err := syscall.ParseUnixRights(&scm); err == nil {
					c.pendingFds = append(c.pendingFds, rights...)
				}
			}
		}
	}
}

// sync sends wl_display.sync and hands every event to handle until the
// callback fires. Stray file descriptors are closed.
func (c *conn) sync(callbackID uint32, handle func(message)) error {
	if err := c.send(idDisplay, opDisplaySync, u32(callbackID)); err != nil {
		return err
	}
	for {
		m, err := c.next()
		if err != nil {
			return err
		}
		if m.fd >= 0 {
			syscall.Close(m.fd) //nolint:errcheck
		}
		if m.objectID == callbackID && m.opcode == evCallbackDone {
			return nil
		}
		if handle != nil {
			handle(m)
		}
	}
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	le.PutUint32(b, v)
	return b
}

// str encodes a Wayland string: length including NUL, bytes, padding to 4.
func str(s string) []byte {
	raw := append([]byte(s), 0)
	padded := (len(raw) + 3) &^ 3
	buf := make([]byte, 4+padded)
	le.PutUint32(buf[0:], uint32(len(raw)))
	copy(buf[4:], raw)
	return buf
}

func decodeString(data []byte) (string, []byte, error) {
	if len(data) < 4 {
		return "", data, fmt.Errorf("wayland: short string length field")
	}
	length := int(le.Uint32(data[:4]))
	data = data[4:]
	if length == 0 {
		return "", data, nil
	}
	padded := (length + 3) &^ 3
	if len(data) < padded {
		return "", data, fmt.Errorf("wayland: short string data")
	}
	return string(data[:length-1]), data[padded:], nil
}

type globals struct {
	seat, manager           uint32
	seatFound, managerFound bool
}

// discover lists the registry globals clipboard ownership needs.
func discover(c *conn) (globals, error) {
	var g globals
	if err := c.send(idDisplay, opDisplayGetRegistry, u32(idRegistry)); err != nil {
		return g, err
	}
	err := c.sync(idCallback1, func(m message) {
		if m.objectID != idRegistry || m.opcode != evRegistryGlobal || len(m.payload) < 4 {
			return
		}
		name := le.Uint32(m.payload[:4])
		iface, _, err := decodeString(m.payload[4:])
		if err != nil {
			return
		}
		switch iface {
		case "wl_seat":
			g.seat, g.seatFound = name, true
		case "zwlr_data_control_manager_v1":
			g.manager, g.managerFound = name, true
		}
	})
	if err != nil {
		return g, err
	}
	if !g.seatFound {
		return g, fmt.Errorf("wayland: wl_seat not found")
	}
	if !g.managerFound {
		return g, ErrNoDataControl
	}
	return g, nil
}

func connect() (*conn, error) {
	sockPath, err := SocketPath()
	if err != nil {
		return nil, err
	}
	c, err := dial(sockPath)
	if err != nil {
		return nil, fmt.Errorf("wayland: connect %s: %w", sockPath, err)
	}
	return c, nil
}

// Probe reports whether the compositor lets a client own the clipboard
// through data-control. It returns ErrNoDataControl when it does not.
func Probe() error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.close()
	_, err = discover(c)
	return err
}

// Serve takes the clipboard selection and answers paste requests for the
// given MIME types, in the order they are offered, until the selection is
// cancelled or the compositor goes away.
func Serve(order []string, formats map[string][]byte) error {
	c, err := connect()
	if err != nil {
		return err
	}
	defer c.close()

	g, err := discover(c)
	if err != nil {
		return err
	}

	// wl_registry.bind with an untyped new_id: name, interface, version, id.
	if err := c.send(idRegistry, opRegistryBind, u32(g.seat), str("wl_seat"), u32(1), u32(idSeat)); err != nil {
		return err
	}
	if err := c.send(idRegistry, opRegistryBind, u32(g.manager), str("zwlr_data_control_manager_v1"), u32(2), u32(idDCManager)); err != nil {
		return err
	}
	if err := c.send(idDCManager, opManagerCreateSrc, u32(idDCSource)); err != nil {
		return err
	}
	for _, mimeType := range order {
		if _, ok := formats[mimeType]; !ok {
			continue
		}
		if err := c.send(idDCSource, opSourceOffer, str(mimeType)); err != nil {
			return err
		}
	}
	if err := c.send(idDCManager, opManagerGetDevice, u32(idDCDevice), u32(idSeat)); err != nil {
		return err
	}
	if err := c.send(idDCDevice, opDeviceSetSelection, u32(idDCSource)); err != nil {
		return err
	}
	if err := c.sync(idCallback2, nil); err != nil {
		return err
	}

	for {
		m, err := c.next()
		if err != nil {
			// compositor exited
			return nil
		}
		if m.objectID != idDCSource {
			if m.fd >= 0 {
				syscall.Close(m.fd) //nolint:errcheck
			}
			continue
		}

		switch m.opcode {
		case evSourceSend:
			mimeType, _, _ := decodeString(m.payload)
			if m.fd >= 0 {
				if data, ok := formats[mimeType]; ok {
					writeAll(m.fd, data)
				}
				syscall.Close(m.fd) //nolint:errcheck
			}
		case evSourceCancel:
			return nil
		}
	}
}

func writeAll(fd int, data []byte) {
	for len(data) > 0 {
		n, err := syscall.Write(fd, data)
		if err != nil || n <= 0 {
			return
		}
		data = data[n:]
	}
}
