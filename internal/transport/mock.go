// internal/transport/mock.go
package transport

import (
	"sync"
)

// MockTransport implements Transport for testing.
// Replies queued with Reply are delivered into the receive buffer when the
// matching frame is written.
type MockTransport struct {
	mu sync.Mutex

	Written [][]byte

	WriteErr     error
	AvailableErr error
	ReadErr      error
	CloseErr     error

	// Chunk caps how many bytes each BytesAvailable/Read exposes (0 = all).
	Chunk int

	ResetInputCalls  int
	ResetOutputCalls int
	CloseCalls       int
	Closed           bool

	inbox   []byte
	replies map[string][]string
}

// NewMockTransport returns an open mock with nothing queued.
func NewMockTransport() *MockTransport {
	return &MockTransport{replies: make(map[string][]string)}
}

// Reply queues raw to be received after the next write of mnemonic.
func (m *MockTransport) Reply(mnemonic, raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.replies == nil {
		m.replies = make(map[string][]string)
	}
	m.replies[mnemonic] = append(m.replies[mnemonic], raw)
}

// Feed makes raw available to read immediately.
func (m *MockTransport) Feed(raw string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inbox = append(m.inbox, raw...)
}

// LastWrite returns the most recent frame written, or nil.
func (m *MockTransport) LastWrite() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Written) == 0 {
		return nil
	}
	return m.Written[len(m.Written)-1]
}

// Writes returns every frame written so far as strings.
func (m *MockTransport) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Written))
	for i, w := range m.Written {
		out[i] = string(w)
	}
	return out
}

func (m *MockTransport) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, ErrClosed
	}
	if m.WriteErr != nil {
		return 0, m.WriteErr
	}

	frame := append([]byte(nil), p...)
	m.Written = append(m.Written, frame)

	// <mnemonic><4 hex><CR>
	if len(frame) >= 5 {
		mnemonic := string(frame[:len(frame)-5])
		if q := m.replies[mnemonic]; len(q) > 0 {
			m.inbox = append(m.inbox, q[0]...)
			m.replies[mnemonic] = q[1:]
		}
	}
	return len(p), nil
}

func (m *MockTransport) BytesAvailable() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, ErrClosed
	}
	if m.AvailableErr != nil {
		return 0, m.AvailableErr
	}
	return m.visible(), nil
}

func (m *MockTransport) Read(n int) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return nil, ErrClosed
	}
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	n = min(n, m.visible())
	out := append([]byte(nil), m.inbox[:n]...)
	m.inbox = m.inbox[n:]
	return out, nil
}

func (m *MockTransport) visible() int {
	if m.Chunk > 0 && len(m.inbox) > m.Chunk {
		return m.Chunk
	}
	return len(m.inbox)
}

func (m *MockTransport) ResetInputBuffer() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetInputCalls++
	m.inbox = nil
	return nil
}

func (m *MockTransport) ResetOutputBuffer() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResetOutputCalls++
	return nil
}

func (m *MockTransport) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.Closed
}

func (m *MockTransport) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalls++
	m.Closed = true
	return m.CloseErr
}
