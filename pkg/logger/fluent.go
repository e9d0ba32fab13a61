package logger

import (
	"fmt"
	"strings"

	"github.com/fluent/fluent-logger-golang/fluent"
)

type poster interface {
	Post(tag string, message interface{}) error
}

// FluentWriter forwards every log line to Fluent Bit as a {"log": line} record.
type FluentWriter struct {
	client poster
	tag    string
}

// NewFluentWriter connects to a Fluent Bit forward input.
func NewFluentWriter(host string, port int, tag string) (*FluentWriter, *fluent.Fluent, error) {
	client, err := fluent.New(fluent.Config{
		FluentHost: host,
		FluentPort: port,
		Async:      true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to fluent bit at %s:%d: %w", host, port, err)
	}
	return &FluentWriter{client: client, tag: tag}, client, nil
}

func (w *FluentWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if err := w.client.Post(w.tag, map[string]string{"log": line}); err != nil {
		return 0, err
	}
	return len(p), nil
}
