package logging

import (
	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/writers"
)

// discardWriter drops every event.
type discardWriter struct{}

func (w discardWriter) WithLevel(log.Level) writers.IWriter { return w }
func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
func (discardWriter) GetFilePath() string { return "" }
func (discardWriter) Close() error { return nil }

// Discard returns a logger that writes nowhere. It owns a private writer, so
// writers registered globally by New are never reached.
func Discard() arbor.ILogger {
	return arbor.NewLogger().WithWriters([]writers.IWriter{discardWriter{}})
}
