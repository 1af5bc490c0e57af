package ipc

import (
	"log"

	"github.com/oss6/pagesim"
)

// LoggingChannel decorates a Channel, writing one line per message that
// crosses it. It mirrors portmsglogger.go's pattern of hooking message
// traffic rather than event traffic, adapted from a Hook into a decorator
// since Channel, unlike a akita Port, is a plain interface with no
// Hookable of its own.
type LoggingChannel struct {
	Channel
	Logger *log.Logger
}

// NewLoggingChannel wraps ch so that every request and response is also
// written to logger. cmd/oss does not wrap its channel with it; its
// logfile mirror is an io.MultiWriter on the logger itself.
func NewLoggingChannel(ch Channel, logger *log.Logger) *LoggingChannel {
	return &LoggingChannel{Channel: ch, Logger: logger}
}

// SendRequest logs req before delegating.
func (c *LoggingChannel) SendRequest(req pagesim.Request) error {
	c.Logger.Printf("req  pid=%d addr=%d write=%v id=%s", req.Pid, req.Address, req.IsWrite, req.ID)
	return c.Channel.SendRequest(req)
}

// SendResponse logs resp before delegating.
func (c *LoggingChannel) SendResponse(resp pagesim.Response) error {
	c.Logger.Printf("resp pid=%d granted=%v id=%s", resp.ToPid, resp.Granted, resp.ID)
	return c.Channel.SendResponse(resp)
}
