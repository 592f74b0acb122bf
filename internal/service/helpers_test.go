package service

import (
	"ai-docgen-be/pkg/events"
)

// nopLogger satisfies logger.ILogger for tests.
type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

// capturePublisher records published events instead of fanning them out.
type capturePublisher struct {
	published []events.Event
}

func (p *capturePublisher) Publish(event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func (p *capturePublisher) lastType() string {
	if len(p.published) == 0 {
		return ""
	}
	return p.published[len(p.published)-1].EventType()
}
