// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package manager

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/synadia-io/orbit.go/natscontext"

	"github.com/choria-io/swan/model"
)

const (
	// DefaultEventSubject is the subject prefix events are published to
	DefaultEventSubject = "swan.events"

	closeFlushTimeout = 5 * time.Second
)

var _ model.EventPublisher = (*natsPublisher)(nil)

type natsPublisher struct {
	natsContext string
	subject     string
	log         model.Logger
	nc          *nats.Conn
	mu          sync.Mutex
}

func newNatsPublisher(natsContext string, subject string, log model.Logger) (*natsPublisher, error) {
	if subject == "" {
		subject = DefaultEventSubject
	}

	if strings.ContainsAny(subject, " \t\r\n*>") || strings.HasSuffix(subject, ".") {
		return nil, fmt.Errorf("%w: invalid event subject %q", model.ErrInvalidConfig, subject)
	}

	return &natsPublisher{natsContext: natsContext, subject: subject, log: log}, nil
}

func (p *natsPublisher) connect() (*nats.Conn, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.nc != nil {
		return p.nc, nil
	}

	var err error

	p.log.Debug("Connecting to NATS")
	p.nc, _, err = natscontext.Connect(p.natsContext, nats.Name("swan"))
	if err != nil {
		return nil, err
	}

	return p.nc, nil
}

func (p *natsPublisher) subjectFor(event *model.CommandEvent) string {
	return fmt.Sprintf("%s.%s", p.subject, event.Verb)
}

func (p *natsPublisher) payload(event *model.CommandEvent) ([]byte, error) {
	return json.Marshal(event)
}

// Publish sends the event to the subject for its verb
func (p *natsPublisher) Publish(event *model.CommandEvent) error {
	data, err := p.payload(event)
	if err != nil {
		return err
	}

	nc, err := p.connect()
	if err != nil {
		return fmt.Errorf("could not connect to NATS: %w", err)
	}

	subject := p.subjectFor(event)
	p.log.Debug("Publishing event", "subject", subject, "event", event.EventID)

	return nc.Publish(subject, data)
}

// Close flushes unsent events to the server and closes the connection, it returns once the connection is closed
func (p *natsPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.nc == nil {
		return nil
	}

	nc := p.nc
	p.nc = nil

	p.log.Debug("Flushing events to NATS")
	err := nc.FlushTimeout(closeFlushTimeout)
	nc.Close()

	if err != nil {
		return fmt.Errorf("could not flush events: %w", err)
	}

	return nil
}
