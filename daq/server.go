// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package daq

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-daq/tdaq"
	"github.com/go-lpc/ats/footer"
	"github.com/prometheus/client_golang/prometheus"
)

// Server decodes the footers of incoming acquisition buffers.
type Server struct {
	name string
	size int // capacity of the output queue

	mu  sync.Mutex // guards the configuration, the output queue and the counters
	cfg footer.Configuration
	ft  footer.FooterType
	ok  bool // whether a valid configuration was received

	data chan []byte

	nseq  int // number of received buffers
	nbufs int // number of decoded buffers
	nerrs int // number of rejected buffers
	ndrop int // number of dropped outputs
	nfoot int // number of decoded footers

	metrics *metrics
}

// NewServer creates a new footer-decoding server.
// size is the number of decoded buffers queued before outputs get dropped.
func NewServer(name string, size int) *Server {
	if size <= 0 {
		size = 1024
	}
	return &Server{
		name:    name,
		size:    size,
		data:    make(chan []byte, size),
		metrics: newMetrics(name),
	}
}

// Register registers the server metrics with reg.
func (srv *Server) Register(reg prometheus.Registerer) error {
	for _, c := range srv.metrics.collectors() {
		err := reg.Register(c)
		if err != nil {
			return fmt.Errorf("daq: could not register metrics: %w", err)
		}
	}
	return nil
}

// Config returns the current acquisition configuration.
func (srv *Server) Config() (footer.Configuration, bool) {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.cfg, srv.ok
}

func (srv *Server) configured() bool {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	return srv.ok
}

func (srv *Server) reset() {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.data = make(chan []byte, srv.size)
	srv.nseq = 0
	srv.nbufs = 0
	srv.nerrs = 0
	srv.ndrop = 0
	srv.nfoot = 0
	srv.metrics.queue.Set(0)
}

func (srv *Server) OnConfig(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /config command...")

	cfg, err := UnmarshalConfig(req.Body)
	if err != nil {
		ctx.Msg.Errorf("could not decode configuration: %+v", err)
		return fmt.Errorf("could not decode configuration: %w", err)
	}

	err = cfg.Validate()
	if err != nil {
		ctx.Msg.Errorf("invalid configuration: %+v", err)
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ft := footer.FooterTypeOf(cfg.Board)
	size, err := footer.BufferSize(cfg, ft)
	if err != nil {
		ctx.Msg.Errorf("invalid configuration: %+v", err)
		return fmt.Errorf("could not compute buffer size: %w", err)
	}

	srv.mu.Lock()
	srv.cfg = cfg
	srv.ft = ft
	srv.ok = true
	srv.mu.Unlock()

	ctx.Msg.Infof(
		"configured %s: channels=%d, layout=%s, domain=%s, footers=%s, buffer=%d bytes",
		cfg.Board, cfg.Channels, cfg.Layout, cfg.Domain, ft, size,
	)
	return nil
}

func (srv *Server) OnInit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /init command...")
	if !srv.configured() {
		ctx.Msg.Errorf("no configuration received")
		return fmt.Errorf("daq: server %q not configured", srv.name)
	}
	srv.reset()
	return nil
}

func (srv *Server) OnReset(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /reset command...")
	srv.reset()
	return nil
}

func (srv *Server) OnStart(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /start command...")
	if !srv.configured() {
		ctx.Msg.Errorf("no configuration received")
		return fmt.Errorf("daq: server %q not configured", srv.name)
	}
	return nil
}

func (srv *Server) OnStop(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	ctx.Msg.Debugf(
		"received /stop command... -> buffers=%d, footers=%d, rejected=%d, dropped=%d",
		srv.nbufs, srv.nfoot, srv.nerrs, srv.ndrop,
	)
	return nil
}

func (srv *Server) OnQuit(ctx tdaq.Context, resp *tdaq.Frame, req tdaq.Frame) error {
	ctx.Msg.Debugf("received /quit command...")
	return nil
}

// ADC decodes the footers of an acquisition buffer.
// Buffers that can not be decoded are logged and skipped.
func (srv *Server) ADC(ctx tdaq.Context, src tdaq.Frame) error {
	srv.mu.Lock()
	if !srv.ok {
		srv.mu.Unlock()
		return fmt.Errorf("daq: server %q not configured", srv.name)
	}
	var (
		cfg = srv.cfg
		fs  = Footers{
			Buffer: uint32(srv.nseq),
			Type:   srv.ft,
		}
	)
	srv.nseq++
	srv.mu.Unlock()

	var (
		err   error
		start = time.Now()
	)
	switch fs.Type {
	case footer.FooterType1:
		fs.F1, err = footer.Read1(src.Body, cfg)
	default:
		fs.F0, err = footer.Read0(src.Body, cfg)
	}
	srv.metrics.observe(start)
	if err != nil {
		srv.mu.Lock()
		srv.nerrs++
		srv.mu.Unlock()
		srv.metrics.rejected.WithLabelValues(kindOf(err)).Inc()
		ctx.Msg.Errorf(
			"could not decode buffer %d (status=%d): %+v",
			fs.Buffer, footer.Status(err), err,
		)
		return nil
	}

	raw, err := fs.MarshalTDAQ()
	if err != nil {
		return fmt.Errorf("could not encode footers of buffer %d: %w", fs.Buffer, err)
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.nbufs++
	srv.nfoot += fs.Len()
	srv.metrics.buffers.Inc()
	srv.metrics.footers.Add(float64(fs.Len()))

	select {
	case srv.data <- raw:
		srv.metrics.queue.Inc()
	default:
		srv.ndrop++
		srv.metrics.dropped.Inc()
		ctx.Msg.Debugf("output queue full: dropping footers of buffer %d", fs.Buffer)
	}
	return nil
}

// Footers publishes the footers decoded from the next buffer.
func (srv *Server) Footers(ctx tdaq.Context, dst *tdaq.Frame) error {
	srv.mu.Lock()
	queue := srv.data
	srv.mu.Unlock()

	select {
	case <-ctx.Ctx.Done():
		dst.Body = nil
		return nil
	case data := <-queue:
		srv.metrics.queue.Dec()
		dst.Body = data
	}
	return nil
}

func kindOf(err error) string {
	if st := footer.Status(err); st > 0 {
		return footer.Kind(st).String()
	}
	return "other"
}
