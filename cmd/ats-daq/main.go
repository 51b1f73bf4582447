// Copyright 2020 The go-lpc Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command ats-daq starts a TDAQ server decoding the footers of
// acquisition buffers.
//
// Raw buffers are received on the /adc input end-point, the decoded
// footers are published on the /footers output end-point.
// The acquisition configuration is carried by the /config command.
//
// When the ATS_DAQ_METRICS environment variable holds a network address,
// decoding metrics are served there, on /metrics.
package main // import "github.com/go-lpc/ats/cmd/ats-daq"

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-daq/tdaq"
	"github.com/go-daq/tdaq/flags"
	"github.com/go-lpc/ats"
	"github.com/go-lpc/ats/daq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cmd := flags.New()

	if v, _ := ats.Version(); v != "" {
		log.Printf("ats-daq: version %s", v)
	}

	dev := daq.NewServer("ats-daq", 1024)

	if addr := os.Getenv("ATS_DAQ_METRICS"); addr != "" {
		reg := prometheus.NewRegistry()
		err := dev.Register(reg)
		if err != nil {
			log.Panicf("error: %+v", err)
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			err := http.ListenAndServe(addr, mux)
			if err != nil {
				log.Printf("could not serve metrics on %q: %+v", addr, err)
			}
		}()
	}

	srv := tdaq.New(cmd, os.Stdout)
	srv.CmdHandle("/config", dev.OnConfig)
	srv.CmdHandle("/init", dev.OnInit)
	srv.CmdHandle("/reset", dev.OnReset)
	srv.CmdHandle("/start", dev.OnStart)
	srv.CmdHandle("/stop", dev.OnStop)
	srv.CmdHandle("/quit", dev.OnQuit)

	srv.InputHandle("/adc", dev.ADC)
	srv.OutputHandle("/footers", dev.Footers)

	err := srv.Run(context.Background())
	if err != nil {
		log.Panicf("error: %+v", err)
	}
}
