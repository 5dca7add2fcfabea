package main

import (
	"flag"

	"github.com/golang/glog"

	"github.com/signalworks/pid.go/pkg/pid"
	"github.com/signalworks/pid.go/pkg/pid/bridge"
	"github.com/signalworks/pid.go/pkg/pid/serial"
	"github.com/signalworks/pid.go/pkg/run"
)

//go-build: CGO_ENABLED=0

var configFile = flag.String("config", "piddisplayd.yml", "Config file.")

func main() {
	flag.Parse()

	conf, err := bridge.Load(*configFile)
	if err != nil {
		glog.Exitf("load config: %v", err)
	}
	port, err := serial.Open(conf.Device)
	if err != nil {
		glog.Exitf("open %s: %v", conf.Device, err)
	}
	session := pid.NewSession(port, conf.Address)
	session.NoAck = conf.NoAck
	session.Settle = conf.Settle()
	port.Handler = session

	err = run.NewRunner().
		HandleSignals().
		Go(port, bridge.New(conf, session)).
		Wait()
	if err != nil {
		glog.Exit(err)
	}
}
