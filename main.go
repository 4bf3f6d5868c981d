package main

import (
	"os"

	_ "github.com/go-home-io/sip-bridge/platforms/sip"
	"github.com/go-home-io/sip-bridge/server"
	"github.com/go-home-io/sip-bridge/settings"
	"github.com/jessevdk/go-flags"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		if fe, ok := err.(*flags.Error); ok && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}

		os.Exit(1)
	}

	s, err := settings.Load(options)
	if err != nil {
		panic(err)
	}

	s.SystemLogger().Info("Starting SIP bridge")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start SIP bridge", err)
	}

	if err := srv.Init(); err != nil {
		s.SystemLogger().Fatal("Failed to initialize SIP bridge", err)
	}

	srv.Start()
}
