package main

import (
	"flag"

	"github.com/go-atrium/atrium/internal/bootstrap"
)

var configFile string

func init() {
	flag.StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path, e.g. -conf ./conf.d/config.toml")
}

func main() {
	flag.Parse()

	_, cleanup, err := bootstrap.Bootstrap(configFile)
	if err != nil {
		panic(err)
	}

	// blocks until a shutdown signal arrives
	cleanup()
}
