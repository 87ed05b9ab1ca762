// muxscan walks the channels of a TCA9548A/PCA9548A switch through a
// USB-serial bridge adapter and reports every device that acknowledges.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/dikkadev/prettyslog"
	"gopkg.in/yaml.v2"

	"github.com/dikkadev/i2cmux"
	"github.com/dikkadev/i2cmux/serialbridge"
)

type Config struct {
	PortName      string  `yaml:"portName"`
	BaudRate      int     `yaml:"baudRate"`
	SwitchAddress uint16  `yaml:"switchAddress"`
	Channels      []uint8 `yaml:"channels"`
}

func loadConfig(path string) Config {
	cfg := Config{
		BaudRate:      115200,
		SwitchAddress: i2cmux.DefaultAddress,
		Channels:      []uint8{0, 1, 2, 3, 4, 5, 6, 7},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("error reading config file", "err", err)
		return cfg
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		slog.Warn("error parsing config file", "err", err)
	}
	return cfg
}

func main() {
	logger := slog.New(prettyslog.NewPrettyslogHandler("muxscan",
		prettyslog.WithLevel(slog.LevelDebug),
	))
	slog.SetDefault(logger)

	portName := flag.String("port", "", "serial port of the bridge adapter (e.g. /dev/ttyACM0)")
	configFile := flag.String("config", "config.yaml", "config file")
	addr := flag.Uint("addr", 0, "switch address, overrides config")
	flag.Parse()

	cfg := loadConfig(*configFile)
	if *portName != "" {
		cfg.PortName = *portName
	}
	if *addr != 0 {
		cfg.SwitchAddress = uint16(*addr)
	}
	if cfg.PortName == "" {
		log.Fatal("no serial port specified. use the -port flag or the config file")
	}

	bridge, err := serialbridge.Open(cfg.PortName, cfg.BaudRate)
	if err != nil {
		log.Fatalf("failed to open bridge: %v", err)
	}
	defer bridge.Close()

	sw := i2cmux.New(bridge, cfg.SwitchAddress)

	for _, ch := range cfg.Channels {
		if ch > 7 {
			slog.Warn("skipping invalid channel", "channel", ch)
			continue
		}
		port := sw.Port(ch)
		slog.Info("scanning channel", "channel", ch)

		found := 0
		for devAddr := uint16(0x08); devAddr < 0x78; devAddr++ {
			if devAddr == cfg.SwitchAddress {
				continue // the switch itself answers on every channel
			}
			if err := port.Tx(devAddr, []byte{0x00}, nil); err == nil {
				slog.Info("found device", "channel", ch, "addr", fmt.Sprintf("0x%02X", devAddr))
				found++
			}
		}
		slog.Info("channel scanned", "channel", ch, "devices", found)
	}

	mask, err := sw.Channels()
	if err != nil {
		log.Fatalf("failed to read channel status: %v", err)
	}
	slog.Info("active channels", "mask", fmt.Sprintf("0b%08b", mask))
}
