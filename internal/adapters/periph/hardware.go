// Package periph reads the sensors over I2C on Linux boards through periph.io.
//
// The combined climate sensor is a BME280. Sound and light are analog
// modules wired to an ADS1115 converter: sound on channel 0, light on
// channel 1.
package periph

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Hardware owns the I2C bus and the three sensor handles opened on it
type Hardware struct {
	bus     i2c.BusCloser
	Climate *ClimateSensor
	Sound   *AnalogChannel
	Light   *AnalogChannel
}

// Open initializes the host drivers, opens busName ("" for the first bus) and
// probes both devices
func Open(busName string, climateAddr, adcAddr uint16) (*Hardware, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host drivers: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	climate, err := NewClimateSensor(bus, climateAddr)
	if err != nil {
		bus.Close()
		return nil, err
	}

	sound, light, err := NewAnalogChannels(bus, adcAddr)
	if err != nil {
		climate.Close()
		bus.Close()
		return nil, err
	}

	return &Hardware{
		bus:     bus,
		Climate: climate,
		Sound:   sound,
		Light:   light,
	}, nil
}

// Close halts every device and releases the bus
func (h *Hardware) Close() error {
	return errors.Join(
		h.Climate.Close(),
		h.Sound.Close(),
		h.Light.Close(),
		h.bus.Close(),
	)
}
