package periph

import (
	"context"
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// Channel assignment on the ADS1115. Fixed, never configured at runtime.
var (
	SoundChannel = ads1x15.Channel0
	LightChannel = ads1x15.Channel1
)

const (
	// modules are powered from the 3.3V rail
	fullScale  = 3300 * physic.MilliVolt
	sampleRate = 128 * physic.Hertz
)

// AnalogChannel reads one single-ended ADS1115 input
// This implements the ports.AnalogChannel interface
type AnalogChannel struct {
	pin ads1x15.PinADC
}

// NewAnalogChannels opens the ADS1115 at addr and returns the sound and light inputs
func NewAnalogChannels(bus i2c.Bus, addr uint16) (*AnalogChannel, *AnalogChannel, error) {
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr

	adc, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, nil, fmt.Errorf("open ads1115 at %#x: %w", addr, err)
	}

	sound, err := adc.PinForChannel(SoundChannel, fullScale, sampleRate, ads1x15.BestQuality)
	if err != nil {
		return nil, nil, fmt.Errorf("configure sound channel: %w", err)
	}

	light, err := adc.PinForChannel(LightChannel, fullScale, sampleRate, ads1x15.BestQuality)
	if err != nil {
		sound.Halt()
		return nil, nil, fmt.Errorf("configure light channel: %w", err)
	}

	return &AnalogChannel{pin: sound}, &AnalogChannel{pin: light}, nil
}

// ReadLevel returns the raw conversion result
func (c *AnalogChannel) ReadLevel(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	sample, err := c.pin.Read()
	if err != nil {
		return 0, fmt.Errorf("read ads1115: %w", err)
	}
	return clampLevel(sample.Raw), nil
}

// Close stops the channel
func (c *AnalogChannel) Close() error {
	return c.pin.Halt()
}

// clampLevel drops the small negative readings a grounded single-ended input produces
func clampLevel(raw int32) int {
	if raw < 0 {
		return 0
	}
	return int(raw)
}
