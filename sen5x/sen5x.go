// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sen5x

import (
	"bytes"
	"fmt"
	"math"
	"sync"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"

	"github.com/GermanBionicSystems/airlogger/common"
	"github.com/GermanBionicSystems/airlogger/reading"
)

const (
	// The devices only support this i2c address.
	DefaultAddress uint16 = 0x69
)

type cmd uint16

// Structure to simplify sending commands to the device.
type command struct {
	// The 16-bit command word.
	cmdWord cmd
	// The expected number of bytes returned, CRC bytes included.
	responseSize int
	// Execution time before the response can be read or the next command
	// sent.
	delay time.Duration
}

var cmdStartMeasurement = command{
	cmdWord: 0x0021,
	delay:   50 * time.Millisecond,
}

var cmdStopMeasurement = command{
	cmdWord: 0x0104,
	delay:   200 * time.Millisecond,
}

var cmdReadDataReady = command{
	cmdWord:      0x0202,
	responseSize: 3,
	delay:        20 * time.Millisecond,
}

var cmdReadMeasuredValues = command{
	cmdWord:      0x03c4,
	responseSize: 24,
	delay:        20 * time.Millisecond,
}

var cmdTemperatureCompensation = command{
	cmdWord: 0x60b2,
	delay:   20 * time.Millisecond,
}

var cmdGetProductName = command{
	cmdWord:      0xd014,
	responseSize: 48,
	delay:        50 * time.Millisecond,
}

var cmdGetSerialNumber = command{
	cmdWord:      0xd033,
	responseSize: 48,
	delay:        50 * time.Millisecond,
}

var cmdGetVersion = command{
	cmdWord:      0xd100,
	responseSize: 12,
	delay:        20 * time.Millisecond,
}

var cmdDeviceReset = command{
	cmdWord: 0xd304,
	delay:   200 * time.Millisecond,
}

// Values reported by the device for unavailable channels.
const (
	unknownUnsigned uint16 = 0xffff
	unknownSigned   uint16 = 0x7fff
)

// Values is one measurement. Channels that are not available are NaN.
type Values struct {
	// Mass concentrations in µg/m³.
	PM1p0, PM2p5, PM4p0, PM10p0 float64
	// Relative humidity in %.
	Humidity float64
	// Temperature in °C.
	Temperature float64
	// Sensirion gas indices, 1..500.
	VOCIndex, NOxIndex float64
}

// Sample converts the measurement to a reading.Sample.
func (v *Values) Sample() reading.Sample {
	return reading.Sample{
		reading.PM1p0:       v.PM1p0,
		reading.PM2p5:       v.PM2p5,
		reading.PM4p0:       v.PM4p0,
		reading.PM10p0:      v.PM10p0,
		reading.Humidity:    v.Humidity,
		reading.Temperature: v.Temperature,
		reading.VOCIndex:    v.VOCIndex,
		reading.NOxIndex:    v.NOxIndex,
	}
}

// Return the sensor readings in string format.
func (v *Values) String() string {
	s := v.Sample()
	return s.String()
}

// VersionNumber is a major.minor pair.
type VersionNumber struct {
	Major, Minor uint8
}

func (n VersionNumber) String() string {
	return fmt.Sprintf("%d.%d", n.Major, n.Minor)
}

// Version holds the firmware, hardware and protocol versions of the device.
type Version struct {
	Firmware      VersionNumber
	FirmwareDebug bool
	Hardware      VersionNumber
	Protocol      VersionNumber
}

func (v Version) String() string {
	return fmt.Sprintf("Firmware: %s, Hardware: %s, Protocol: %s", v.Firmware, v.Hardware, v.Protocol)
}

// Dev represents a SEN5x device.
type Dev struct {
	// The i2c bus device.
	d  *i2c.Dev
	mu sync.Mutex
	// True if the device is in measurement mode.
	measuring bool
	// sleep waits for command execution. Replaced in tests.
	sleep func(time.Duration)
}

// NewI2C returns a SEN5x on the supplied bus. The constant DefaultAddress
// should be supplied as the value for addr. The device is left idle; call
// Start to begin measuring.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	return &Dev{d: &i2c.Dev{Bus: b, Addr: addr}, sleep: time.Sleep}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("sen5x: %s", d.d.String())
}

// Reset performs a device reset. The device returns to idle mode.
func (d *Dev) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, err := d.sendCommand(cmdDeviceReset, nil); err != nil {
		return err
	}
	d.measuring = false
	return nil
}

// Start enters measurement mode. The first result is available after about
// one second.
func (d *Dev) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.measuring {
		return nil
	}
	if _, err := d.sendCommand(cmdStartMeasurement, nil); err != nil {
		return err
	}
	d.measuring = true
	return nil
}

// Halt implements conn.Resource. It stops measuring and returns the device
// to idle mode.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.measuring {
		return nil
	}
	d.measuring = false
	_, err := d.sendCommand(cmdStopMeasurement, nil)
	return err
}

// DataReady reports whether a new measurement is available.
func (d *Dev) DataReady() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.sendCommand(cmdReadDataReady, nil)
	if err != nil {
		return false, err
	}
	return words[0]&0xff != 0, nil
}

// Sense reads the latest measurement. Calling it faster than the device
// measures (once per second) returns the same values again.
func (d *Dev) Sense(v *Values) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.sendCommand(cmdReadMeasuredValues, nil)
	if err != nil {
		return err
	}
	v.PM1p0 = unsignedScaled(words[0], 10)
	v.PM2p5 = unsignedScaled(words[1], 10)
	v.PM4p0 = unsignedScaled(words[2], 10)
	v.PM10p0 = unsignedScaled(words[3], 10)
	v.Humidity = signedScaled(words[4], 100)
	v.Temperature = signedScaled(words[5], 200)
	v.VOCIndex = signedScaled(words[6], 10)
	v.NOxIndex = signedScaled(words[7], 10)
	return nil
}

// ReadSample reads the latest measurement as a reading.Sample.
func (d *Dev) ReadSample() (reading.Sample, error) {
	var v Values
	if err := d.Sense(&v); err != nil {
		return reading.Sample{}, err
	}
	return v.Sample(), nil
}

// SetTemperatureOffset sets a constant offset added to the temperature
// reading, e.g. to compensate heat from the enclosure. The slope and time
// constant of the compensation are set to 0.
func (d *Dev) SetTemperatureOffset(offset physic.Temperature) error {
	celsius := float64(offset) / float64(physic.Kelvin)
	ticks := math.Round(celsius * 200)
	if ticks < math.MinInt16 || ticks > math.MaxInt16 {
		return fmt.Errorf("sen5x: temperature offset %s out of range", offset)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.sendCommand(cmdTemperatureCompensation, []uint16{uint16(int16(ticks)), 0, 0})
	return err
}

// ProductName returns the product name, e.g. "SEN55".
func (d *Dev) ProductName() (string, error) {
	return d.readString(cmdGetProductName)
}

// SerialNumber returns the serial number of the device.
func (d *Dev) SerialNumber() (string, error) {
	return d.readString(cmdGetSerialNumber)
}

// Version returns the firmware, hardware and protocol versions.
func (d *Dev) Version() (Version, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.sendCommand(cmdGetVersion, nil)
	if err != nil {
		return Version{}, err
	}
	b := common.WordBytes(words)
	return Version{
		Firmware:      VersionNumber{b[0], b[1]},
		FirmwareDebug: b[2] != 0,
		Hardware:      VersionNumber{b[3], b[4]},
		Protocol:      VersionNumber{b[5], b[6]},
	}, nil
}

func (d *Dev) readString(c command) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	words, err := d.sendCommand(c, nil)
	if err != nil {
		return "", err
	}
	b := common.WordBytes(words)
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b), nil
}

// All commands to read or write to the sensor go through this function. The
// command is written, then the response is read in a second transaction
// once the execution time elapsed.
func (d *Dev) sendCommand(c command, args []uint16) ([]uint16, error) {
	w := []byte{byte(c.cmdWord >> 8), byte(c.cmdWord)}
	if args != nil {
		w = append(w, common.EncodeWords(args)...)
	}
	if err := d.d.Tx(w, nil); err != nil {
		return nil, fmt.Errorf("sen5x: cmd 0x%04x: %w", uint16(c.cmdWord), err)
	}
	d.sleep(c.delay)
	if c.responseSize == 0 {
		return nil, nil
	}
	r := make([]byte, c.responseSize)
	if err := d.d.Tx(nil, r); err != nil {
		return nil, fmt.Errorf("sen5x: cmd 0x%04x: %w", uint16(c.cmdWord), err)
	}
	words, err := common.DecodeWords(r)
	if err != nil {
		return nil, fmt.Errorf("sen5x: cmd 0x%04x: %w", uint16(c.cmdWord), err)
	}
	return words, nil
}

func unsignedScaled(w uint16, scale float64) float64 {
	if w == unknownUnsigned {
		return reading.Missing()
	}
	return float64(w) / scale
}

func signedScaled(w uint16, scale float64) float64 {
	if w == unknownSigned {
		return reading.Missing()
	}
	return float64(int16(w)) / scale
}

var _ conn.Resource = &Dev{}
