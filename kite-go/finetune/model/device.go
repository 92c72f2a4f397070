package model

import (
	"github.com/kiteco/deepset/kite-golib/envutil"
	"github.com/kiteco/deepset/kite-golib/errors"
)

// Device is where a classifier places its computation. Only classifiers look at it.
type Device string

// Devices
const (
	CPU  Device = "cpu"
	GPU  Device = "gpu"
	Auto Device = "auto"
)

// ParseDevice ...
func ParseDevice(s string) (Device, error) {
	switch d := Device(s); d {
	case CPU, GPU, Auto:
		return d, nil
	}
	return "", errors.InvalidArgumentf("unknown device %q, expected cpu, gpu or auto", s)
}

// Resolve turns Auto into GPU if CUDA devices are visible, CPU otherwise
func (d Device) Resolve() Device {
	if d != Auto {
		return d
	}
	if envutil.HasValue("CUDA_VISIBLE_DEVICES") {
		return GPU
	}
	return CPU
}

// TensorflowDevice is the device string used when importing a graph
func (d Device) TensorflowDevice() string {
	if d.Resolve() == GPU {
		return "/device:GPU:0"
	}
	return "/device:CPU:0"
}
