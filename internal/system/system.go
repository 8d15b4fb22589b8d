// Package system wraps the OS-level bits the assistant touches: ALSA volume
// and battery level. Everything degrades gracefully on machines without the
// relevant hardware or tooling.
package system

import (
	"fmt"
	log "log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// mixerCandidates in detection priority order.
var mixerCandidates = []string{"Master", "PCM", "Speaker", "HDMI"}

type Control struct {
	mixer string
}

// Detect probes amixer for a usable mixer control. Falls back to Master when
// nothing is found so volume commands still have somewhere to go.
func Detect() *Control {
	out, err := exec.Command("amixer", "scontrols").Output()
	if err != nil {
		log.Warn("amixer not available, volume control may fail", "err", err)
		return &Control{mixer: "Master"}
	}

	for _, candidate := range mixerCandidates {
		if strings.Contains(string(out), "'"+candidate+"'") {
			log.Debug("Using ALSA mixer control", "mixer", candidate)
			return &Control{mixer: candidate}
		}
	}

	log.Warn("No standard mixer control found, defaulting to Master")
	return &Control{mixer: "Master"}
}

// AdjustVolume changes the mixer volume by a signed percentage.
func (c *Control) AdjustVolume(deltaPercent int) error {
	if deltaPercent == 0 {
		return nil
	}

	sign := "+"
	if deltaPercent < 0 {
		sign = "-"
		deltaPercent = -deltaPercent
	}

	arg := fmt.Sprintf("%d%%%s", deltaPercent, sign)
	if err := exec.Command("amixer", "set", c.mixer, arg).Run(); err != nil {
		return fmt.Errorf("amixer set %s %s: %w", c.mixer, arg, err)
	}

	log.Debug("Volume adjusted", "mixer", c.mixer, "change", arg)
	return nil
}

// BatteryLevel reads the battery charge percentage from sysfs. Machines on
// AC power without a battery report 100.
func (c *Control) BatteryLevel() int {
	if level, ok := readCapacity("/sys/class/power_supply/BAT0/capacity"); ok {
		return level
	}

	// UPS HATs and other supplies expose capacity under their own names.
	paths, _ := filepath.Glob("/sys/class/power_supply/*/capacity")
	for _, p := range paths {
		if level, ok := readCapacity(p); ok {
			return level
		}
	}

	log.Debug("No battery detected, assuming AC power")
	return 100
}

func readCapacity(path string) (int, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	level, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	return level, true
}
