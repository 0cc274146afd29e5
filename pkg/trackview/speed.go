// pkg/trackview/speed.go
// Copyright(c) 2024 gpxview contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package trackview

import (
	"fmt"
	"strings"

	"github.com/trackplot/gpxview/pkg/renderer"
)

// SpeedTier classifies a segment by its length. Points are assumed to be
// recorded at a fixed interval of roughly 30 seconds, so segment length
// is a proxy for speed.
type SpeedTier int

const (
	SpeedDarkBlue SpeedTier = iota
	SpeedLightBlue
	SpeedGreen
	SpeedYellow
	SpeedOrange
	SpeedRed
	NumSpeedTiers
)

// Upper bounds (inclusive) of the segment length in km for each tier
// but the last.
const (
	DarkBlueMaxKm  = 0.041
	LightBlueMaxKm = 0.083
	GreenMaxKm     = 0.166
	YellowMaxKm    = 0.250
	OrangeMaxKm    = 0.416
)

var speedTierMaxKm = [...]float64{DarkBlueMaxKm, LightBlueMaxKm, GreenMaxKm, YellowMaxKm, OrangeMaxKm}

var speedTierInfo = [NumSpeedTiers]struct {
	name  string
	kmh   int
	color renderer.RGBA
}{
	SpeedDarkBlue:  {"Dark blue", 0, renderer.RGBAFromUInt8(0, 0, 139, 255)},
	SpeedLightBlue: {"Light Blue", 5, renderer.RGBAFromUInt8(173, 216, 230, 255)},
	SpeedGreen:     {"Green", 10, renderer.RGBAFromUInt8(0, 255, 0, 255)},
	SpeedYellow:    {"Yellow", 20, renderer.RGBAFromUInt8(255, 255, 0, 255)},
	SpeedOrange:    {"Orange", 30, renderer.RGBAFromUInt8(255, 165, 0, 255)},
	SpeedRed:       {"Red", 50, renderer.RGBAFromUInt8(150, 0, 0, 150)},
}

// ColorFor returns the tier for a segment of the given length.
func ColorFor(km float64) SpeedTier {
	for i, maxKm := range speedTierMaxKm {
		if km <= maxKm {
			return SpeedTier(i)
		}
	}
	return SpeedRed
}

func (s SpeedTier) RGBA() renderer.RGBA {
	return speedTierInfo[s].color
}

// SpeedKmh returns the nominal speed shown for the tier in the legend.
func (s SpeedTier) SpeedKmh() int {
	return speedTierInfo[s].kmh
}

func (s SpeedTier) String() string {
	if s < 0 || s >= NumSpeedTiers {
		return fmt.Sprintf("SpeedTier(%d)", int(s))
	}
	return speedTierInfo[s].name
}

// Legend returns the help text printed at startup: the key bindings
// followed by the meaning of each line color.
func Legend() string {
	var sb strings.Builder
	sb.WriteString("P:       Lines / Points\n")
	sb.WriteString("S:       Speed\n")
	sb.WriteString("F:       Fullscreen / Windowed\n")
	sb.WriteString("Up/Down: Change line distance threshold\n")
	sb.WriteString("Mouse:   Drag to pan, wheel to zoom\n")
	for s := range NumSpeedTiers {
		fmt.Fprintf(&sb, "%-11s%3dkm/h\n", s.String()+":", s.SpeedKmh())
	}
	return sb.String()
}
