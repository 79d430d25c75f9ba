package preview

import (
	"fmt"
	"math"

	"github.com/philipparndt/gcodeview/pkg/gcode"
)

// Channel selects the attribute that drives vertex colors.
type Channel uint8

const (
	ChannelFeatureType Channel = iota
	ChannelHeight
	ChannelWidth
	ChannelTemperature
	ChannelFanSpeed

	channelCount
)

var channelNames = [channelCount]string{
	ChannelFeatureType: "feature_type",
	ChannelHeight:      "height",
	ChannelWidth:       "width",
	ChannelTemperature: "temperature",
	ChannelFanSpeed:    "fan_speed",
}

func (c Channel) String() string {
	if !c.Valid() {
		return fmt.Sprintf("channel(%d)", uint8(c))
	}
	return channelNames[c]
}

// Valid reports whether c names one of the five channels.
func (c Channel) Valid() bool {
	return c < channelCount
}

// Channels returns every channel in declaration order.
func Channels() []Channel {
	return []Channel{ChannelFeatureType, ChannelHeight, ChannelWidth, ChannelTemperature, ChannelFanSpeed}
}

// ParseChannel converts a channel name such as "fan_speed" into a Channel.
func ParseChannel(name string) (Channel, error) {
	for i, n := range channelNames {
		if n == name {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown color channel %q", name)
}

// CategorySet is a set of feature categories, one bit per category.
type CategorySet uint16

// AllCategories has every category of the table enabled.
const AllCategories CategorySet = 1<<gcode.CategoryCount - 1

// NewCategorySet returns a set containing the given categories.
func NewCategorySet(categories ...gcode.Category) CategorySet {
	var s CategorySet
	for _, c := range categories {
		s = s.With(c)
	}
	return s
}

func (s CategorySet) Has(c gcode.Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

func (s CategorySet) With(c gcode.Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

func (s CategorySet) Without(c gcode.Category) CategorySet {
	return s &^ (1 << c)
}

// Categories lists the members of s in table order.
func (s CategorySet) Categories() []gcode.Category {
	var out []gcode.Category
	for _, c := range gcode.Categories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// ViewConfig is everything that decides what Apply draws. Two configs are
// the same view exactly when they compare equal with ==.
type ViewConfig struct {
	Channel Channel
	// ZMin and ZMax clip segments by the Z of their starting point to the
	// half-open range [ZMin, ZMax).
	ZMin, ZMax float32
	Visible    CategorySet
}

// DefaultViewConfig colors by feature type with no clipping and every
// category visible.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Channel: ChannelFeatureType,
		ZMin:    float32(math.Inf(-1)),
		ZMax:    float32(math.Inf(1)),
		Visible: AllCategories,
	}
}

func (v ViewConfig) containsZ(z float32) bool {
	return z >= v.ZMin && z < v.ZMax
}
