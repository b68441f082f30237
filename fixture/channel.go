package fixture

import "github.com/robmorgan/choreo/utils"

const (
	TypeIntensity  = "type:intensity"
	TypeColorRed   = "type:color:red"
	TypeColorGreen = "type:color:green"
	TypeColorBlue  = "type:color:blue"
)

// Channel represents a channel on the fixture
type Channel struct {
	Type string

	// Address is relative to the fixture's starting address, starting at 1.
	Address    int
	Resolution int

	// Values are stored between 0 and 1 and only scaled to DMX on output.
	Value float64
}

// SetValue sets the channel value and reports whether it changed.
func (c *Channel) SetValue(value float64) bool {
	value = utils.Clamp(value, 0, 1)
	if c.Value == value {
		return false
	}
	c.Value = value
	return true
}

func (c *Channel) toDMX() byte {
	return utils.GetDimmerValue(c.Value)
}
