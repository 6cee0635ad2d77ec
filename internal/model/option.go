package model

// Option is a ballot choice
type Option int

// ballot options
const (
	OptionNone Option = iota
	OptionShrubs
	OptionGrass
	OptionAbstain
)

// Options returns the votable options in display order
func Options() []Option {
	return []Option{OptionShrubs, OptionGrass, OptionAbstain}
}

// ParseOption maps an option key to an Option, unknown keys map to OptionNone
func ParseOption(key string) Option {
	switch key {
	case "struiken":
		return OptionShrubs
	case "gras":
		return OptionGrass
	case "onthouding":
		return OptionAbstain
	}
	return OptionNone
}

// Key returns the wire key of the option
func (o Option) Key() string {
	switch o {
	case OptionShrubs:
		return "struiken"
	case OptionGrass:
		return "gras"
	case OptionAbstain:
		return "onthouding"
	}
	return ""
}

// Label returns the display label of the option
func (o Option) Label() string {
	switch o {
	case OptionShrubs:
		return "Struiken laten staan"
	case OptionGrass:
		return "Gras terug"
	case OptionAbstain:
		return "Onthouding"
	}
	return ""
}

// Emoji returns the icon shown next to the option
func (o Option) Emoji() string {
	switch o {
	case OptionShrubs:
		return "🌳"
	case OptionGrass:
		return "🌱"
	case OptionAbstain:
		return "🤷‍♀️"
	}
	return ""
}

func (o Option) String() string {
	if o == OptionNone {
		return "none"
	}
	return o.Key()
}

// MarshalText encodes the option as its key
func (o Option) MarshalText() ([]byte, error) {
	return []byte(o.Key()), nil
}

// UnmarshalText decodes an option key, unknown keys decode to OptionNone
func (o *Option) UnmarshalText(text []byte) error {
	*o = ParseOption(string(text))
	return nil
}
