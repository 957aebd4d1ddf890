package game

import (
	"fmt"
	"strings"
)

// Champion identifies a pickable hero by name.
type Champion string

// Role is the positional category of a champion. Each side fills every role exactly once.
type Role string

const (
	Top     Role = "top"
	Jungle  Role = "jungle"
	Mid     Role = "mid"
	Bot     Role = "bot"
	Support Role = "support"
)

// Roles lists every role in draft display order.
var Roles = []Role{Top, Jungle, Mid, Bot, Support}

func ParseRole(value string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(value)))
	switch role {
	case Top, Jungle, Mid, Bot, Support:
		return role, nil
	case "bottom", "adc":
		return Bot, nil
	case "middle":
		return Mid, nil
	case "utility":
		return Support, nil
	}
	return "", fmt.Errorf("unknown role %q", value)
}
