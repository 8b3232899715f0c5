package world

// Directions are stored and compared as short codes everywhere: the lexer
// rewrites "north" to "n" and room exits are keyed by "n".
var directionCodes = map[string]string{
	"north":     "n",
	"south":     "s",
	"east":      "e",
	"west":      "w",
	"northeast": "ne",
	"northwest": "nw",
	"southeast": "se",
	"southwest": "sw",
	"up":        "u",
	"down":      "d",
}

var directionNames = map[string]string{
	"n":  "north",
	"s":  "south",
	"e":  "east",
	"w":  "west",
	"ne": "northeast",
	"nw": "northwest",
	"se": "southeast",
	"sw": "southwest",
	"u":  "up",
	"d":  "down",
}

// Canonical maps a direction word in either form to its short code.
func Canonical(word string) (string, bool) {
	if _, ok := directionNames[word]; ok {
		return word, true
	}
	code, ok := directionCodes[word]
	return code, ok
}

// LongName returns "north" for "n". Unknown codes are returned unchanged.
func LongName(code string) string {
	if name, ok := directionNames[code]; ok {
		return name
	}
	return code
}
