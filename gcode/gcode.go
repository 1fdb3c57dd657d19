package gcode

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// GCode contains a parsed command and provides Args for reading the
// specific args. Classic commands (G1, M204) carry CommandType and
// CommandCode; extended commands (SET_KINEMATICS_LIMIT) carry Name.
type GCode struct {
	CommandType rune
	CommandCode int
	Name        string
	Num         int
	Args        Args
}

// ErrChecksumBad is returned for bad gcode checksums
var ErrChecksumBad = errors.New("gcode: Bad Checksum")

func New(typ rune, code int, args ...string) GCode {
	return GCode{CommandType: typ, CommandCode: code, Num: -1, Args: args}
}

func NewExtended(name string, args ...string) GCode {
	return GCode{Name: name, Num: -1, Args: args}
}

// Parse creates a GCode from a string
func Parse(line string) (g GCode, err error) {
	line = strings.ToUpper(line)

	// remove comments
	spl := strings.Split(line, ";")
	line = strings.TrimSpace(spl[0])

	// checksum verification if provided
	if spl := strings.Split(line, "*"); len(spl) > 1 {
		line = spl[0]
		lchs, _ := strconv.Atoi(spl[1])

		var cchs byte
		for _, b := range []byte(line) {
			cchs ^= b
		}

		if cchs != byte(lchs) {
			err = ErrChecksumBad
			return
		}
	}

	g.Num = -1
	if strings.IndexRune(line, 'N') == 0 {
		if spl := strings.SplitN(line, " ", 2); len(spl) > 1 {
			var n int
			if _, err = fmt.Sscanf(spl[0], "N%v", &n); err != nil {
				return
			}
			g.Num = n
			line = spl[1]
		}
	}

	var cmd string
	if _, err = fmt.Sscan(line, &cmd); err != nil {
		return
	}
	if code, cerr := strconv.Atoi(cmd[1:]); cerr == nil && isClassicType(rune(cmd[0])) {
		g.CommandType = rune(cmd[0])
		g.CommandCode = code
	} else if isExtendedName(cmd) {
		g.Name = cmd
	} else {
		err = fmt.Errorf("gcode: bad command %q", cmd)
		return
	}

	spl = strings.Split(line, " ")
	g.Args = make([]string, 0, len(spl)-1)
	for _, s := range spl[1:] {
		if len(s) == 0 {
			continue
		}
		g.Args = append(g.Args, s)
	}

	return
}

func isClassicType(r rune) bool {
	return r == 'G' || r == 'M' || r == 'T'
}

// Extended command names are words like SET_KINEMATICS_LIMIT.
func isExtendedName(s string) bool {
	if len(s) < 2 || s[0] < 'A' || s[0] > 'Z' {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return false
		}
	}
	return true
}

func (g GCode) String() string {
	cmd := g.Name
	if cmd == "" {
		cmd = fmt.Sprintf("%v%v", string(g.CommandType), g.CommandCode)
	}
	if g.Num == -1 {
		return strings.TrimSpace(fmt.Sprintf("%v %v", cmd, g.Args))
	}
	str := strings.TrimSpace(fmt.Sprintf("N%v %v %v", g.Num, cmd, g.Args))

	var chs byte
	for _, b := range []byte(str) {
		chs ^= b
	}
	return fmt.Sprintf("%v*%v", str, chs)
}

func (g GCode) IsG(code int) bool {
	return g.CommandType == 'G' && g.CommandCode == code
}

func (g GCode) IsM(code int) bool {
	return g.CommandType == 'M' && g.CommandCode == code
}

// IsCmd matches an extended command by name.
func (g GCode) IsCmd(name string) bool {
	return g.Name == name
}
