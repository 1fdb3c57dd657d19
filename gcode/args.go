package gcode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corexyd/limitd/vec"
)

// Args provides methods for reading tagged args. Classic args are a
// single letter prefix (X12.5), extended args are NAME=VALUE pairs.
type Args []string

// GetString for an arg label
func (a Args) GetString(f rune) (x string, ok bool) {
	ss := string(f) + "%s"
	for _, str := range a {
		if strings.ContainsRune(str, '=') {
			continue
		}
		if n, _ := fmt.Sscanf(str, ss, &x); n == 1 {
			ok = true
			return
		}
	}
	return
}

// GetInt for an arg label
func (a Args) GetInt(f rune) (x int, ok bool) {
	var str string
	var err error
	if str, ok = a.GetString(f); ok {
		if x, err = strconv.Atoi(str); err != nil {
			ok = false
		}
	}
	return
}

// GetFloat for an arg label
func (a Args) GetFloat(f rune) (x float64, ok bool) {
	var str string
	var err error
	if str, ok = a.GetString(f); ok {
		if x, err = strconv.ParseFloat(str, 64); err != nil {
			ok = false
		}
	}
	return
}

// GetNamed returns the value of a NAME=VALUE arg
func (a Args) GetNamed(name string) (x string, ok bool) {
	prefix := name + "="
	for _, str := range a {
		if strings.HasPrefix(str, prefix) {
			return str[len(prefix):], true
		}
	}
	return
}

// GetNamedFloat returns a NAME=VALUE arg as float
func (a Args) GetNamedFloat(name string) (x float64, ok bool) {
	var str string
	var err error
	if str, ok = a.GetNamed(name); ok {
		if x, err = strconv.ParseFloat(str, 64); err != nil {
			ok = false
		}
	}
	return
}

// GetNamedInt returns a NAME=VALUE arg as int
func (a Args) GetNamedInt(name string) (x int, ok bool) {
	var str string
	var err error
	if str, ok = a.GetNamed(name); ok {
		if x, err = strconv.Atoi(str); err != nil {
			ok = false
		}
	}
	return
}

// GetVec4 gets an X,Y,Z,E Vec4, using defaults from
// def if dimension is missing.
func (a Args) GetVec4(def vec.Vec4) vec.Vec4 {
	x, y, z, e := def.Get()
	if i, ok := a.GetFloat('X'); ok {
		x = i
	}
	if i, ok := a.GetFloat('Y'); ok {
		y = i
	}
	if i, ok := a.GetFloat('Z'); ok {
		z = i
	}
	if i, ok := a.GetFloat('E'); ok {
		e = i
	}
	return vec.NewVec4(x, y, z, e)
}

// Has reports if an arg label is present at all (bare or with value).
func (a Args) Has(f rune) bool {
	for _, str := range a {
		if strings.IndexRune(str, f) == 0 && !strings.ContainsRune(str, '=') {
			return true
		}
	}
	return false
}

func (a Args) String() string {
	b := strings.Builder{}
	for i, arg := range a {
		if i != 0 {
			b.WriteRune(' ')
		}
		b.WriteString(arg)
	}
	return b.String()
}
