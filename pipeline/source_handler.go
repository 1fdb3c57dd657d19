package pipeline

import (
	"fmt"
	"strings"

	"github.com/corexyd/limitd/gcode"
	"github.com/corexyd/limitd/io"
)

// SourceHandler parses incoming command lines into gcode and responds
// with the ok/error protocol. Anything else passes through untouched.
func SourceHandler(head, tail io.Conn) {
	go func() {
		for msg := range tail.Rc() {
			head.Write(msg)
		}
	}()

	for msg := range head.Rc() {
		str, ok := msg.(string) // only strings

		if !ok {
			tail.Write(msg)
			continue
		}

		if strings.IndexRune(str, ';') == 0 || str == "" {
			continue // comment-only or blank line
		}

		g, err := gcode.Parse(str)
		if err != nil {
			head.Write(fmt.Sprintf("error: failed parsing gcode (%v)", err))
			continue
		}

		// send to tail before responding ok, incase tail blocks
		tail.Write(g)

		switch g.Num {
		case -1:
			head.Write("ok")
		default:
			head.Write(fmt.Sprintf("ok N%v", g.Num))
		}
	}
}
