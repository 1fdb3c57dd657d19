package pipeline

import (
	"fmt"

	"github.com/corexyd/limitd/config"
	"github.com/corexyd/limitd/gcode"
	"github.com/corexyd/limitd/io"
	"github.com/corexyd/limitd/physics"
)

type deviceHandler struct {
	head, tail io.Conn

	lastAccel float64
}

func (h *deviceHandler) headRead(msg io.Any) {
	switch msg := msg.(type) {
	case config.Config:
		// targets sent downstream are always absolute
		h.tail.Write(gcode.New('G', 90).String())
	case physics.Move:
		h.procMove(msg)
	case gcode.GCode:
		h.tail.Write(msg.String())
	case string:
		h.tail.Write(msg)
	default:
		panic(fmt.Sprintf("unexpected message at device handler: %v", msg))
	}
}

// procMove emits the move as gcode with its caps applied: the feed
// rate from the velocity cap, and an accel update when the cap moved.
func (h *deviceHandler) procMove(m physics.Move) {
	if a := m.MaxA(); a != h.lastAccel {
		h.tail.Write(fmt.Sprintf("M204 S%.0f", a))
		h.lastAccel = a
	}
	x, y, z, e := m.To().Get()
	h.tail.Write(fmt.Sprintf("G1 X%.3f Y%.3f Z%.3f E%.4f F%.1f",
		x, y, z, e, m.MaxV()*60))
}

// DeviceHandler feeds the downstream device: planned moves become
// plain gcode lines, device responses flow back up untouched.
func DeviceHandler(head, tail io.Conn) {
	h := deviceHandler{head: head, tail: tail}

	go func() {
		for msg := range tail.Rc() {
			h.head.Write(msg)
		}
	}()

	for msg := range head.Rc() {
		h.headRead(msg)
	}
}
