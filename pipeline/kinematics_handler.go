package pipeline

import (
	"fmt"
	"strings"

	"github.com/corexyd/limitd/config"
	"github.com/corexyd/limitd/gcode"
	"github.com/corexyd/limitd/io"
	"github.com/corexyd/limitd/kinematics"
	"github.com/corexyd/limitd/physics"
	"github.com/corexyd/limitd/vec"
)

type kinematicsHandler struct {
	head, tail io.Conn

	kin  *kinematics.LimitedCoreXY
	soft *kinematics.SoftLimits

	toolhead physics.Limits
	homePos  vec.Vec4

	pos vec.Vec4
	fr  float64
	abs bool
}

func (h *kinematicsHandler) headRead(msg io.Any) {
	switch msg := msg.(type) {
	case config.Config:
		h.configure(msg)
	case gcode.GCode:
		if h.kin == nil {
			h.error("not configured yet")
			return
		}
		switch {
		case msg.IsG(0), msg.IsG(1): // move
			h.procGMove(msg)
			return
		case msg.IsG(28): // home
			h.procHome(msg)
		case msg.IsG(90): // set absolute
			h.abs = true
			return
		case msg.IsG(91): // set relative
			h.abs = false
			return
		case msg.IsG(92): // set pos
			h.pos = msg.Args.GetVec4(h.pos)
			return
		case msg.IsM(84), msg.IsM(18): // motors off
			h.soft.ClearHomed()
		case msg.IsM(204): // set accel request
			if s, ok := msg.Args.GetFloat('S'); ok && s > 0 {
				h.toolhead.MaxAccel = s
			}
			return
		case msg.IsCmd("SET_VELOCITY_LIMIT"):
			h.cmdSetVelocityLimit(msg)
			return
		case msg.IsCmd("SET_KINEMATICS_LIMIT"):
			h.cmdSetKinematicsLimit(msg)
			return
		}
	}
	h.tail.Write(msg)
}

func (h *kinematicsHandler) configure(conf config.Config) {
	limits, err := kinematics.NewAxisLimits(conf.MaxAccel,
		conf.MaxXAccel, conf.MaxYAccel, conf.MaxZAccel, conf.ScaleXYAccel)
	if err != nil {
		panic("failed to init kinematics: " + err.Error())
	}

	h.soft = &kinematics.SoftLimits{
		Min: [3]float64{conf.PositionMin.X(), conf.PositionMin.Y(), conf.PositionMin.Z()},
		Max: [3]float64{conf.PositionMax.X(), conf.PositionMax.Y(), conf.PositionMax.Z()},
	}
	h.kin = kinematics.NewLimitedCoreXY(kinematics.CoreXY{}, limits, h.soft)
	h.toolhead = conf.ToolheadLimits()
	h.homePos = conf.PositionMin
	h.info("kinematics configured")
}

func (h *kinematicsHandler) procGMove(g gcode.GCode) {
	var newPos vec.Vec4
	if h.abs {
		newPos = g.Args.GetVec4(h.pos)
	} else {
		newPos = g.Args.GetVec4(vec.Vec4{}).Add(h.pos)
	}
	if f, ok := g.Args.GetFloat('F'); ok {
		h.fr = f / 60.0
	}
	if newPos.Eq(h.pos) {
		return
	}
	if h.fr == 0 {
		h.info("skipped move with 0 feedrate")
		return
	}

	m := physics.NewMove(h.pos, newPos, h.fr, h.toolhead)
	if err := h.kin.CheckMove(&m, h.toolhead); err != nil {
		h.error("move rejected: %v", err)
		return
	}
	h.pos = newPos
	h.tail.Write(m)
}

// Actual homing motion happens past the tail; here we mark the axes
// homed and reset their positions.
func (h *kinematicsHandler) procHome(g gcode.GCode) {
	var axes []int
	for i, f := range "XYZ" {
		if g.Args.Has(f) {
			axes = append(axes, i)
		}
	}
	h.soft.SetHomed(axes...)

	if len(axes) == 0 {
		axes = []int{0, 1, 2}
	}
	x, y, z, e := h.pos.Get()
	for _, a := range axes {
		switch a {
		case 0:
			x = h.homePos.X()
		case 1:
			y = h.homePos.Y()
		case 2:
			z = h.homePos.Z()
		}
	}
	h.pos = vec.NewVec4(x, y, z, e)
}

func (h *kinematicsHandler) cmdSetVelocityLimit(g gcode.GCode) {
	if v, ok := g.Args.GetNamedFloat("VELOCITY"); ok && v > 0 {
		h.toolhead.MaxVelocity = v
	}
	if v, ok := g.Args.GetNamedFloat("ACCEL"); ok && v > 0 {
		h.toolhead.MaxAccel = v
	}
	h.head.Write(fmt.Sprintf("max_velocity: %v max_accel: %v",
		h.toolhead.MaxVelocity, h.toolhead.MaxAccel))
}

func (h *kinematicsHandler) cmdSetKinematicsLimit(g gcode.GCode) {
	var u kinematics.Update
	if v, ok := g.Args.GetNamedFloat("X_ACCEL"); ok {
		u.XAccel = &v
	}
	if v, ok := g.Args.GetNamedFloat("Y_ACCEL"); ok {
		u.YAccel = &v
	}
	if v, ok := g.Args.GetNamedFloat("Z_ACCEL"); ok {
		u.ZAccel = &v
	}
	if v, ok := g.Args.GetNamedInt("SCALE"); ok {
		u.Scale = &v
	}

	snap, err := h.kin.Limits().Apply(u)
	if err != nil {
		h.error("%v", err)
		return
	}
	h.head.Write(limitReport(snap))
}

func limitReport(s kinematics.Snapshot) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "x,y max_accels: [%v %v %v]\n", s.MaxXAccel, s.MaxYAccel, s.MaxZAccel)
	if s.ScalePerAxis {
		b.WriteString("Per axis accelerations limits scale with current acceleration.\n")
	} else {
		b.WriteString("Per axis accelerations limits are independent of current acceleration.\n")
	}
	accel, angle := s.DiagonalMinAccel()
	fmt.Fprintf(&b, "Minimum XY acceleration of %.0f mm/s² reached on %.0f° diagonals.", accel, angle)
	return b.String()
}

func (h *kinematicsHandler) info(s string, args ...interface{}) {
	h.head.Write(fmt.Sprintf("info:"+s, args...))
}

func (h *kinematicsHandler) error(s string, args ...interface{}) {
	h.head.Write(fmt.Sprintf("error:"+s, args...))
}

// KinematicsHandler tracks toolhead position, turns G0/G1 commands
// into moves with per-motor kinematic limits applied, and dispatches
// the limit control commands.
func KinematicsHandler(head, tail io.Conn) {
	h := kinematicsHandler{
		head: head, tail: tail,
		abs: true,
	}

	go func() {
		for msg := range tail.Rc() {
			h.head.Write(msg)
		}
	}()

	for msg := range head.Rc() {
		h.headRead(msg)
	}
}
