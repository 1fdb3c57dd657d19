package io

import (
	"io"
	"strings"
	"testing"
)

func TestClose(t *testing.T) {
	reader, writer := io.Pipe()
	p := NewConn(1, 1)

	go func() {
		p.wr <- "test1"
		<-p.rd
		p.wr <- "test2"
		<-p.rd
		reader.Close()
	}()

	err := LinePipe(reader, writer, p)
	if err == nil {
		t.Fatalf("Error was nil (expected close)")
		return
	}
}

func TestPipe(t *testing.T) {
	reader, writer := io.Pipe()
	p := NewConn(1, 1)

	testStrings := [...]string{"Hello", "world ", "to", "all", "ok N1",
		"SET_KINEMATICS_LIMIT X_ACCEL=9000", "G1 X10 Y20"}

	go func() {
		// send some empty lines around each string
		for _, str := range testStrings {
			p.wr <- ""
			p.wr <- str
			p.wr <- "\n \n"
		}
	}()

	go LinePipe(reader, writer, p)

	for _, str := range testStrings {
		if (<-p.rd).(string) != strings.TrimSpace(str) {
			t.Fatalf("Line reader out of order")
			return
		}
	}

	reader.Close()
}
