package io

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
)

const endLine = '\n'

// LinePipe turns the reader and writer into two channels
// that use a line based text protocol. Blank lines are dropped.
func LinePipe(reader io.Reader, writer io.Writer, c Conn) error {
	err := make(chan error, 4)
	stopWrite := make(chan struct{})

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		defer close(stopWrite)

		reader := bufio.NewReader(reader)
		for {
			str, lerr := reader.ReadString(endLine)
			str = strings.TrimSpace(str)
			switch {
			case lerr != nil:
				err <- lerr
				return
			case str == "": // ignore empty lines
			default:
				c.rd <- str
			}
		}
	}()

	go func() {
		defer wg.Done()

		writer := bufio.NewWriter(writer)
		for {
			var data Any
			select {
			case <-stopWrite:
				return
			case data = <-c.wr:
			}

			switch v := data.(type) {
			case string:
				str := strings.TrimSpace(v) + string(endLine)
				if _, lerr := writer.WriteString(str); lerr != nil {
					err <- lerr
					return
				}
			default:
				panic(fmt.Sprintf("Unknown value passed to in channel: %v", data))
			}
			writer.Flush()
		}
	}()

	wg.Wait()
	return <-err // return first error
}
