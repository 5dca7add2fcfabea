// Package sh provides the ishell backed interactive shell for driving a
// PID sign from a terminal.
package sh

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/signalworks/pid.go/pkg/pid"
	"github.com/signalworks/pid.go/pkg/pid/serial"
)

// Shell wraps ishell with a PID session.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Session *pid.Session
	cancel  func()
}

const (
	shellKey     = "$shell"
	closedPrompt = "[none] > "
)

var (
	evalOnly bool
	noAck    bool
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&noAck, "noack", noAck, "Do not wait for device acknowledgments.")
}

// New creates a new shell.
func New() *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(closedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeOpen wraps a command func that requires an open device.
func MustBeOpen(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("no open device"))
			return
		}
		fn(c)
	}
}

// Open opens the device, wires a session to it and starts the read pump.
func (s *Shell) Open(device string, addr byte) error {
	port, err := serial.Open(device)
	if err != nil {
		return err
	}
	session := pid.NewSession(port, addr)
	session.NoAck = noAck
	port.Handler = session

	ctx, cancel := context.WithCancel(context.Background())
	go port.Run(ctx)

	if s.Session != nil {
		s.close()
	}
	s.Session, s.cancel = session, cancel
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", device))
	return nil
}

func (s *Shell) close() {
	s.cancel()
	if err := s.Session.Close(context.Background()); err != nil {
		log.Println(err)
	}
	s.Session = nil
	s.Shell.SetPrompt(closedPrompt)
}

var commands = []*ishell.Cmd{
	{
		Name: "open",
		Help: "DEVICE [ADDR]",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("device expected"))
				return
			}
			addr := 1
			if len(c.Args) >= 2 {
				var err error
				if addr, err = strconv.Atoi(c.Args[1]); err != nil {
					c.Err(err)
					return
				}
			}
			if err := ShellFrom(c).Open(c.Args[0], byte(addr)); err != nil {
				c.Err(err)
			}
		},
	},
	{
		Name: "send",
		Help: "MESSAGE",
		Func: MustBeOpen(func(c *ishell.Context) {
			msg := strings.Join(c.Args, " ")
			if err := ShellFrom(c).Session.SendText(context.Background(), msg); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	},
	{
		Name: "ping",
		Help: "",
		Func: MustBeOpen(func(c *ishell.Context) {
			if err := ShellFrom(c).Session.Ping(context.Background()); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	},
	{
		Name: "raw",
		Help: "HEX",
		Func: MustBeOpen(func(c *ishell.Context) {
			b, err := hex.DecodeString(strings.Join(c.Args, ""))
			if err != nil {
				c.Err(err)
				return
			}
			if err := ShellFrom(c).Session.SendRaw(context.Background(), b); err != nil {
				c.Err(err)
				return
			}
			c.Println("OK")
		}),
	},
	{
		Name: "close",
		Help: "",
		Func: MustBeOpen(func(c *ishell.Context) {
			ShellFrom(c).close()
		}),
	},
}

// Run runs the shell, processing args as a single command when present.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New().Run(flag.Args()...)
}
