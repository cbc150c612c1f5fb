package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests use a recording stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	New(ctx context.Context) error
	Click(ctx context.Context, args []string) error
	Undo(ctx context.Context) error
	Cancel(ctx context.Context) error
	Finish(ctx context.Context) error
	Delete(ctx context.Context) error
	Select(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Show(ctx context.Context) error
	CPF(ctx context.Context, args []string) error
}

var errUsage = errors.New("usage")

const (
	helpLoggedOut = "Available commands: register, login, cpf <value>, exit"
	helpLoggedIn  = "Available commands: new, click <lat> <lon>, undo, cancel, finish, delete, " +
		"select <n>, select at <lat> <lon>, list, show, whoami, cpf <value>, logout, exit"
)

// runREPL reads commands line by line and dispatches them to a. It returns
// on EOF or on "exit"/"quit". Handler errors are printed and the loop goes
// on.
//
//	Logged out:
//	  help, register, login, cpf <value>, exit
//
//	Logged in:
//	  new                    start a polygon
//	  click <lat> <lon>      add a point to the polygon being drawn
//	  undo                   drop the last point
//	  cancel                 discard the polygon being drawn
//	  finish                 commit the polygon (3 points or more)
//	  delete                 arm or disarm delete mode
//	  select <n>             delete polygon n (1-based) while armed
//	  select at <lat> <lon>  delete the top-most polygon under a point
//	  list, show, whoami, logout, exit
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "polymap%s> ", withSpace(statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(out, helpLoggedIn)
			} else {
				fmt.Fprintln(out, helpLoggedOut)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "cpf":
			cmdErr = a.CPF(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		case "logout", "whoami", "new", "click", "undo", "cancel", "finish", "delete", "select", "l", "list", "show":
			if !a.isLoggedIn() {
				fmt.Fprintln(out, "Please log in first")
				continue
			}
			cmdErr = dispatchEditor(ctx, a, cmd, args)
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil && !errors.Is(cmdErr, errUsage) {
			fmt.Fprintln(out, "error:", cmdErr)
		}
	}
}

func dispatchEditor(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.Logout(ctx)
	case "whoami":
		return a.WhoAmI(ctx)
	case "new":
		return a.New(ctx)
	case "click":
		return a.Click(ctx, args)
	case "undo":
		return a.Undo(ctx)
	case "cancel":
		return a.Cancel(ctx)
	case "finish":
		return a.Finish(ctx)
	case "delete":
		return a.Delete(ctx)
	case "select":
		return a.Select(ctx, args)
	case "l", "list":
		return a.List(ctx)
	case "show":
		return a.Show(ctx)
	}
	return nil
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
