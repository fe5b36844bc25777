package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	ResetPassword(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	Browse(ctx context.Context) error
	MyProfile(ctx context.Context) error
	ShowProfile(ctx context.Context, userID string) error
	EditProfile(ctx context.Context) error
	UploadAvatar(ctx context.Context, path string) error
	AddPost(ctx context.Context) error
	DeletePost(ctx context.Context, id string) error
	MyPosts(ctx context.Context) error
	Categories(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the SkillLink CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands while not logged in: help, signup, login, resetpw, exit.
// Commands while logged in: help, browse, myprofile, profile <id>,
// editprofile, avatar <path>, post, delete <id>, myposts, categories,
// whoami, chpass, resetpw, logout, exit.
//
// Errors returned by command handlers are printed and the loop continues;
// nothing here is fatal.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("skilllink %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: browse, myprofile, profile <id>, editprofile, avatar <path>, post, delete <id>, myposts, categories, whoami, chpass, resetpw, logout, exit")
			} else {
				printlnFn("Available commands: signup, login, resetpw, exit")
			}

		case "signup":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "resetpw":
			err = a.ResetPassword(ctx)

		case "chpass":
			err = a.ChangePassword(ctx)

		case "browse", "b":
			err = a.Browse(ctx)

		case "myprofile":
			err = a.MyProfile(ctx)

		case "profile":
			if len(args) == 0 {
				printlnFn("Usage: profile <user-id>")
				continue
			}
			err = a.ShowProfile(ctx, args[0])

		case "editprofile":
			err = a.EditProfile(ctx)

		case "avatar":
			if len(args) == 0 {
				printlnFn("Usage: avatar <path-to-image>")
				continue
			}
			err = a.UploadAvatar(ctx, args[0])

		case "post":
			err = a.AddPost(ctx)

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <post-id>")
				continue
			}
			err = a.DeletePost(ctx, args[0])

		case "myposts":
			err = a.MyPosts(ctx)

		case "categories":
			err = a.Categories(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
