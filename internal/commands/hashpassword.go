package commands

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/trondheimsveien165173-max/parkering1651731/internal/app"
)

var (
	ErrEmptyUsername    = errors.New("username cannot be empty")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrUsernameColon    = errors.New("username cannot contain ':'")
)

// HashPassword handles the hash-password subcommand: it prompts for the
// management credentials and writes the Argon2id auth file.
func HashPassword(defaultPath string, args []string) error {
	fs := flag.NewFlagSet("hash-password", flag.ContinueOnError)
	path := fs.String("file", defaultPath, "Auth file to write")
	overwrite := fs.Bool("overwrite", false, "Overwrite existing auth file without asking")
	insecureUnmask := fs.Bool("insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: parkering hash-password [OPTIONS]\n\n")
		fmt.Fprintf(os.Stderr, "Creates the auth file protecting the management pages (/admin).\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AUTH_FILE    Default for -file (default: auth.secret next to the binary)\n")
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	in := bufio.NewReader(os.Stdin)
	fmt.Print("Enter username: ")
	username, err := readLine(in)
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	var password, confirm string
	if *insecureUnmask {
		fmt.Fprintf(os.Stderr, "⚠️  WARNING: Password will be visible on screen!\n")
		fmt.Print("Enter password:   ")
		if password, err = readLine(in); err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		fmt.Print("Confirm password: ")
		if confirm, err = readLine(in); err != nil {
			return fmt.Errorf("reading password confirmation: %w", err)
		}
	} else {
		if password, err = readPasswordWithMask("Enter password:   "); err != nil {
			return err
		}
		if confirm, err = readPasswordWithMask("Confirm password: "); err != nil {
			return err
		}
	}

	if err := checkCredentials(username, password, confirm); err != nil {
		return err
	}
	return app.CreateAuthFile(*path, username, password, *overwrite)
}

func checkCredentials(username, password, confirm string) error {
	switch {
	case username == "":
		return ErrEmptyUsername
	case strings.Contains(username, ":"):
		return ErrUsernameColon
	case password == "":
		return ErrEmptyPassword
	case password != confirm:
		return ErrPasswordMismatch
	}
	return nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPasswordWithMask reads a password in raw mode and echoes asterisks.
// Without a terminal it falls back to hidden input.
func readPasswordWithMask(prompt string) (string, error) {
	fmt.Print(prompt)
	fd := int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		password, err := term.ReadPassword(fd)
		fmt.Println()
		return string(password), err
	}
	defer term.Restore(fd, oldState)

	var password []byte
	reader := bufio.NewReader(os.Stdin)
	for {
		char, _, err := reader.ReadRune()
		if err != nil {
			fmt.Print("\r\n")
			return string(password), nil
		}

		switch char {
		case '\n', '\r':
			fmt.Print("\r\n")
			return string(password), nil
		case 127, 8: // backspace
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Print("\b \b")
			}
		case 3: // Ctrl+C
			fmt.Print("\r\n")
			return "", errors.New("aborted")
		default:
			if char >= 32 && char <= 126 {
				password = append(password, byte(char))
				fmt.Print("*")
			}
		}
	}
}
