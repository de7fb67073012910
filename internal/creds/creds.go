// Package creds resolves the credentials for a run before any connection is
// attempted: explicit flag, then environment variable, then interactive
// prompt. Secret prompts never echo input.
package creds

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Environment variables consulted when a credential flag is not given.
const (
	EnvUsername = "NETRUN_USERNAME"
	EnvPassword = "NETRUN_PASSWORD"
	EnvEnable   = "NETRUN_ENABLE"
)

// Privilege levels understood by the session driver.
const (
	PrivExec   = "exec"
	PrivEnable = "privilege-exec"
)

// PromptFunc reads one credential interactively. secret suppresses echo.
type PromptFunc func(label string, secret bool) (string, error)

// Input carries the credential-related flag values as parsed.
type Input struct {
	Username     string
	Password     string
	EnableSecret string
	NoEnable     bool
}

// Credentials is the resolved, immutable credential set handed to the
// session driver.
type Credentials struct {
	Username       string
	Password       string
	EnableSecret   string
	PrivilegeLevel string
}

// Resolve fills each missing credential from the environment and finally from
// the prompt. With enable mode on and no enable secret configured anywhere,
// the login password is reused, matching common device setups.
func Resolve(in Input, getenv func(string) string, prompt PromptFunc) (Credentials, error) {
	c := Credentials{
		Username:     in.Username,
		Password:     in.Password,
		EnableSecret: in.EnableSecret,
	}

	if c.Username == "" {
		c.Username = getenv(EnvUsername)
	}
	if c.Username == "" {
		v, err := prompt("SSH Username: ", false)
		if err != nil {
			return Credentials{}, fmt.Errorf("read username: %w", err)
		}
		c.Username = v
	}

	if c.Password == "" {
		c.Password = getenv(EnvPassword)
	}
	if c.Password == "" {
		v, err := prompt("SSH Password: ", true)
		if err != nil {
			return Credentials{}, fmt.Errorf("read password: %w", err)
		}
		c.Password = v
	}

	if in.NoEnable {
		c.PrivilegeLevel = PrivExec
		return c, nil
	}
	c.PrivilegeLevel = PrivEnable
	if c.EnableSecret == "" {
		c.EnableSecret = getenv(EnvEnable)
	}
	if c.EnableSecret == "" {
		c.EnableSecret = c.Password
	}
	return c, nil
}

// Terminal returns a PromptFunc backed by stdin/stderr. Secrets are read with
// term.ReadPassword so nothing is echoed back to the terminal.
func Terminal() PromptFunc {
	reader := bufio.NewReader(os.Stdin)
	return func(label string, secret bool) (string, error) {
		fmt.Fprint(os.Stderr, label)
		if secret {
			b, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return "", err
			}
			return string(b), nil
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}
