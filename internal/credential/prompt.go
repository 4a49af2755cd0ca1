package credential

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	gherrors "github.com/quillhq/ghops/internal/errors"
)

// Prompt interactively acquires a credential from the terminal. The token is
// read without echoing. A non-empty knownIdentity skips the username prompt
// (e.g. when the username came from config but the token did not).
//
// Fails with ErrInputAborted when stdin is not a terminal or the operator
// cancels (EOF / interrupt during the password read).
func Prompt(knownIdentity string) (Credential, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return Credential{}, fmt.Errorf("%w: stdin is not a terminal", gherrors.ErrInputAborted)
	}

	return prompt(bufio.NewReader(os.Stdin), os.Stderr, knownIdentity, readSecretFromTerminal)
}

// prompt is the testable core of Prompt: input, output, and the no-echo
// secret reader are injected.
func prompt(in *bufio.Reader, out io.Writer, knownIdentity string, readSecret func() ([]byte, error)) (Credential, error) {
	identity := knownIdentity
	if identity == "" {
		fmt.Fprint(out, "GitHub username: ")
		line, err := in.ReadString('\n')
		if err != nil {
			return Credential{}, fmt.Errorf("%w: %v", gherrors.ErrInputAborted, err)
		}
		identity = strings.TrimSpace(line)
	}

	fmt.Fprint(out, "Personal access token (input hidden): ")
	secret, err := readSecret()
	fmt.Fprintln(out)
	if err != nil {
		zero(secret)
		if errors.Is(err, io.EOF) {
			return Credential{}, gherrors.ErrInputAborted
		}
		return Credential{}, fmt.Errorf("%w: %v", gherrors.ErrInputAborted, err)
	}

	cred, err := Static(identity, strings.TrimSpace(string(secret)))
	zero(secret)
	return cred, err
}

func readSecretFromTerminal() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
