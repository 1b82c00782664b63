package token

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrEmptyToken is returned by Prompt when the user enters nothing.
var ErrEmptyToken = errors.New("token cannot be empty")

// TokenURL is where users find their Todoist API token.
const TokenURL = "https://todoist.com/prefs/integrations"

// Prompter asks the user for a token on in, writing prompts to out.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a prompter. When in is a terminal the token is read
// without echo.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt prints the welcome banner and reads one token. Surrounding
// whitespace is trimmed; a blank answer yields ErrEmptyToken.
func (p *Prompter) Prompt() (string, error) {
	p.println("Welcome to Todoist CLI!")
	p.println("To get started, you need to provide your Todoist API token.")
	p.println("You can find your token at: " + TokenURL)
	p.println("")
	fmt.Fprint(p.out, "Please enter your Todoist API token: ")

	line, err := p.readSecret()
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(line)
	if token == "" {
		p.println("Error: Token cannot be empty.")
		return "", ErrEmptyToken
	}
	return token, nil
}

// Confirm asks a yes/no question. Anything other than y or yes, including
// end of input, is a no.
func (p *Prompter) Confirm(question string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", question)
	line, err := readLine(p.in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (p *Prompter) readSecret() (string, error) {
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		// ReadPassword swallows the newline typed by the user.
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return readLine(p.in)
}

func (p *Prompter) println(s string) {
	fmt.Fprintln(p.out, s)
}

// readLine reads up to and excluding the next newline. End of input after a
// partial line is not an error.
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
