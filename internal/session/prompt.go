package session

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

const invalidNumberMessage = "Invalid number, please try again."

// prompter reads one line per prompt. Malformed numbers are re-prompted;
// end of input is reported as io.EOF.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(p.in.Text(), "\r"), nil
}

func (p *prompter) integer(label string) (int, error) {
	for {
		raw, err := p.line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(p.out, invalidNumberMessage)
	}
}

// decimal accepts finite amounts only; NaN and infinities have no JSON
// encoding and would make the record unsaveable.
func (p *prompter) decimal(label string) (float64, error) {
	for {
		raw, err := p.line(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return v, nil
		}
		fmt.Fprintln(p.out, invalidNumberMessage)
	}
}
