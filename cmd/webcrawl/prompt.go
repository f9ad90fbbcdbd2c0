package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// promptURL asks the operator for the starting URL.
// Returns the raw input trimmed; validation happens later.
func promptURL(in *bufio.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "Enter a starting URL (e.g. http://localhost:8893/): ")

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// promptYesNo asks a yes/no question and returns the answer.
// Anything other than "y" or "yes" (case-insensitive) is no,
// so an empty answer takes the default.
func promptYesNo(in *bufio.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N]: ", question)

	line, err := in.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
