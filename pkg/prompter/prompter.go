package prompter

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

// PromptString prompts user for a string input
func PromptString(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// PromptPassword prompts user for a password (hidden input)
func PromptPassword(label string) (string, error) {
	fmt.Print(label)

	// Read password without echoing
	bytepw, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}

	fmt.Println() // New line after password input

	return string(bytepw), nil
}

// PromptConfirm prompts user for yes/no confirmation
func PromptConfirm(label string) (bool, error) {
	fmt.Print(label + " (y/n) ")
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}

	response := strings.TrimSpace(strings.ToLower(input))
	return response == "y" || response == "yes", nil
}
