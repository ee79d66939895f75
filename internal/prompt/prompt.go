// Package prompt holds the interactive terminal prompts.
package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks whether to permanently delete up to count tweets.
// Returns false with a nil error when the user declines.
func Confirm(count int) (bool, error) {
	p := promptui.Prompt{
		Label:     fmt.Sprintf("This will delete up to %d tweets permanently, are you sure you want to continue", count),
		IsConfirm: true,
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// PIN reads the out-of-band authorization PIN.
func PIN() (string, error) {
	p := promptui.Prompt{
		Label: "Please enter the authorization PIN",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("PIN must not be empty")
			}
			return nil
		},
	}

	pin, err := p.Run()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(pin), nil
}
