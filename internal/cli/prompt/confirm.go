package prompt

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
)

// Confirm asks a yes/no question. Empty input takes the default; "n" and
// Ctrl+C both answer no, but only Ctrl+C reports ErrAborted.
func Confirm(label string, defaultYes bool) (bool, error) {
	hint := "y/N"
	if defaultYes {
		hint = "Y/n"
	}

	result, err := (&promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, hint),
		IsConfirm: true,
	}).Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			return false, ErrAborted
		}
		// promptui answers "n" with ErrAbort.
		if err == promptui.ErrAbort {
			return false, nil
		}
		if result == "" {
			return defaultYes, nil
		}
		return false, err
	}

	answer := strings.ToLower(result)
	return answer == "y" || answer == "yes", nil
}

// ConfirmDanger guards a destructive operation behind typing the
// confirmation word verbatim.
func ConfirmDanger(label, confirmWord string) (bool, error) {
	result, err := (&promptui.Prompt{
		Label: fmt.Sprintf("%s (type '%s' to confirm)", label, confirmWord),
		Validate: func(input string) error {
			if input != confirmWord {
				return fmt.Errorf("type '%s' to confirm", confirmWord)
			}
			return nil
		},
	}).Run()
	if err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, wrapError(err)
	}
	return result == confirmWord, nil
}

// ConfirmWithForce skips the prompt when force is set, for scripted use.
func ConfirmWithForce(label string, force bool) (bool, error) {
	if force {
		return true, nil
	}
	return Confirm(label, false)
}
