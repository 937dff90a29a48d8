// Package prompt wraps promptui for the interactive pieces of the taskdeck
// CLI: passwords, confirmations, and validated text input.
package prompt

import (
	"errors"

	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user cancels a prompt with Ctrl+C.
var ErrAborted = errors.New("aborted")

// IsAborted reports whether the error came from a cancelled prompt.
func IsAborted(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) || errors.Is(err, ErrAborted)
}

// wrapError folds promptui's interrupt/abort errors into ErrAborted so
// callers handle one sentinel.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if IsAborted(err) {
		return ErrAborted
	}
	return err
}

// InputWithValidation prompts for text until validate accepts it.
func InputWithValidation(label string, validate func(string) error) (string, error) {
	result, err := (&promptui.Prompt{
		Label:    label,
		Validate: validate,
	}).Run()
	return result, wrapError(err)
}
