package prompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ErrPasswordMismatch is returned when the confirmation entry differs from
// the password.
var ErrPasswordMismatch = errors.New("passwords do not match")

// minPasswordLength matches the register endpoint's validation so a
// CLI-created account can always log in through the API.
const minPasswordLength = 8

// NewPassword prompts for a new password twice, masked, enforcing the
// minimum length on the first entry.
func NewPassword() (string, error) {
	password, err := (&promptui.Prompt{
		Label: "Password",
		Mask:  '*',
		Validate: func(input string) error {
			if len(input) < minPasswordLength {
				return fmt.Errorf("password must be at least %d characters", minPasswordLength)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return "", wrapError(err)
	}

	confirm, err := (&promptui.Prompt{
		Label: "Confirm password",
		Mask:  '*',
	}).Run()
	if err != nil {
		return "", wrapError(err)
	}

	if password != confirm {
		return "", ErrPasswordMismatch
	}
	return password, nil
}
