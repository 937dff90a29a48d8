package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/acolombo/taskdeck/internal/api/auth"
	"github.com/acolombo/taskdeck/internal/cli/output"
	"github.com/acolombo/taskdeck/pkg/api"
	"github.com/acolombo/taskdeck/pkg/identity"
)

var (
	tokenSubject string
	tokenEmail   string
	tokenName    string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a credential for testing",
	Long: `Mint a signed JWT for the given identity.

The signing secret is read from the TASKDECK_SECRET environment variable.
Any accepted identity encoding works for --subject; the token always carries
the canonical form. Without --subject a fresh identity is generated.

Examples:
  # Token for a fresh identity
  TASKDECK_SECRET=... taskdeck token --email dev@example.com

  # Token for an existing account, one hour lifetime
  TASKDECK_SECRET=... taskdeck token \
    --subject add60fd1-792f-4ab9-9a53-e2f859482c59 \
    --email alice@example.com --ttl 1h`,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "Identity to mint the token for (default: newly generated)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "Email claim (required)")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "Token lifetime (default: 24h)")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runToken(cmd *cobra.Command, args []string) error {
	secret := os.Getenv(api.EnvSecret)
	if secret == "" {
		return fmt.Errorf("signing secret is required; set the %s environment variable", api.EnvSecret)
	}

	var id identity.ID
	if tokenSubject == "" {
		id = identity.New()
	} else {
		var err error
		id, err = identity.Normalize(tokenSubject)
		if err != nil {
			return fmt.Errorf("invalid subject: %w", err)
		}
	}

	codec, err := auth.NewCodec(auth.CodecConfig{
		Secret: secret,
		Issuer: "taskdeck",
	})
	if err != nil {
		return err
	}

	token, err := codec.Issue(id, tokenEmail, tokenName, tokenTTL)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	return output.SimpleTable(os.Stdout, [][2]string{
		{"Identity", id.String()},
		{"Token", token},
	})
}
