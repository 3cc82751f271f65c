package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/phrazzld/tenx-cards/internal/api"
	"github.com/phrazzld/tenx-cards/internal/client"
	"github.com/spf13/cobra"
)

type authFunc func(c *client.Client, ctx context.Context, email, password string) (*api.AuthResponse, error)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	return newAuthCommand(ctx, "login", "Log in and store the access token", "Logged in",
		(*client.Client).Login)
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	return newAuthCommand(ctx, "register", "Create an account and store the access token", "Registered",
		(*client.Client).Register)
}

func newAuthCommand(ctx *commandContext, use, short, done string, call authFunc) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := bufio.NewReader(cmd.InOrStdin())
			var err error
			if email == "" {
				if email, err = promptLine(in, cmd.OutOrStdout(), "Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = promptLine(in, cmd.OutOrStdout(), "Password: "); err != nil {
					return err
				}
			}

			c, err := client.New(ctx.serverURL())
			if err != nil {
				return err
			}
			resp, err := call(c, cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s failed: %w", use, err)
			}
			if err := ctx.saveToken(resp.AccessToken); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s as %s\n", done, strings.TrimSpace(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
