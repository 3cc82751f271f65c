package main

import (
	"fmt"
	"os"

	"github.com/phrazzld/tenx-cards/internal/client"
	"github.com/phrazzld/tenx-cards/internal/domain/review"
	"github.com/spf13/cobra"
)

func newGenerateCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate flashcards from a text file and review them",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read source text: %w", err)
			}

			c, err := ctx.newClient()
			if err != nil {
				return err
			}

			session := review.NewSession()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Generating flashcards...")

			resp, err := c.Generate(cmd.Context(), string(source))
			if err != nil {
				session.FailGeneration()
				return fmt.Errorf("%s\n%w", session.LastError(), err)
			}
			session.Init(string(source), resp.GenerationID, client.Candidates(resp))
			fmt.Fprintf(out, "Generated %d candidates (generation %d)\n", resp.TotalGenerated, resp.GenerationID)

			loop := newReviewLoop(session, c, cmd.InOrStdin(), out)
			return loop.run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the source text (1000 to 10000 characters)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
