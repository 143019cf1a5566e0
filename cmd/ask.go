package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mentor/internal/assistant"
	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/notify"
	"github.com/abhisek/mentor/internal/session"
	"github.com/abhisek/mentor/internal/store"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question without starting a session",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := newLogger(cmd)
		defer logger.Sync()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		repo := st.EventRepo()

		provider, err := llm.NewProviderFromEnv(ctx, repo, logger)
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			provider = nil
		}

		a := assistant.New(assistant.DefaultConfig(), provider, logger)
		a.Attach(notify.NewLogObserver(logger))
		a.Attach(store.NewObserver(repo))

		reply := a.Process(ctx, session.New(), strings.Join(args, " "))
		fmt.Println(reply.Text)
		return nil
	},
}
