package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/mentor/internal/assistant"
	"github.com/abhisek/mentor/internal/llm"
	"github.com/abhisek/mentor/internal/notify"
	"github.com/abhisek/mentor/internal/session"
	"github.com/abhisek/mentor/internal/store"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive study session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
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
		fmt.Fprintln(os.Stderr, "Guided responses will be unavailable; chain handlers still work.")
		provider = nil
	}

	a := assistant.New(assistant.DefaultConfig(), provider, logger)
	a.Attach(notify.NewLogObserver(logger))
	a.Attach(store.NewObserver(repo))

	sess := session.New()
	if err := repo.AppendSession(ctx, store.SessionEvent{
		SessionID: sess.ID(),
		Action:    "started",
	}); err != nil {
		logger.Warn("session start not recorded", zap.Error(err))
	}

	fmt.Println("Mentor ready. Ask a question, or /hint, /stats, /reset, /quit.")

	scanner := bufio.NewScanner(os.Stdin)
loop:
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch input {
		case "/quit", "/exit":
			break loop
		case "/hint":
			reply := a.RequestHint(ctx, sess)
			fmt.Println(reply.Text)
			continue
		case "/stats":
			printSessionStats(a.Stats(sess))
			continue
		case "/reset":
			a.Reset(sess, false)
			if err := repo.AppendSession(ctx, store.SessionEvent{
				SessionID: sess.ID(),
				Action:    "reset",
			}); err != nil {
				logger.Warn("session reset not recorded", zap.Error(err))
			}
			fmt.Println("Conversation cleared. Stats are preserved.")
			continue
		}

		reply := a.Process(ctx, sess, input)
		fmt.Println(reply.Text)
	}

	stats := a.Stats(sess)
	if err := repo.AppendSession(ctx, store.SessionEvent{
		SessionID:      sess.ID(),
		Action:         "ended",
		QuestionsAsked: stats.QuestionsAsked,
		HintsGiven:     stats.HintsGiven,
		DurationSecs:   int64(time.Since(sess.StartedAt()).Seconds()),
	}); err != nil {
		logger.Warn("session end not recorded", zap.Error(err))
	}

	fmt.Println()
	printSessionStats(stats)
	return scanner.Err()
}

func printSessionStats(stats session.Stats) {
	fmt.Printf("Questions asked: %d\n", stats.QuestionsAsked)
	fmt.Printf("Hints given:     %d\n", stats.HintsGiven)
	if len(stats.ByType) > 0 {
		fmt.Println("By type:")
		for k, v := range stats.ByType {
			fmt.Printf("  %-24s %d\n", k, v)
		}
	}
	if len(stats.ByStrategy) > 0 {
		fmt.Println("By strategy:")
		for k, v := range stats.ByStrategy {
			fmt.Printf("  %-24s %d\n", k, v)
		}
	}
}
