// Command wordpecker is a terminal front end for the chatstream engines:
// list available backends, hold a streaming chat, or translate a snippet the
// way the highlight-translate flow would.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wordpecker/wordpecker/chatstream"
	"github.com/wordpecker/wordpecker/settings"
)

var (
	flagEngine   string
	flagModel    string
	flagEndpoint string
	flagKey      string
	flagConfig   string
	flagTarget   string
	flagVerbose  bool
)

func main() {
	root := &cobra.Command{
		Use:           "wordpecker",
		Short:         "Streaming chat and translation over interchangeable LLM backends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagEngine, "engine", "chatgpt", "engine identifier (see 'wordpecker engines')")
	root.PersistentFlags().StringVar(&flagModel, "model", "", "override the engine's default model")
	root.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "override the engine's default endpoint")
	root.PersistentFlags().StringVar(&flagKey, "key", "", "API key or access token")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "settings file path")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	translate := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate a snippet through the selected engine",
		Args:  cobra.ExactArgs(1),
		RunE:  runTranslate,
	}
	translate.Flags().StringVar(&flagTarget, "to", "English", "target language")

	root.AddCommand(
		&cobra.Command{
			Use:   "engines",
			Short: "List available engines",
			RunE:  runEngines,
		},
		&cobra.Command{
			Use:   "chat",
			Short: "Interactive streaming chat",
			RunE:  runChat,
		},
		translate,
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runEngines(cmd *cobra.Command, args []string) error {
	for _, e := range chatstream.Engines() {
		defaults := e.Adapter().Defaults()
		fmt.Printf("%-10s %-14s %s\n", e.ID, e.DisplayName, defaults.Model)
	}
	return nil
}

// newSession wires flags, the settings file and a stderr notifier into a
// session for the selected engine.
func newSession(seed []chatstream.Message, hooks chatstream.Hooks) (*chatstream.Session, error) {
	engine := chatstream.SelectEngine(flagEngine)
	if engine == nil {
		return nil, fmt.Errorf("engine %q doesn't exist", flagEngine)
	}

	store, err := settings.Open(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return engine.NewSession(
		chatstream.WithSeedHistory(seed),
		chatstream.WithConfig(chatstream.VendorConfig{
			Endpoint: flagEndpoint,
			APIKey:   flagKey,
			Model:    flagModel,
		}),
		chatstream.WithSettings(store),
		chatstream.WithHooks(hooks),
		chatstream.WithNotifier(func(kind, message string) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", kind, message)
		}),
		chatstream.WithLogger(newLogger()),
	), nil
}

// streamHooks prints deltas as they arrive. OnGenerating receives cumulative
// text, so only the unseen suffix is written.
func streamHooks() chatstream.Hooks {
	printed := 0
	return chatstream.Hooks{
		OnBeforeRequest: func() { printed = 0 },
		OnGenerating: func(cumulative string) {
			fmt.Print(cumulative[printed:])
			printed = len(cumulative)
		},
		OnComplete: func(string) { fmt.Println() },
	}
}

func runChat(cmd *cobra.Command, args []string) error {
	session, err := newSession(nil, streamHooks())
	if err != nil {
		return err
	}

	fmt.Printf("chatting with %s; empty line to quit, /clear to reset, /refresh to regenerate\n", session.Engine())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			return nil
		case "/clear":
			session.Clear()
		case "/refresh":
			// Failures are already surfaced through the hooks and notifier.
			_ = session.Refresh(context.Background())
		default:
			_ = session.Send(context.Background(), line)
		}
	}
}

func runTranslate(cmd *cobra.Command, args []string) error {
	seed := chatstream.TranslationSeed(chatstream.SelectionContext{
		Text:       args[0],
		TargetLang: flagTarget,
	})

	session, err := newSession(seed, streamHooks())
	if err != nil {
		return err
	}
	return session.Send(context.Background(), args[0])
}
