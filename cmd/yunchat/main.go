// Command yunchat is a terminal chat client for OpenAI, Anthropic and
// Google models, with streamed replies and local conversation history.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	yunchat "github.com/2214372851/YunChat"
	"github.com/2214372851/YunChat/core/chat"
	"github.com/2214372851/YunChat/internal/utils"
	"github.com/2214372851/YunChat/providers/ai"
	"github.com/2214372851/YunChat/providers/history/jsonfile"
	"github.com/2214372851/YunChat/providers/observability"
	"github.com/2214372851/YunChat/providers/observability/slogobs"
	"github.com/2214372851/YunChat/providers/webfetch"
)

// maxFetchChars caps how much of a fetched page gets attached to the next
// message, so a large article does not blow the model's context window.
const maxFetchChars = 20000

func main() {
	rootCmd := &cobra.Command{
		Use:   "yunchat",
		Short: "Chat with OpenAI, Anthropic and Google models from the terminal",
	}
	rootCmd.PersistentFlags().String("provider", "", "AI provider: openai, anthropic or google")
	rootCmd.PersistentFlags().String("api-key", "", "API key (default: <PROVIDER>_API_KEY from the environment)")
	rootCmd.PersistentFlags().String("base-url", "", "Override the provider's API base URL")
	rootCmd.PersistentFlags().String("model", "", "Override the provider's default model")
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")

	setupCmd := &cobra.Command{
		Use:   "setup",
		Short: "Save a provider and API key to a .env file",
		Run:   runSetup,
	}

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Run:   runChat,
	}
	chatCmd.Flags().String("history", "", "Persist the conversation to this JSON file")
	chatCmd.Flags().Float64("temperature", 0, "Sampling temperature")
	chatCmd.Flags().Int("max-tokens", 0, "Maximum tokens to generate")
	chatCmd.Flags().Float64("top-p", 0, "Nucleus sampling probability mass")
	chatCmd.Flags().Float64("frequency-penalty", 0, "Penalize frequent tokens")
	chatCmd.Flags().Float64("presence-penalty", 0, "Penalize already-mentioned topics")

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "List the models available to your API key",
		Run:   runModels,
	}

	keycheckCmd := &cobra.Command{
		Use:   "keycheck",
		Short: "Check whether the configured API key is accepted",
		Run:   runKeycheck,
	}

	rootCmd.AddCommand(setupCmd, chatCmd, modelsCmd, keycheckCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSetup(cmd *cobra.Command, args []string) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Printf("Provider (%s) [openai]: ", strings.Join(yunchat.Providers(), ", "))
	provider, _ := reader.ReadString('\n')
	provider = strings.TrimSpace(provider)
	if provider == "" {
		provider = ai.ProviderOpenAI
	}

	fmt.Printf("Enter your %s API key: ", provider)
	apiKey, _ := reader.ReadString('\n')
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "No API key entered, nothing saved.")
		os.Exit(1)
	}

	envContent := fmt.Sprintf("YUNCHAT_PROVIDER=%s\n%s=%s\n", provider, apiKeyEnvVar(provider), apiKey)
	if err := os.WriteFile(".env", []byte(envContent), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating .env file: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Saved to .env")

	transport, err := yunchat.NewTransport(provider, ai.Credential{APIKey: apiKey})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if transport.ValidateKey(context.Background()) {
		fmt.Println("API key verified.")
	} else {
		fmt.Println("Warning: the provider did not accept this key.")
	}
}

func runChat(cmd *cobra.Command, args []string) {
	loadEnv()
	ctx := observedContext(cmd)

	transport, provider, err := buildTransport(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	session := chat.NewSession(transport).WithOptions(generationOptions(cmd))

	if path, _ := cmd.Flags().GetString("history"); path != "" {
		store, err := jsonfile.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening history file: %v\n", err)
			os.Exit(1)
		}
		model, _ := cmd.Flags().GetString("model")
		session.WithHistory(store.WithMetadata(provider, model))
	}

	fmt.Printf("Chatting with %s (type 'exit' to quit)\n", provider)
	fmt.Println("Commands: /fetch <url>  attach a web page to your next message")
	fmt.Println("          /title       name the conversation")
	fmt.Println("          /clear       forget the conversation so far")
	fmt.Println("----------------------------------------")

	scanner := bufio.NewScanner(os.Stdin)
	var fetchedContext string

	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())

		switch {
		case input == "":
			continue
		case input == "exit" || input == "quit":
			return
		case strings.HasPrefix(input, "/fetch"):
			fetchedContext = runFetch(ctx, input)
			continue
		case input == "/title":
			title, err := session.SuggestTitle(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("Title: %s\n", title)
			continue
		case input == "/clear":
			if err := session.Clear(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println("Conversation cleared.")
			continue
		case strings.HasPrefix(input, "/"):
			fmt.Fprintf(os.Stderr, "Unknown command %q\n", input)
			continue
		}

		content := input
		if fetchedContext != "" {
			content = fetchedContext + "\n\n---\n\n" + input
			fetchedContext = ""
		}

		fmt.Print("\nAssistant: ")
		timer := utils.NewTimer()
		_, err := session.Send(ctx, content, func(delta string) { fmt.Print(delta) })
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		timer.Observe(ctx, "chat.turn.completed",
			observability.String(observability.AttrLLMProvider, provider),
		)
	}
}

// runFetch handles the /fetch REPL command and returns the context block to
// prepend to the next message, empty when the fetch failed.
func runFetch(ctx context.Context, input string) string {
	rawURL := strings.TrimSpace(strings.TrimPrefix(input, "/fetch"))
	if rawURL == "" {
		fmt.Fprintln(os.Stderr, "Usage: /fetch <url>")
		return ""
	}

	result, err := webfetch.Fetch(ctx, rawURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching page: %v\n", err)
		return ""
	}

	markdown := utils.TruncateString(result.Markdown, maxFetchChars)
	fmt.Printf("Fetched %s (%d chars), attached to your next message.\n", result.URL, len(markdown))
	return fmt.Sprintf("Context fetched from %s:\n\n%s", result.URL, markdown)
}

func runModels(cmd *cobra.Command, args []string) {
	loadEnv()
	ctx := observedContext(cmd)

	transport, _, err := buildTransport(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	models, err := transport.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing models: %v\n", err)
		os.Exit(1)
	}
	for _, model := range models {
		if model.DisplayName != "" && model.DisplayName != model.ID {
			fmt.Printf("%s\t%s\n", model.ID, model.DisplayName)
			continue
		}
		fmt.Println(model.ID)
	}
}

func runKeycheck(cmd *cobra.Command, args []string) {
	loadEnv()
	ctx := observedContext(cmd)

	transport, provider, err := buildTransport(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if !transport.ValidateKey(ctx) {
		fmt.Fprintf(os.Stderr, "%s rejected the API key\n", provider)
		os.Exit(1)
	}
	fmt.Printf("%s accepted the API key\n", provider)
}

// loadEnv pulls a .env file into the process environment when one exists.
// Missing files are fine; flags and the inherited environment still apply.
func loadEnv() {
	_ = godotenv.Load()
}

// observedContext attaches a slog-backed observer at the level selected by
// the --verbose count. Logs go to stderr so streamed replies stay clean.
func observedContext(cmd *cobra.Command) context.Context {
	ctx := context.Background()
	verbosity, _ := cmd.Flags().GetCount("verbose")
	if verbosity <= 0 {
		return ctx
	}
	level := slog.LevelDebug
	if verbosity >= 2 {
		level = slogobs.LevelTrace
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return observability.ContextWithObserver(ctx, slogobs.New(slog.New(handler)))
}

func resolveProvider(cmd *cobra.Command) string {
	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = os.Getenv("YUNCHAT_PROVIDER")
	}
	if provider == "" {
		provider = ai.ProviderOpenAI
	}
	return provider
}

// apiKeyEnvVar names the environment variable holding the key for a
// provider, e.g. OPENAI_API_KEY.
func apiKeyEnvVar(provider string) string {
	return strings.ToUpper(strings.TrimSpace(provider)) + "_API_KEY"
}

// buildTransport resolves the provider and credential from flags and the
// environment. The environment is read here and nowhere below: the core
// packages only ever see the assembled credential.
func buildTransport(cmd *cobra.Command) (ai.Transport, string, error) {
	provider := resolveProvider(cmd)

	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnvVar(provider))
	}
	if apiKey == "" {
		return nil, provider, fmt.Errorf("no API key for %s: pass --api-key, set %s, or run 'yunchat setup'", provider, apiKeyEnvVar(provider))
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	model, _ := cmd.Flags().GetString("model")

	transport, err := yunchat.NewTransport(provider, ai.Credential{
		APIKey:  apiKey,
		BaseURL: baseURL,
		Model:   model,
	})
	if err != nil {
		return nil, provider, err
	}
	return transport, provider, nil
}

// generationOptions collects the sampling flags the user actually set.
// Values are passed through as-is; each provider applies its own ranges.
func generationOptions(cmd *cobra.Command) *ai.GenerationOptions {
	flags := cmd.Flags()
	options := &ai.GenerationOptions{}
	set := false

	if flags.Changed("temperature") {
		value, _ := flags.GetFloat64("temperature")
		options.Temperature = utils.Ptr(value)
		set = true
	}
	if flags.Changed("max-tokens") {
		value, _ := flags.GetInt("max-tokens")
		options.MaxTokens = utils.Ptr(value)
		set = true
	}
	if flags.Changed("top-p") {
		value, _ := flags.GetFloat64("top-p")
		options.TopP = utils.Ptr(value)
		set = true
	}
	if flags.Changed("frequency-penalty") {
		value, _ := flags.GetFloat64("frequency-penalty")
		options.FrequencyPenalty = utils.Ptr(value)
		set = true
	}
	if flags.Changed("presence-penalty") {
		value, _ := flags.GetFloat64("presence-penalty")
		options.PresencePenalty = utils.Ptr(value)
		set = true
	}

	if !set {
		return nil
	}
	return options
}
