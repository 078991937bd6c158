package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	templatePath string
	subreddit    string
	postLimit    int
	debugMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "subcast",
	Short: "Narrates subreddit text posts into a static audio page",
	Long: `A batch tool that fetches hot text posts from a subreddit, synthesizes
narration audio for each new one, and regenerates a static HTML page with
embedded audio players. Intended to run on a schedule, one run at a time.`,
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(debugMode)
		if err := run(log); err != nil {
			log.Fatalf("Program execution failed: %v", err)
		}
		log.Info("Program completed successfully")
	},
}

func init() {
	rootCmd.Flags().StringVar(&settingsPath, "settings", "", "Path to a settings YAML file")
	rootCmd.Flags().StringVar(&templatePath, "template", "", "Path to a custom page template file")
	rootCmd.Flags().StringVar(&subreddit, "subreddit", "", "Subreddit to narrate (overrides settings)")
	rootCmd.Flags().IntVar(&postLimit, "limit", 0, "Number of posts to fetch (overrides settings)")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

// run executes one full pipeline pass: connect, load history, fetch and
// narrate, save history, render the page. A returned error means the run
// failed and the process should exit non-zero.
func run(log *logrus.Logger) error {
	// .env is optional; real deployments set the variables directly.
	_ = godotenv.Load()

	overrides := &ConfigOverrides{}
	if settingsPath != "" {
		overrides.SettingsPath = &settingsPath
	}
	if templatePath != "" {
		overrides.TemplatePath = &templatePath
	}

	cfg, err := NewConfig(overrides)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if subreddit != "" {
		cfg.Settings.Subreddit = subreddit
	}
	if postLimit > 0 {
		cfg.Settings.PostLimit = postLimit
	}

	ctx := context.Background()

	log.Info("Connecting to Reddit API...")
	source, err := NewRedditClient(ctx, CredentialsFromEnv())
	if err != nil {
		return err
	}
	if err := source.Verify(ctx); err != nil {
		return fmt.Errorf("failed to connect to Reddit API: %w", err)
	}
	log.Info("Successfully connected to Reddit API")

	synth, err := NewGoogleSynthesizer(ctx, cfg.Settings.Voice.Name)
	if err != nil {
		return err
	}
	defer synth.Close()

	store := NewProcessedStore(cfg.Settings.HistoryFile, log)
	processed := store.Load()
	log.Infof("Loaded %d previously processed post IDs", len(processed))

	processor := NewProcessor(source, synth, cfg.Settings, processed, log)
	posts := processor.Run(ctx)
	log.Infof("Processed %d new posts", len(posts))

	store.Save(processed)

	renderer, err := NewPageRenderer(cfg, log)
	if err != nil {
		return err
	}
	return renderer.WritePage(posts)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
