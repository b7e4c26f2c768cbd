package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/gubarz/snipmd/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "0.1.0"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "snipmd",
	Short: "Markdown with embedded source snippets",
	Long: `Renders Markdown documents containing @[code](path) directives.

A directive embeds a local file as a code block, optionally keeping only a
line range (transclude=3-10), a tagged region (transcludeTag=name) or the
lines between pattern matches (transcludeWith=regex). A leading @ in the
path stands for the configured root directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(viewCmd)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: snipmd.yaml in ~/.config/snipmd, ~ or .)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log directive resolution and file reads")
	rootCmd.PersistentFlags().StringP("root", "r", "", "Directory substituted for a leading @ in paths")
	rootCmd.PersistentFlags().Bool("highlight", false, "Highlight code with chroma")
	rootCmd.PersistentFlags().String("style", "", "Chroma style name")
	rootCmd.PersistentFlags().IntP("jobs", "j", 0, "Documents rendered concurrently")

	viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	viper.BindPFlag("highlight", rootCmd.PersistentFlags().Lookup("highlight"))
	viper.BindPFlag("style", rootCmd.PersistentFlags().Lookup("style"))
	viper.BindPFlag("jobs", rootCmd.PersistentFlags().Lookup("jobs"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		warn("Error loading config: %v", err)
	}

	level, err := logrus.ParseLevel(config.GetLogLevel())
	if err != nil {
		level = logrus.WarnLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	logrus.SetLevel(level)
	logrus.SetOutput(os.Stderr)
}

func warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(os.Stderr, format+"\n", args...)
}

func main() {
	rootCmd.Version = version

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "Error: ")
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
