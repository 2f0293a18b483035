package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bassamadnan/inboxagent/analysis"
	"github.com/bassamadnan/inboxagent/config"
	"github.com/bassamadnan/inboxagent/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultConfigPath = "config/inboxagent.yaml"

type rootOptions struct {
	configPath string
	baseURL    string
	logFile    string
	timeout    time.Duration
	verbose    bool

	cfg    *config.Manager
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "inboxagent",
		Short: "Inbox copilot: classify, summarize and draft replies for pasted messages",
		Long: `inboxagent sends a pasted email or chat message to the analysis service and shows
its classification, summary, tasks and a suggested reply. Replies can be rewritten
in a friendly, polished or short style and copied to the clipboard.

Run without arguments to start the interactive console.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}
			return tui.NewApp(cmd.Context(), client, opts.logger).Run()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "path to the YAML config file")
	flags.StringVar(&opts.baseURL, "base-url", "", "analysis service address (overrides config)")
	flags.StringVar(&opts.logFile, "log-file", "", "log file path (overrides config)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout (overrides config)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(opts), newRewriteCmd(opts), newConfigCmd(opts))
	return rootCmd
}

func (o *rootOptions) setup() error {
	cfg, err := config.NewManager(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Override(config.Settings{BaseURL: o.baseURL, RequestTimeout: o.timeout, LogFile: o.logFile}); err != nil {
		return err
	}
	o.cfg = cfg

	logger, err := newLogger(cfg.Get().LogFile, o.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	o.logger.Info("Application starting", zap.String("baseURL", cfg.Get().BaseURL))
	return nil
}

func (o *rootOptions) client() (*analysis.Client, error) {
	s := o.cfg.Get()
	return analysis.NewClient(s.BaseURL, s.RequestTimeout, o.logger.Named("client"))
}

// newLogger writes JSON logs to path; the terminal belongs to the UI.
func newLogger(path string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

func newAnalyzeCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "analyze [message]",
		Short: "Analyze one message and print the result",
		Long:  "Analyzes the message given as arguments, or read from stdin when no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := messageFrom(cmd, args)
			if err != nil {
				return err
			}
			client, err := opts.client()
			if err != nil {
				return err
			}
			res, err := client.Analyze(cmd.Context(), message)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			printAnalysis(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func newRewriteCmd(opts *rootOptions) *cobra.Command {
	var style, reply string
	cmd := &cobra.Command{
		Use:   "rewrite --reply <text> [original message]",
		Short: "Rewrite a reply in another style",
		RunE: func(cmd *cobra.Command, args []string) error {
			if style == "" {
				style = opts.cfg.Get().DefaultStyle
			}
			s, err := analysis.ParseStyle(style)
			if err != nil {
				return err
			}
			original := strings.Join(args, " ")
			client, err := opts.client()
			if err != nil {
				return err
			}
			rewritten, err := client.Rewrite(cmd.Context(), analysis.RewriteRequest{
				OriginalMessage: original,
				BaseReply:       reply,
				Style:           s,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rewritten)
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", "", "friendly, polished or short (default from config)")
	cmd.Flags().StringVar(&reply, "reply", "", "the reply to rewrite")
	_ = cmd.MarkFlagRequired("reply")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the saved configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := opts.cfg.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "baseURL:        %s\n", s.BaseURL)
			fmt.Fprintf(out, "requestTimeout: %s\n", s.RequestTimeout)
			fmt.Fprintf(out, "logFile:        %s\n", s.LogFile)
			fmt.Fprintf(out, "defaultStyle:   %s\n", s.DefaultStyle)
			return nil
		},
	})
	configCmd.AddCommand(&cobra.Command{
		Use:   "set-url <url>",
		Short: "Save the analysis service address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.cfg.SetBaseURL(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved baseURL %s to %s\n", args[0], opts.configPath)
			return nil
		},
	})
	return configCmd
}

// messageFrom joins args, or reads stdin when there are none.
func messageFrom(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read message from stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", analysis.ErrEmptyMessage
	}
	return string(b), nil
}

func printAnalysis(w io.Writer, res analysis.Result) {
	fmt.Fprintf(w, "Classification: %s\n", res.Classification)
	fmt.Fprintf(w, "Summary: %s\n", res.Summary)
	fmt.Fprintln(w, "Tasks:")
	if len(res.Tasks) == 0 {
		fmt.Fprintln(w, "  No explicit tasks detected.")
	}
	for _, t := range res.Tasks {
		fmt.Fprintf(w, "  - %s\n", t)
	}
	fmt.Fprintln(w, "Suggested reply:")
	fmt.Fprintln(w, res.SuggestedReply)
}

type jsonResult struct {
	Classification analysis.Classification `json:"classification"`
	Summary        string                  `json:"summary"`
	Tasks          []string                `json:"tasks"`
	SuggestedReply string                  `json:"suggested_reply"`
}

func writeJSON(w io.Writer, res analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(jsonResult{
		Classification: res.Classification,
		Summary:        res.Summary,
		Tasks:          res.Tasks,
		SuggestedReply: res.SuggestedReply,
	}); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}
