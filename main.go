// gtrans: command-line client for the free web translation endpoint.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minios-linux/gtrans/config"
	"github.com/minios-linux/gtrans/grammar"
	"github.com/minios-linux/gtrans/gtoken"
	"github.com/minios-linux/gtrans/i18n"
	"github.com/minios-linux/gtrans/langmeta"
	"github.com/minios-linux/gtrans/settings"
	"github.com/minios-linux/gtrans/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Logging
// ---------------------------------------------------------------------------

var (
	tagInfo    = color.New(color.FgBlue).Sprint("[INFO]")
	tagSuccess = color.New(color.FgGreen).Sprint("[OK]")
	tagWarning = color.New(color.FgYellow, color.Bold).Sprint("[WARN]")
	tagError   = color.New(color.FgRed).Sprint("[ERROR]")
)

// logOut receives every log line. color.Error handles Windows consoles.
var (
	logMu  sync.Mutex
	logOut io.Writer = color.Error
)

func logLine(tag, format string, args ...any) {
	logMu.Lock()
	defer logMu.Unlock()
	fmt.Fprintf(logOut, tag+" "+format+"\n", args...)
}

func logInfo(format string, args ...any)    { logLine(tagInfo, format, args...) }
func logSuccess(format string, args ...any) { logLine(tagSuccess, format, args...) }
func logWarning(format string, args ...any) { logLine(tagWarning, format, args...) }
func logError(format string, args ...any)   { logLine(tagError, format, args...) }

// progressBar renders a fixed-width bar coloured by completion.
func progressBar(percent, width int) string {
	percent = max(0, min(percent, 100))
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	c := color.New(color.FgGreen)
	switch {
	case percent < 34:
		c = color.New(color.FgRed)
	case percent < 100:
		c = color.New(color.FgYellow)
	}
	return c.Sprint(bar) + fmt.Sprintf(" %3d%%", percent)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

type globalFlags struct {
	configPath  string
	serviceURLs []string
	proxy       string
	timeout     time.Duration
	raise       bool
	verbose     bool
}

var global globalFlags

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gtrans",
		Short: i18n.T("Translate text with the free Google Translate web endpoint"),
		Long: i18n.T(`gtrans translates and detects text through the endpoint used by the
Google Translate web page. No API key is needed: requests carry the
same verification token the page computes in the browser.

Commands:
  translate   Translate text
  detect      Detect the language of text
  token       Print the verification token for a text
  parse       Decode a captured raw response
  version     Show version information

Settings are read from ./.gtrans.yaml or ~/.config/gtrans/config.yaml
and can be overridden with GTRANS_* environment variables.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	global = globalFlags{}
	pf := root.PersistentFlags()
	pf.StringVar(&global.configPath, "config", "", i18n.T("Config file (default: ./.gtrans.yaml, then the user config)"))
	pf.StringSliceVar(&global.serviceURLs, "service-url", nil, i18n.T("Service host, repeatable (a googleapis host selects the gtx client)"))
	pf.StringVar(&global.proxy, "proxy", "", i18n.T("HTTP/HTTPS proxy URL"))
	pf.DurationVar(&global.timeout, "timeout", 0, i18n.T("Request timeout (0 = config default)"))
	pf.BoolVar(&global.raise, "raise", false, i18n.T("Fail on non-200 responses instead of echoing the input"))
	pf.BoolVarP(&global.verbose, "verbose", "v", false, i18n.T("Enable detailed logging"))

	root.AddCommand(
		newTranslateCmd(),
		newDetectCmd(),
		newTokenCmd(),
		newParseCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

// loadOptions merges the config file, the environment and the command line.
func loadOptions(cmd *cobra.Command) (translate.Options, error) {
	var (
		cfg *config.Config
		err error
	)
	if global.configPath != "" {
		cfg, err = config.LoadFile(global.configPath)
	} else {
		cfg, err = config.Load(".")
	}
	if err != nil {
		return translate.Options{}, err
	}
	if global.verbose && cfg.Path != "" {
		logInfo(i18n.T("Using config %s"), cfg.Path)
	}

	opts := cfg.TranslateOptions()
	flags := cmd.Flags()
	if flags.Changed("service-url") {
		opts.ServiceURLs = global.serviceURLs
	}
	if flags.Changed("proxy") {
		opts.Proxy = global.proxy
	}
	if flags.Changed("timeout") && global.timeout > 0 {
		opts.Timeout = global.timeout
	}
	if flags.Changed("raise") {
		opts.RaiseException = global.raise
	}

	opts.OnError = logWarning
	if global.verbose {
		opts.OnLog = logInfo
	}
	return opts, nil
}

// newTranslator builds a translator seeded with the secret saved for its
// host. Call saveSecret when done so the next run can reuse it.
func newTranslator(opts translate.Options) *translate.Translator {
	if len(opts.ServiceURLs) > 0 {
		if secret, ok := settings.GetSecret(opts.ServiceURLs[0]); ok {
			opts.InitialSecret = secret
		}
	}
	return translate.New(opts)
}

func saveSecret(tr *translate.Translator) {
	store := tr.Tokens()
	if err := settings.SetSecret(store.Host(), store.Secret()); err != nil {
		logWarning(i18n.T("Could not save token secret: %v"), err)
	}
}

// readInputs returns the texts to work on: the joined arguments, or one text
// per non-empty line of stdin.
func readInputs(args []string, stdin io.Reader) ([]string, error) {
	if len(args) > 0 {
		return []string{strings.Join(args, " ")}, nil
	}

	var texts []string
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stdin: %w", err)
	}
	if len(texts) == 0 {
		return nil, errors.New(i18n.T("no text given"))
	}
	return texts, nil
}

// progressReporter draws the batch progress on the log output.
func progressReporter() func(done, total int) {
	return func(done, total int) {
		logMu.Lock()
		defer logMu.Unlock()
		fmt.Fprintf(logOut, "\r%s %d/%d", progressBar(done*100/total, 20), done, total)
		if done == total {
			fmt.Fprintln(logOut)
		}
	}
}

// ---------------------------------------------------------------------------
// translate
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var (
		dest        string
		src         string
		concurrency int
		delay       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "translate [text...]",
		Short: i18n.T("Translate text"),
		Long: i18n.T(`Translate text. The arguments are joined into one text; without
arguments every non-empty line of stdin is translated separately.

Examples:
  gtrans translate -d ko "veritas lux mea"
  gtrans translate -s de -d en < sentences.txt
  gtrans translate -d ja --service-url translate.googleapis.com hello`),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			if concurrency > 0 {
				opts.MaxConcurrent = concurrency
			}
			opts.RequestDelay = delay
			if len(texts) > 1 && global.verbose {
				opts.OnProgress = progressReporter()
			}

			tr := newTranslator(opts)
			results, err := tr.TranslateBatch(cmd.Context(), texts, dest, src)
			saveSecret(tr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintln(out, r.Text)
				if global.verbose {
					logInfo("%s -> %s (%s)", langmeta.Label(r.Src), langmeta.Label(r.Dest), r.Pronunciation)
				}
			}
			if global.verbose {
				logSuccess(i18n.N("Translated %d text", "Translated %d texts", len(results)), len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dest, "dest", "d", "en", i18n.T("Target language"))
	cmd.Flags().StringVarP(&src, "src", "s", "auto", i18n.T("Source language (auto = detect)"))
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, i18n.T("Maximum concurrent requests for stdin input (0 = config default)"))
	cmd.Flags().DurationVar(&delay, "request-delay", 0, i18n.T("Delay between starting requests"))

	_ = cmd.RegisterFlagCompletionFunc("dest", completeLanguages)
	_ = cmd.RegisterFlagCompletionFunc("src", completeLanguages)

	return cmd
}

func completeLanguages(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for code, meta := range langmeta.Registry {
		if strings.HasPrefix(code, toComplete) {
			out = append(out, code+"\t"+meta.Label())
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// ---------------------------------------------------------------------------
// detect
// ---------------------------------------------------------------------------

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: i18n.T("Detect the language of text"),
		Long: i18n.T(`Detect the language of text. Each result is printed as
"code (name) confidence".`),
		RunE: func(cmd *cobra.Command, args []string) error {
			texts, err := readInputs(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			tr := newTranslator(opts)
			results, err := tr.DetectBatch(cmd.Context(), texts)
			saveSecret(tr)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, d := range results {
				fmt.Fprintf(out, "%s (%s) %.4f\n", d.Lang, langmeta.Label(d.Lang), d.Confidence)
				if global.verbose && len(d.Langs) > 1 {
					logInfo(i18n.T("Candidates: %s"), strings.Join(d.Langs, ", "))
				}
			}
			return nil
		},
	}
	return cmd
}

// ---------------------------------------------------------------------------
// token
// ---------------------------------------------------------------------------

func newTokenCmd() *cobra.Command {
	var tkk string

	cmd := &cobra.Command{
		Use:   "token TEXT",
		Short: i18n.T("Print the verification token for a text"),
		Long: i18n.T(`Print the "tk" token the web page attaches to a translation request.

Without --tkk the current secret is fetched from the service host.

Examples:
  gtrans token --tkk 406398.2087938574 test
  gtrans token "veritas lux mea"`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := args[0]
			out := cmd.OutOrStdout()

			if tkk != "" {
				if _, err := gtoken.ParseSecret(tkk); err != nil {
					return err
				}
				fmt.Fprintln(out, gtoken.Generate(tkk, text))
				return nil
			}

			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}
			tr := newTranslator(opts)
			store := tr.Tokens()
			if err := store.Refresh(cmd.Context(), time.Now()); err != nil {
				return err
			}
			saveSecret(tr)
			if global.verbose {
				logInfo(i18n.T("Secret from %s: %s"), store.Host(), store.Secret())
			}
			fmt.Fprintln(out, store.Token(cmd.Context(), text))
			return nil
		},
	}

	cmd.Flags().StringVar(&tkk, "tkk", "", i18n.T(`Secret to use instead of fetching one ("epoch.value")`))

	return cmd
}

// ---------------------------------------------------------------------------
// parse
// ---------------------------------------------------------------------------

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: i18n.T("Decode a captured raw response"),
		Long: i18n.T(`Decode a raw translate response, filling the elided array slots,
and print it as JSON. Reads stdin when no file is given.`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				raw []byte
				err error
			)
			if len(args) == 1 {
				raw, err = os.ReadFile(args[0])
			} else {
				raw, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}

			tree, err := grammar.ParseBytes(raw)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(tree, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding tree: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	return cmd
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  i18n.T(`Display version, commit hash, and build date.`),
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, i18n.T("gtrans version %s")+"\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}

	return cmd
}
