package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/zephyrtronium/rpn"
	"github.com/zephyrtronium/rpn/internal/config"
	"github.com/zephyrtronium/rpn/internal/logging"
	"github.com/zephyrtronium/rpn/internal/report"
	"github.com/zephyrtronium/rpn/internal/server"
)

const (
	FlagNameIn      = "in"
	FlagNameFormat  = "format"
	FlagNameVerb    = "fmt"
	FlagNameEcho    = "echo"
	FlagNameConfig  = "config"
	FlagNameVerbose = "verbose"
	FlagNameAddress = "address"
)

var flagConfig = cli.StringFlag{
	Name:    FlagNameConfig,
	Usage:   "path to a yaml config file (default rpncalc.yaml in the user config dir)",
	Aliases: []string{"c"},
}

var flagVerbose = cli.BoolFlag{
	Name:    FlagNameVerbose,
	Usage:   "log each stage of evaluation",
	Aliases: []string{"V"},
	EnvVars: []string{"RPNCALC_DEBUG"},
}

// loadConfig reads the config file and applies any flags set on the command
// line on top of it.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if path := ctx.String(FlagNameConfig); path != "" {
		cfg, err = config.FromFile(path)
	} else {
		cfg, err = config.FromDefaultFile()
	}
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}

	if ctx.IsSet(FlagNameFormat) {
		cfg.Format = ctx.String(FlagNameFormat)
	}
	if ctx.IsSet(FlagNameVerb) {
		cfg.Verb = ctx.String(FlagNameVerb)
	}
	if ctx.IsSet(FlagNameEcho) {
		cfg.Echo = ctx.Bool(FlagNameEcho)
	}
	if ctx.IsSet(FlagNameAddress) {
		cfg.Address = ctx.String(FlagNameAddress)
	}
	if ctx.IsSet(FlagNameVerbose) {
		cfg.Verbose = ctx.Bool(FlagNameVerbose)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func newLogger(ctx *cli.Context, cfg *config.Config) (*zap.SugaredLogger, error) {
	logger, err := logging.NewLogger(
		logging.WithVerbose(cfg.Verbose),
		logging.WithPaths(logPath(ctx)),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create logger: %w", err)
	}

	return logger, nil
}

// logPath sends logs to stderr unless the app's error writer is something
// else, in which case logging is discarded.
func logPath(ctx *cli.Context) string {
	if ctx.App.ErrWriter == nil || ctx.App.ErrWriter == os.Stderr {
		return "stderr"
	}
	return os.DevNull
}

// calculate evaluates every expression from the arguments, or from the input
// file if there are none. Failures are printed and do not stop evaluation of
// later expressions.
func calculate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger, err := newLogger(ctx, cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	var exprs []string
	if ctx.NArg() > 0 {
		exprs = ctx.Args().Slice()
	} else {
		exprs, err = readLines(ctx, ctx.String(FlagNameIn))
		if err != nil {
			return err
		}
	}

	failed := 0
	for _, expr := range exprs {
		c, err := rpn.Calculate(expr)

		logger.Debugw("tokenized", "input", expr, "tokens", rpn.FormatTokens(c.Tokens))
		logger.Debugw("converted to postfix", "postfix", rpn.FormatTokens(c.Postfix))

		if err != nil {
			failed++
			logger.Debugw("evaluation failed", "input", expr, "error", err)
		} else {
			logger.Debugw("evaluated", "result", c.Value)
		}

		if err := write(ctx.App.Writer, cfg, c, err); err != nil {
			return err
		}
	}

	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d expressions failed", failed, len(exprs)), 1)
	}

	return nil
}

// readLines reads one expression per line. Blank lines are skipped.
func readLines(ctx *cli.Context, name string) ([]string, error) {
	var in io.Reader
	switch name {
	case "", "-":
		in = ctx.App.Reader
	default:
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("could not open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read input: %w", err)
	}

	return lines, nil
}

// write prints the outcome of one calculation.
func write(w io.Writer, cfg *config.Config, c *rpn.Calculation, err error) error {
	if cfg.Format != config.FormatText {
		data, merr := report.New(c, err).Marshal(cfg.Format)
		if merr != nil {
			return merr
		}
		if cfg.Format == config.FormatJSON {
			data = append(data, '\n')
		}
		_, werr := w.Write(data)
		return werr
	}

	if cfg.Echo {
		fmt.Fprintf(w, "%s : %s : ", rpn.FormatTokens(c.Tokens), rpn.FormatTokens(c.Postfix))
	}
	if err != nil {
		_, werr := fmt.Fprintln(w, err)
		return werr
	}
	_, werr := fmt.Fprintf(w, cfg.Verb+"\n", c.Value)
	return werr
}

func serve(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	logger, err := newLogger(ctx, cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cfg.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.NewServer(server.Options{
		Address: cfg.Address,
		Logger:  logger.Named("server"),
	})

	sigCtx, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	errs := srv.Start()

	select {
	case err := <-errs:
		return err
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func NewApp() *cli.App {
	return &cli.App{
		Name:    "rpncalc",
		Usage:   "evaluate arithmetic expressions with + - * / and parentheses",
		Version: "0.1.0",
		Action:  calculate,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  FlagNameIn,
				Usage: "input file with one expression per line, or - for stdin (used when no args are given)",
			},
			&cli.StringFlag{
				Name:    FlagNameFormat,
				Usage:   "output format: text, json, or yaml",
				Aliases: []string{"o"},
				Value:   config.FormatText,
			},
			&cli.StringFlag{
				Name:  FlagNameVerb,
				Usage: "result formatting verb for text output",
				Value: "%g",
			},
			&cli.BoolFlag{
				Name:    FlagNameEcho,
				Usage:   "print the token and postfix sequences before each result",
				Aliases: []string{"e"},
			},
			&flagConfig,
			&flagVerbose,
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "serve evaluation over http",
				Action: serve,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    FlagNameAddress,
						Usage:   "address to listen on",
						Aliases: []string{"a"},
						Value:   ":8080",
					},
					&flagConfig,
					&flagVerbose,
				},
			},
		},
	}
}
