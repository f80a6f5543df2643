// Command calc evaluates integer arithmetic expressions with the shunting-yard
// algorithm, interactively or against YAML case suites.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/sdsdsdw/shunting-yard-algo/internal/calc"
	"github.com/sdsdsdw/shunting-yard-algo/internal/dto"
	"github.com/sdsdsdw/shunting-yard-algo/internal/exprerr"
	"github.com/sdsdsdw/shunting-yard-algo/internal/processor"
	"github.com/sdsdsdw/shunting-yard-algo/internal/report"
	"github.com/sdsdsdw/shunting-yard-algo/internal/runner"
	"github.com/sdsdsdw/shunting-yard-algo/internal/storage/factory"
	"github.com/sdsdsdw/shunting-yard-algo/internal/suite"
	"github.com/sdsdsdw/shunting-yard-algo/internal/token"
	"github.com/sdsdsdw/shunting-yard-algo/pkg/config/env"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type app struct {
	cfg    cliConfig
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	calc      *calc.Calculator
	processor *processor.EvaluationProcessor
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 2
	}

	lvl, err := cfg.level()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	slog.SetLogLoggerLevel(lvl)

	a := &app{
		cfg:    cfg,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		calc:   calc.NewCalculator(),
	}

	if cfg.Record {
		closeFn, err := a.openHistory(ctx)
		if err != nil {
			slog.Error("Failed to open history store", "error", err)
			return 1
		}
		defer closeFn()
	}

	switch cfg.Mode {
	case "repl":
		return a.repl(ctx)
	case "suite":
		return a.suite(ctx)
	default:
		return a.eval(ctx)
	}
}

func (a *app) openHistory(ctx context.Context) (func(), error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/calc/.env"); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}

	storageCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	backend, err := factory.NewBackend(ctx, *storageCfg)
	if err != nil {
		return nil, err
	}

	var opts []processor.Option
	if a.cfg.Bulk > 0 {
		opts = append(opts, processor.WithBulk(a.cfg.Bulk))
	}
	a.processor = processor.New(backend.Store, opts...)
	slog.Info("Recording evaluations", "storage", storageCfg.Type)

	return backend.Close, nil
}

func (a *app) eval(ctx context.Context) int {
	expr, ok := a.cfg.expression()
	if !ok {
		line, err := bufio.NewReader(a.stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintln(a.stderr, "read expression:", err)
			return 1
		}
		expr = strings.TrimRight(line, "\r\n")
	}

	if err := a.evaluateOne(ctx, expr); err != nil {
		return 1
	}
	return 0
}

func (a *app) repl(ctx context.Context) int {
	scanner := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(a.stdout)
			break
		}
		if ctx.Err() != nil {
			break
		}

		line := scanner.Text()
		switch strings.TrimSpace(line) {
		case "":
			continue
		case "exit", "quit":
			return 0
		}
		_ = a.evaluateOne(ctx, line)
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintln(a.stderr, "read input:", err)
		return 1
	}
	return 0
}

// evaluateOne prints the outcome of expr and returns the evaluation error, if any.
// A storage failure while recording is reported but does not hide the result.
func (a *app) evaluateOne(ctx context.Context, expr string) error {
	r, err := a.calc.Run(expr)

	if a.processor != nil {
		if _, perr := a.processor.Process(ctx, expr); perr != nil && !isExprErr(perr) {
			slog.Error("Failed to record evaluation", "error", perr)
		}
	}

	switch {
	case a.cfg.JSON:
		a.writeJSON(r, err)
	case a.cfg.Trace:
		calc.WriteTrace(a.stdout, r, err)
	case err == nil:
		fmt.Fprintln(a.stdout, r.Value)
	}

	if err != nil && !a.cfg.JSON {
		fmt.Fprintln(a.stderr, "error:", err)
	}
	return err
}

type jsonResult struct {
	Expression string      `json:"expression"`
	Tokens     []dto.Token `json:"tokens,omitempty"`
	RPN        string      `json:"rpn,omitempty"`
	Result     *int64      `json:"result,omitempty"`
	Error      string      `json:"error,omitempty"`
	Kind       string      `json:"kind,omitempty"`
}

func (a *app) writeJSON(r *calc.Result, err error) {
	out := jsonResult{
		Expression: r.Expression,
		Tokens:     dto.NewTokens(r.Tokens),
		RPN:        token.Format(r.Postfix),
	}
	if err != nil {
		out.Error = err.Error()
		out.Kind = exprerr.KindOf(err).String()
	} else {
		v := r.Value
		out.Result = &v
	}

	if encErr := json.NewEncoder(a.stdout).Encode(out); encErr != nil {
		slog.Error("Failed to encode result", "error", encErr)
	}
}

func (a *app) suite(ctx context.Context) int {
	s, err := suite.LoadFromFile(a.cfg.Suite)
	if err != nil {
		slog.Error("Failed to load suite", "path", a.cfg.Suite, "error", err)
		fmt.Fprintln(a.stderr, err)
		return 1
	}

	r := runner.New(runner.Config{
		WarmupRuns:  a.cfg.Warmup,
		Runs:        a.cfg.Runs,
		Percentiles: runner.DefaultPercentiles,
	}, runner.WithEvaluator(a.calc))

	result, err := r.Run(ctx, s)
	if err != nil {
		slog.Error("Suite run failed", "error", err)
		fmt.Fprintln(a.stderr, err)
		return 1
	}

	if a.processor != nil {
		if _, err := a.processor.ProcessBatch(ctx, s.Expressions()); err != nil {
			slog.Error("Failed to record suite evaluations", "error", err)
		}
	}

	rpt := report.Build(result)
	if a.cfg.JSON {
		err = report.EncodeJSON(rpt, a.stdout)
	} else {
		err = report.WriteTable(rpt, a.stdout)
	}
	if err != nil {
		slog.Error("Failed to write report", "error", err)
		return 1
	}

	if a.cfg.Output != "" {
		if err := report.WriteJSON(rpt, a.cfg.Output); err != nil {
			slog.Error("Failed to write JSON report", "error", err)
			return 1
		}
		slog.Info("Report written", "path", a.cfg.Output)
	}

	if !result.AllPassed() {
		return 1
	}
	return 0
}

func isExprErr(err error) bool {
	var ee *exprerr.Error
	return errors.As(err, &ee)
}
