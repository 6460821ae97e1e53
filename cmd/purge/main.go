// Command purge re-runs the account deletion cascade for the given emails.
// It is the manual path for finishing deletions that reported pending steps.
//
//	purge [-file emails.txt] [-json] a@x.com b@y.com
//
// With the badger store the API server must be stopped first; badger allows
// one process per directory.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"

	"github.com/oksasatya/date-app-backend/config"
	"github.com/oksasatya/date-app-backend/internal/application"
	"github.com/oksasatya/date-app-backend/internal/container"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

func main() {
	var file string
	var asJSON, quiet bool
	flag.StringVar(&file, "file", "", "read emails from file, one per line (# comments allowed)")
	flag.BoolVar(&asJSON, "json", false, "print one JSON report per email")
	flag.BoolVar(&quiet, "q", false, "suppress service logs")
	flag.Parse()

	emails := flag.Args()
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		more, err := readEmails(f)
		_ = f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		emails = append(emails, more...)
	}
	if len(emails) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	logger := helpers.NewLogger(cfg.AppName+"-purge", cfg.Env)
	if quiet {
		logger = helpers.NewDiscardLogger()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanup, err := container.Bootstrap(ctx, cfg, logger, container.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	failed := purge(ctx, container.Orchestrator(), emails, os.Stdout, asJSON)
	if failed > 0 {
		cleanup()
		os.Exit(1)
	}
}

// purge runs the cascade for each email in order and returns how many did
// not finish cleanly.
func purge(ctx context.Context, o *application.Orchestrator, emails []string, w io.Writer, asJSON bool) int {
	failed := 0
	for _, email := range emails {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "%s\tskipped: %v\n", email, ctx.Err())
			failed++
			continue
		}
		report, err := o.DeleteAccount(ctx, email)
		switch {
		case errors.Is(err, application.ErrIdentityNotFound):
			fmt.Fprintf(w, "%s\tnot found\n", email)
			failed++
		case err != nil:
			fmt.Fprintf(w, "%s\terror: %v\n", email, err)
			failed++
		case asJSON:
			b, _ := json.Marshal(report)
			fmt.Fprintln(w, string(b))
			if report.Err() != nil {
				failed++
			}
		default:
			if rerr := report.Err(); rerr != nil {
				fmt.Fprintf(w, "%s\tpartial: %v\n", email, rerr)
				failed++
				continue
			}
			fmt.Fprintf(w, "%s\tdeleted (%s)\n", email, report.UserID)
		}
	}
	return failed
}

func readEmails(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}
