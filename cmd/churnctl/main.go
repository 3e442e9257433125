package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	CharmLog "github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/Shivam007kumar/customer-churn/internal/domain/models"
	"github.com/Shivam007kumar/customer-churn/internal/services/prediction"
	"github.com/Shivam007kumar/customer-churn/internal/usecase"
	xhttp "github.com/Shivam007kumar/customer-churn/pkg/http"
)

// assignments collects repeated -set field=value flags.
type assignments []string

func (a *assignments) String() string { return strings.Join(*a, ",") }

func (a *assignments) Set(v string) error {
	if _, _, err := parseAssignment(v); err != nil {
		return err
	}
	*a = append(*a, v)
	return nil
}

func parseAssignment(v string) (string, string, error) {
	field, value, ok := strings.Cut(v, "=")
	field = strings.TrimSpace(field)
	if !ok || field == "" {
		return "", "", fmt.Errorf("expected field=value, got %q", v)
	}
	return field, value, nil
}

func main() {
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// run executes one edit-and-submit cycle and returns the process exit code.
func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	logger := CharmLog.NewWithOptions(stderr, CharmLog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "churnctl",
	})

	defaultRelay := getenv("RELAY_URL")
	if defaultRelay == "" {
		defaultRelay = "http://localhost:5001"
	}

	fs := flag.NewFlagSet("churnctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sets assignments
	relayURL := fs.String("relay", defaultRelay, "relay base URL")
	timeout := fs.Duration("timeout", 30*time.Second, "request timeout")
	listFields := fs.Bool("fields", false, "print the profile fields and exit")
	fs.Var(&sets, "set", "profile edit as field=value (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *listFields {
		printFields(stdout)
		return 0
	}

	client := prediction.NewClient(*relayURL,
		prediction.WithHTTPClient(xhttp.NewClient(xhttp.WithTimeout(*timeout))),
	)
	session := usecase.NewFormSession(client)

	for _, s := range sets {
		field, value, _ := parseAssignment(s)
		if err := session.Edit(field, value); err != nil {
			logger.Error("Rejected edit", "field", field, "value", value, "err", err)
			return 2
		}
	}

	logger.Info("Submitting profile", "endpoint", client.Endpoint())
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	if err := session.Submit(ctx); err != nil {
		logger.Debug("Submit failed", "err", err)
		logger.Error(session.Error())
		return 1
	}

	res := session.Result()
	fmt.Fprintf(stdout, "Churn probability: %s\n", res.Percent())
	fmt.Fprintf(stdout, "Prediction: %s\n", res.Risk())
	return 0
}

func printFields(w io.Writer) {
	for _, f := range models.Fields() {
		switch f.Kind {
		case models.KindEnum:
			fmt.Fprintf(w, "%-28s %-6s %s (default %v)\n", f.Name, f.Kind, strings.Join(f.Options, " | "), f.Default)
		default:
			fmt.Fprintf(w, "%-28s %-6s [%g, %g] step %g (default %v)\n", f.Name, f.Kind, f.Min, f.Max, f.Step, f.Default)
		}
	}
}
