// Command predict submits one demographic record to the prediction service
// and prints the estimated annual insurance cost.
//
//	predict -age 35 -sex male -bmi 27.5 -children 2 -smoker no -region northeast
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"medicost-dashboard/internal/config"
	"medicost-dashboard/internal/insurance"
	"medicost-dashboard/internal/logs"
	"medicost-dashboard/internal/metrics"
	"medicost-dashboard/internal/predictor"
	"medicost-dashboard/internal/upstream"

	"github.com/goccy/go-json"
)

const (
	exitOK        = 0
	exitFailed    = 1
	exitBadUsage  = 2
	exitBadConfig = 3
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type output struct {
	Result     predictor.PredictionResult `json:"result"`
	Assessment insurance.Assessment       `json:"assessment"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBadConfig
	}

	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var form insurance.FormValues
	fs.StringVar(&form.Age, "age", "", "age in years (18-100)")
	fs.StringVar(&form.Sex, "sex", "", "male or female")
	fs.StringVar(&form.BMI, "bmi", "", "body mass index (15.0-50.0)")
	fs.StringVar(&form.Children, "children", "", "number of children (0-10)")
	fs.StringVar(&form.Smoker, "smoker", "", "yes or no")
	fs.StringVar(&form.Region, "region", "", "northeast, northwest, southeast or southwest")

	apiURL := fs.String("api", cfg.APIBaseURL, "prediction service base URL")
	timeout := fs.Duration("timeout", cfg.APITimeout, "per-attempt request timeout")
	retries := fs.Int("retries", 0, "retries after a transport failure")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	verbose := fs.Bool("v", false, "log every attempt to stderr")

	if err := fs.Parse(args); err != nil {
		return exitBadUsage
	}

	if !form.Complete() {
		fmt.Fprintln(stderr, "Please fill in all fields")
		fs.Usage()
		return exitBadUsage
	}
	input, err := insurance.ParseForm(form)
	if err == nil {
		err = input.Validate()
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitBadUsage
	}

	level := logs.ERROR
	if *verbose {
		level = logs.DEBUG
	}
	logger := logs.NewLogger(100, level).Mirror(log.New(stderr, "", log.LstdFlags))
	client := predictor.NewClient(*apiURL, *timeout, logger, metrics.NewRegistry())

	policy := upstream.NoRetry()
	if *retries > 0 {
		policy = upstream.DefaultRetryPolicy(*retries)
	}

	var result predictor.PredictionResult
	err = upstream.Retry(ctx, policy, transportOnly, func() error {
		var callErr error
		result, callErr = client.Predict(ctx, input)
		return callErr
	})
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return exitFailed
	}

	out := output{
		Result:     result,
		Assessment: insurance.Assess(result.InputData.BMI, result.PredictedCost),
	}
	if *asJSON {
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitFailed
		}
		fmt.Fprintln(stdout, string(data))
		return exitOK
	}

	fmt.Fprintf(stdout, "Predicted annual cost: %s\n", out.Assessment.FormattedCost)
	fmt.Fprintf(stdout, "Risk level:            %s\n", out.Assessment.Risk)
	fmt.Fprintf(stdout, "Health status:         %s (BMI %.1f)\n", out.Assessment.Health, result.InputData.BMI)
	return exitOK
}

// transportOnly retries failures that never got an answer. A service
// rejection is final.
func transportOnly(err error) bool {
	var perr *predictor.PredictionError
	return errors.As(err, &perr) && perr.Kind == predictor.KindTransport
}
