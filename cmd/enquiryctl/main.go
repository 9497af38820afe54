package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/magicace/enquiry-api/internal/form"
	"github.com/magicace/enquiry-api/pkg/httpclient"
	"github.com/magicace/enquiry-api/pkg/logger"
)

const defaultBaseURL = "http://localhost:8081"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "enquiryctl",
		Short:         "Enquiry form client",
		Long:          `enquiryctl fills in the enquiry form from the terminal and submits it to the enquiry API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newSubmitCmd())
	return rootCmd
}

func newSubmitCmd() *cobra.Command {
	v := viper.New()
	v.SetDefault("BASE_URL", defaultBaseURL)
	v.AutomaticEnv()

	var values form.Values
	var endpoint string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an enquiry",
		Long: `Submit an enquiry to the enquiry API and print the outcome.

The endpoint defaults to $BASE_URL/api/enquiry.

Example:
  enquiryctl submit --email jane@example.com --message "Do you do weddings?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if endpoint == "" {
				endpoint = strings.TrimSuffix(v.GetString("BASE_URL"), "/") + "/api/enquiry"
			}

			f := form.New(endpoint, httpclient.NewStandardClient())
			f.SetValues(values)

			err := f.Submit(cmd.Context())
			out := cmd.OutOrStdout()
			switch f.State() {
			case form.StateSucceeded:
				fmt.Fprintln(out, "Thank you for your enquiry! We'll be in touch soon.")
			case form.StateFailed:
				fmt.Fprintln(out, f.RootError())
			}
			return err
		},
	}

	cmd.Flags().StringVar(&values.Email, "email", "", "Your email address")
	cmd.Flags().StringVar(&values.Message, "message", "", "Your message")
	cmd.Flags().StringVar(&endpoint, "endpoint", "", "Enquiry endpoint URL")

	return cmd
}

func main() {
	if err := logger.Initialize(logger.Config{
		Level:       "warn",
		Environment: "development",
		ServiceName: "enquiryctl",
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Debug("enquiryctl failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
