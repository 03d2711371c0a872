package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/clients/acl"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

const (
	defaultBaseURL = "http://localhost:8080/api"
	defaultTimeout = 10 * time.Second
	serviceName    = "quotes-api"
)

// quoteAPI is everything quotectl needs from the remote service.
type quoteAPI interface {
	ports.QuoteClient
	Health(ctx context.Context) (*acl.RemoteHealth, error)
}

type globalOptions struct {
	baseURL string
	timeout time.Duration
	verbose bool
}

// apiFactory builds the remote client once flags are parsed.
type apiFactory func(opts globalOptions, logOut io.Writer) (quoteAPI, error)

type cli struct {
	opts    globalOptions
	factory apiFactory
}

func (c *cli) api(cmd *cobra.Command) (quoteAPI, error) {
	return c.factory(c.opts, cmd.ErrOrStderr())
}

func newRootCmd(factory apiFactory) *cobra.Command {
	c := &cli{factory: factory}

	root := &cobra.Command{
		Use:           "quotectl",
		Short:         "Browse and add quotes through the quotes API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.opts.baseURL, "base-url", defaultBaseURL, "quotes API base URL")
	flags.DurationVar(&c.opts.timeout, "timeout", defaultTimeout, "per-request timeout")
	flags.BoolVarP(&c.opts.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		c.newListCmd(),
		c.newRandomCmd(),
		c.newGetCmd(),
		c.newCreateCmd(),
		c.newCategoriesCmd(),
		c.newHealthCmd(),
	)

	return root
}

// newQuoteAPI wires the resilient client and the ACL adapter.
func newQuoteAPI(opts globalOptions, logOut io.Writer) (quoteAPI, error) {
	level := "warn"
	if opts.verbose {
		level = "debug"
	}

	logger := logging.NewWithWriter(&logging.Config{
		Level:   level,
		Format:  "pretty",
		Service: "quotectl",
		Version: Version,
	}, logOut)

	cfg := clients.ConfigFrom(config.ServiceEndpointConfig{
		BaseURL: opts.baseURL,
		Name:    serviceName,
	}, config.DefaultClientConfig())
	cfg.Timeout = opts.timeout
	cfg.UserAgent = "quotectl/" + Version
	cfg.Logger = logger

	client, err := clients.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return acl.NewQuoteClient(acl.QuoteClientConfig{
		Client: client,
		Logger: logger,
	}), nil
}
