package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

func (c *cli) newListCmd() *cobra.Command {
	var params ports.ListQuotesParams

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quotes, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			page, err := api.ListQuotes(cmd.Context(), params)
			if err != nil {
				return err
			}

			renderPage(cmd.OutOrStdout(), page)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&params.Page, "page", 0, "page number (server default when unset)")
	flags.IntVar(&params.Limit, "limit", 0, "quotes per page (server default when unset)")
	flags.StringVar(&params.Category, "category", "", "only quotes in this category")
	flags.StringVar(&params.Author, "author", "", "only quotes whose author contains this text")

	return cmd
}

func (c *cli) newRandomCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Show a random quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			quote, err := api.GetRandomQuote(cmd.Context(), category)
			if err != nil {
				return err
			}

			renderQuote(cmd.OutOrStdout(), quote)

			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "pick from this category only")

	return cmd
}

func (c *cli) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one quote by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			quote, err := api.GetQuoteByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			renderQuote(cmd.OutOrStdout(), quote)

			return nil
		},
	}
}

func (c *cli) newCreateCmd() *cobra.Command {
	var (
		candidate domain.NewQuote
		category  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a quote",
		Example: `  quotectl create --text "Well done is better than well said." --author "Benjamin Franklin" \
    --category wisdom --tag action --tag speech`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			candidate.Category = domain.Category(category)

			quote, err := api.CreateQuote(cmd.Context(), candidate)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successStyle.Render("Quote created"))
			renderQuote(out, quote)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&candidate.Text, "text", "", "quote text (10-500 characters)")
	flags.StringVar(&candidate.Author, "author", "", "quote author (2-100 characters)")
	flags.StringVar(&category, "category", "", "category (server default when unset)")
	flags.StringArrayVar(&candidate.Tags, "tag", nil, "tag to attach, repeatable")

	_ = cmd.MarkFlagRequired("text")
	_ = cmd.MarkFlagRequired("author")

	return cmd
}

// newCategoriesCmd lists category counts. A failure is reported on stderr
// and shown as an empty list.
func (c *cli) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "Show how many quotes each category holds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			counts, err := api.ListCategories(cmd.Context())
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render("categories unavailable: "+err.Error()))

				counts = nil
			}

			renderCategories(cmd.OutOrStdout(), counts)

			return nil
		},
	}
}

func (c *cli) newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show the API health report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			api, err := c.api(cmd)
			if err != nil {
				return err
			}

			report, err := api.Health(cmd.Context())
			if err != nil {
				return err
			}

			renderHealth(cmd.OutOrStdout(), report)

			if report.Status != ports.HealthStatusHealthy {
				return fmt.Errorf("quotes API is %s", report.Status)
			}

			return nil
		},
	}
}
