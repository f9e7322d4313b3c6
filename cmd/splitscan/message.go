package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/splitscan/internal/message"
)

const dateFlagLayout = "2006-01-02"

func newMessageCmd(a *app) *cobra.Command {
	f := &splitFlags{}
	var (
		template string
		expense  string
		payer    string
		date     string
		due      string
		group    bool
	)

	cmd := &cobra.Command{
		Use:   "message",
		Short: "Render payment requests for a split",
		Long: `Splits a total like the split command and renders one payment request per
participant, or a single summary with --group. Templates: standard, friendly,
formal and detailed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tmpl, err := message.ParseTemplate(template)
			if err != nil {
				return err
			}
			ctx := message.Context{ExpenseName: expense, Payer: payer}
			if ctx.Date, err = parseDate("date", date); err != nil {
				return err
			}
			if ctx.DueDate, err = parseDate("due", due); err != nil {
				return err
			}
			for _, s := range f.items {
				name, _, _ := strings.Cut(s, ":")
				ctx.Items = append(ctx.Items, strings.TrimSpace(name))
			}

			allocations, err := f.allocations(a)
			if err != nil {
				return err
			}

			messages := []string{}
			if group {
				messages = []string{a.engine.RenderGroup(tmpl, allocations, ctx)}
			} else {
				for _, alloc := range allocations {
					if alloc.Participant.Name == payer {
						continue
					}
					messages = append(messages, a.engine.Render(tmpl, alloc, ctx))
				}
			}

			if a.json {
				return a.printJSON(cmd, messages)
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(messages, "\n\n"))
			return nil
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.StringVarP(&template, "template", "t", "standard", "message template: standard, friendly, formal or detailed")
	flags.StringVar(&expense, "expense", "", "expense name")
	flags.StringVar(&payer, "payer", "", "who paid; they get no request")
	flags.StringVar(&date, "date", "", "expense date (YYYY-MM-DD)")
	flags.StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	flags.BoolVar(&group, "group", false, "render one message for the whole group")
	return cmd
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFlagLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return t, nil
}
