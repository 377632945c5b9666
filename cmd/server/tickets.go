package main

import (
	"fmt"
	"strconv"

	"github.com/IT-Nick/quizbot/internal/app"
	"github.com/spf13/cobra"
)

var ticketsCmd = &cobra.Command{
	Use:   "tickets [number]",
	Short: "List stored tickets or print one ticket with answers",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, false)
		if err != nil {
			return err
		}

		application, err := app.NewApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer application.Close()

		out := cmd.OutOrStdout()
		quiz := application.QuizService()

		if len(args) == 1 {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid ticket number %q", args[0])
			}
			ticket, err := quiz.GetTicket(cmd.Context(), number)
			if err != nil {
				return err
			}
			fmt.Fprint(out, application.Presenter().TicketSheet(ticket))
			return nil
		}

		numbers, err := quiz.ListTicketNumbers(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d tickets\n", len(numbers))
		for _, n := range numbers {
			fmt.Fprintln(out, n)
		}
		return nil
	},
}
