package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/casewise/intake/internal/model"
)

// chatCmd represents the chat command
var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Run an intake interview on the console",
	Long: `Chat runs a full screening interview interactively on the terminal.

Each answer is interpreted the same way the webhook does it: the optional
language-model assist first, deterministic interpretation as fallback.
Type 'quit' to abandon the interview.

Example:
  intake chat
  intake chat --config ./intake.yaml -v`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	machine := eng.newMachine()
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	question, _ := machine.NextPrompt()
	fmt.Println(question)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := scanner.Text()

		if strings.EqualFold(strings.TrimSpace(input), "quit") {
			fmt.Println("Goodbye.")
			return nil
		}

		reply := machine.ProcessMessage(ctx, input)

		switch {
		case reply.Error != "":
			fmt.Println(reply.Error)
			continue

		case reply.Help != "":
			fmt.Println(reply.Help)
			continue

		case reply.Back:
			question, _ := machine.NextPrompt()
			fmt.Println("Let's go back to a previous question. " + question)
			continue

		case reply.Eligible != nil && !*reply.Eligible:
			fmt.Println(reply.Reason)
			return nil

		case reply.EndChat:
			fmt.Println(reply.Farewell)
			return nil
		}

		question, _ := machine.NextPrompt()
		if machine.CurrentPhase() == model.PhaseComplete {
			fmt.Println(question)
			rec := machine.Record()
			fmt.Printf("\nFinal assessment: %d points (%s)\n", rec.Points, rec.Ranking)
			return nil
		}

		if reply.Sympathy != "" {
			question = reply.Sympathy + " " + question
		}
		fmt.Println(question)
	}

	return scanner.Err()
}
