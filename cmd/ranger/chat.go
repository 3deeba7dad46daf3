package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lone-ranger-roofing/ranger-agent/pkg/agent"
)

var chatCmd = &cobra.Command{
	Use:   "chat [query]",
	Short: "Interactive query mode, or run a single query",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), true)
		if err != nil {
			return err
		}

		if len(args) > 0 {
			return processQuery(cmd, a, joinArgs(args), "")
		}

		printBanner()
		sessionID := uuid.NewString()
		history := agent.NewHistory()
		scanner := bufio.NewScanner(os.Stdin)

		for {
			fmt.Print("> ")
			if !scanner.Scan() {
				fmt.Println("\nGoodbye!")
				return nil
			}
			query := strings.TrimSpace(scanner.Text())
			if query == "" {
				continue
			}

			switch strings.ToLower(query) {
			case "quit", "exit", "q", "bye":
				fmt.Println("\nGoodbye! Happy hunting!")
				return nil
			case "help", "?":
				printBanner()
				continue
			}

			transcript := history.Render(sessionID)
			history.Append(sessionID, "user", query)

			if err := processQuery(cmd, a, query, transcript); err != nil {
				bad.Printf("Error: %v\n   Try rephrasing your query.\n", err)
				continue
			}
			history.Append(sessionID, "assistant", "(answered)")
		}
	},
}

// processQuery routes a query to the structured lead chain or a free-form
// answer. The transcript only feeds free-form questions; lead searches are
// always taken verbatim.
func processQuery(cmd *cobra.Command, a *app, query, transcript string) error {
	if isLeadSearch(query) {
		fmt.Println("\nSearching for leads...")
		report, err := a.runner.FindLeadsFreeForm(cmd.Context(), query, csvFilename(query))
		if err != nil {
			return err
		}
		printLeadsReport(report)
		return nil
	}

	if transcript != "" {
		query = fmt.Sprintf("Conversation so far:\n%s\nuser: %s\n\nAnswer the last user message.", transcript, query)
	}

	fmt.Println("\nThinking...")
	answer, err := a.runner.Ask(cmd.Context(), query)
	if err != nil {
		return err
	}
	fmt.Printf("\n%s\n\n", answer)
	return nil
}

var (
	leadKeywords = []string{"find", "get", "search", "look for", "locate", "list"}
	leadTargets  = []string{"inspector", "realtor", "agent", "manager", "lead", "homeowner", "property", "storm"}
)

// isLeadSearch decides between the structured lead chain and a free-form
// answer. A query counts as a lead search when it carries both a search verb
// and a lead target.
func isLeadSearch(query string) bool {
	lower := strings.ToLower(query)

	hasKeyword := false
	for _, kw := range leadKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return false
	}
	for _, t := range leadTargets {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// csvFilename builds a safe export name from a free-form query.
func csvFilename(query string) string {
	var b strings.Builder
	for _, r := range query {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}
	name := b.String()
	if len(name) > 40 {
		name = name[:40]
	}
	return "leads_" + name
}

func printBanner() {
	fmt.Println()
	heading.Println("LONE RANGER ROOFING - Lead Agent")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Println("ASK ANYTHING:")
	fmt.Println()
	fmt.Println("  QUESTIONS & STRATEGY")
	fmt.Println(`     "Who can help me find roofing leads?"`)
	fmt.Println(`     "What's the best way to get referrals?"`)
	fmt.Println(`     "How do I find homeowners after a storm?"`)
	fmt.Println()
	fmt.Println("  FIND LEADS")
	fmt.Println(`     "Find 10 home inspectors in Austin"`)
	fmt.Println(`     "Find storm leads in Texas"`)
	fmt.Println(`     "Find realtors near Dallas"`)
	fmt.Println()
	fmt.Println("'help' = this menu  |  'quit' = exit")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
}
