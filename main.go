// ABOUTME: Entry point for the crmdeck CLI, TUI and MCP server
// ABOUTME: Opens the KV stores and routes to subcommands based on arguments
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"crmdeck/cli"
	"crmdeck/store"
	"crmdeck/tui"
)

const version = "0.1.0"

func main() {
	// Optional .env for CRMDECK_DATA_DIR and friends
	_ = godotenv.Load()

	// Global flags
	showVersion := flag.Bool("version", false, "Show version and exit")
	dataDir := flag.String("data-dir", "", "Data directory (default: ~/.local/share/crmdeck)")

	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("crmdeck version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	dir := *dataDir
	if dir == "" {
		dir = store.DataDir()
	}

	kv, err := store.Open(dir)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer kv.Close()

	entities, err := store.NewEntityStore(kv)
	if err != nil {
		log.Fatalf("Failed to load entities: %v", err)
	}
	session, err := store.NewSessionStore(kv)
	if err != nil {
		log.Fatalf("Failed to load session: %v", err)
	}
	themes, err := store.NewThemeStore(kv)
	if err != nil {
		log.Fatalf("Failed to load theme: %v", err)
	}

	command := args[0]
	commandArgs := args[1:]

	switch command {
	case "mcp":
		if err := cli.MCPCommand(entities); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "tui":
		if err := tui.Run(entities, themes, session); err != nil {
			log.Fatalf("TUI failed: %v", err)
		}

	// Contact commands
	case "add-contact":
		run(cli.AddContactCommand(entities, commandArgs))
	case "list-contacts":
		run(cli.ListContactsCommand(entities, commandArgs))
	case "update-contact":
		run(cli.UpdateContactCommand(entities, commandArgs))
	case "delete-contact":
		run(cli.DeleteContactCommand(entities, commandArgs))

	// Lead commands
	case "add-lead":
		run(cli.AddLeadCommand(entities, commandArgs))
	case "list-leads":
		run(cli.ListLeadsCommand(entities, commandArgs))
	case "update-lead":
		run(cli.UpdateLeadCommand(entities, commandArgs))
	case "delete-lead":
		run(cli.DeleteLeadCommand(entities, commandArgs))
	case "lead-report":
		run(cli.LeadReportCommand(entities, commandArgs))

	// Deal commands
	case "add-deal":
		run(cli.AddDealCommand(entities, commandArgs))
	case "list-deals":
		run(cli.ListDealsCommand(entities, commandArgs))
	case "move-deal":
		run(cli.MoveDealCommand(entities, commandArgs))
	case "update-deal":
		run(cli.UpdateDealCommand(entities, commandArgs))
	case "delete-deal":
		run(cli.DeleteDealCommand(entities, commandArgs))
	case "pipeline":
		run(cli.PipelineCommand(entities, commandArgs))

	// Task commands
	case "add-task":
		run(cli.AddTaskCommand(entities, commandArgs))
	case "list-tasks":
		run(cli.ListTasksCommand(entities, commandArgs))
	case "update-task":
		run(cli.UpdateTaskCommand(entities, commandArgs))
	case "complete-task":
		run(cli.CompleteTaskCommand(entities, commandArgs))
	case "delete-task":
		run(cli.DeleteTaskCommand(entities, commandArgs))

	// Session commands
	case "login":
		run(cli.LoginCommand(session, commandArgs))
	case "logout":
		run(cli.LogoutCommand(session, commandArgs))
	case "whoami":
		run(cli.WhoamiCommand(session, commandArgs))
	case "update-profile":
		run(cli.UpdateProfileCommand(session, commandArgs))

	// Everything else
	case "dashboard":
		run(cli.DashboardCommand(entities, commandArgs))
	case "theme":
		run(cli.ThemeCommand(themes, commandArgs))
	case "export":
		run(cli.ExportCommand(entities, commandArgs))

	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func run(err error) {
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func printUsage() {
	fmt.Printf(`crmdeck v%s - terminal CRM

USAGE:
  crmdeck [global flags] <command> [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --data-dir <path>      Data directory (default: ~/.local/share/crmdeck,
                         or CRMDECK_DATA_DIR)

INTERFACES:
  crmdeck tui            Interactive terminal UI
  crmdeck mcp            MCP server over stdio (for agent integration)

CONTACTS:
  crmdeck add-contact       Add a contact
    --name <name>             Contact name (required)
    --email <email>           Email address
    --phone <phone>           Phone number
    --company <company>       Company name
    --position <position>     Job title
    --tags <a,b,c>            Comma-separated tags
    --notes <notes>           Notes

  crmdeck list-contacts     List contacts
    --query <text>            Search name/email/company
    --company <company>       Filter by company
    --tag <tag>               Filter by tag

  crmdeck update-contact    Update a contact (--id <id> plus the fields to change)
  crmdeck delete-contact --id <id>

LEADS:
  crmdeck add-lead          Add a lead
    --name <name>             Lead name (required)
    --email, --phone, --company, --notes
    --value <cents>           Estimated value in cents
    --status <status>         new|qualified|converted|lost
    --source <source>         Where the lead came from
    --assigned-to <user-id>   Owner

  crmdeck list-leads        List leads (--query, --status, --source, --assigned-to)
  crmdeck update-lead       Update a lead (--id <id> plus the fields to change)
  crmdeck delete-lead --id <id>
  crmdeck lead-report       Lead counts by status/source and conversion rate

DEALS:
  crmdeck add-deal          Add a deal
    --title <title>           Deal title (required)
    --value <cents>           Value in cents
    --stage <stage>           prospecting|qualification|proposal|negotiation|closed-won|closed-lost
    --probability <0-100>     Win probability
    --contact <contact-id>    Associated contact
    --close-date <YYYY-MM-DD> Expected close date
    --assigned-to <user-id>   Owner

  crmdeck list-deals        List deals (--query, --stage, --assigned-to)
  crmdeck move-deal         Move a deal to another stage
    --id <deal-id>            Deal to move (required)
    --stage <stage>           Target stage, or
    --onto <deal-id>          Inherit the stage of another deal

  crmdeck update-deal       Update a deal (--id <id> plus the fields to change;
                            --contact/--close-date with an empty value clear)
  crmdeck delete-deal --id <id>
  crmdeck pipeline          Pipeline board summary per stage

TASKS:
  crmdeck add-task          Add a task
    --title <title>           Task title (required)
    --description <text>
    --due <YYYY-MM-DD>        Due date
    --priority <p>            low|medium|high
    --related-type <type>     contact|lead|deal
    --related-id <id>         Related record id
    --assigned-to <user-id>   Owner

  crmdeck list-tasks        List tasks (--query, --status, --priority, --overdue)
  crmdeck update-task       Update a task (--id <id> plus the fields to change;
                            --due/--related-id with an empty value clear)
  crmdeck complete-task --id <id>
  crmdeck delete-task --id <id>

SESSION:
  crmdeck login             Sign in (--email, prompts for password)
  crmdeck logout            Sign out
  crmdeck whoami            Show the current user
  crmdeck update-profile    Update the signed-in user (--name, --avatar)

OTHER:
  crmdeck dashboard         ASCII dashboard (pipeline, leads, tasks)
  crmdeck theme             Show the theme; --toggle flips dark/light
  crmdeck export            Export a snapshot to SQLite (--out <path>)
`, version)
}
