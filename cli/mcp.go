// ABOUTME: MCP server subcommand
// ABOUTME: Exposes the CRM stores as tools over stdio
package cli

import (
	"context"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"crmdeck/handlers"
	"crmdeck/store"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(s *store.EntityStore) error {
	log.Println("Starting crmdeck MCP server...")

	contactHandlers := handlers.NewContactHandlers(s)
	leadHandlers := handlers.NewLeadHandlers(s)
	dealHandlers := handlers.NewDealHandlers(s)
	taskHandlers := handlers.NewTaskHandlers(s)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "crmdeck",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact to the CRM",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by term, company, or tag",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact's information",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact (references from deals and tasks are left dangling)",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_lead",
		Description: "Add a new lead to the CRM",
	}, leadHandlers.AddLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_leads",
		Description: "Search leads by term, status, source, or assignee",
	}, leadHandlers.FindLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_lead",
		Description: "Update an existing lead, including its status",
	}, leadHandlers.UpdateLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "lead_report",
		Description: "Lead counts by status and source plus the conversion rate",
	}, leadHandlers.LeadReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_deal",
		Description: "Create a new deal in the pipeline",
	}, dealHandlers.CreateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_deal",
		Description: "Update an existing deal's information including stage and value",
	}, dealHandlers.UpdateDeal)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "move_deal_stage",
		Description: "Move a deal to another pipeline stage, or onto another deal to inherit its stage",
	}, dealHandlers.MoveDealStage)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_deals",
		Description: "Search deals by term, stage, or assignee",
	}, dealHandlers.FindDeals)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "pipeline_report",
		Description: "Pipeline counts and values per stage with won and weighted totals",
	}, dealHandlers.PipelineReport)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_task",
		Description: "Create a new task, optionally related to a contact, lead, or deal",
	}, taskHandlers.CreateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_task",
		Description: "Update an existing task, including status and priority",
	}, taskHandlers.UpdateTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_tasks",
		Description: "Search tasks by term, status, priority, or assignee",
	}, taskHandlers.FindTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "overdue_tasks",
		Description: "List tasks past their due date that are not completed",
	}, taskHandlers.OverdueTasks)

	return server.Run(context.Background(), &mcp.StdioTransport{})
}
