// Package checklist provides the built-in checklist templates that seed a
// work item's steps based on its category and action type.
package checklist

import "github.com/mrz1836/calcifer/internal/domain"

// templates maps "category/action" to the ordered step descriptions.
var templates = map[string][]string{
	"platform_feature/new": {
		"Define feature requirements and scope",
		"Design database schema changes (if any)",
		"Implement backend logic",
		"Create/update UI templates",
		"Test feature thoroughly",
		"Document feature in work notes",
		"Update user-facing documentation",
	},
	"platform_feature/change": {
		"Document current behavior",
		"Implement changes",
		"Test changes thoroughly",
		"Update related documentation",
		"Verify no regressions",
	},
	"platform_feature/fix": {
		"Reproduce the issue",
		"Identify root cause",
		"Implement fix",
		"Test fix thoroughly",
		"Verify issue is resolved",
		"Document fix for future reference",
	},
	"integration/new": {
		"Research integration API/requirements",
		"Create integration module structure",
		"Implement core integration logic",
		"Add configuration options",
		"Test integration end-to-end",
		"Document integration setup",
		"Add to integrations documentation",
	},
	"integration/change": {
		"Document current integration behavior",
		"Implement changes",
		"Test integration functionality",
		"Update integration documentation",
	},
	"integration/fix": {
		"Reproduce integration issue",
		"Identify root cause",
		"Implement fix",
		"Test integration thoroughly",
		"Document fix",
	},
	"service/new": {
		"Define service purpose and requirements",
		"Check resource availability (RAM/CPU/disk)",
		"Create docker-compose.yml or config files",
		"Test service locally",
		"Deploy to target VM/host",
		"Configure monitoring/health checks",
		"Add to service catalog in Calcifer",
		"Document service configuration",
	},
	"service/change": {
		"Document current service configuration",
		"Backup existing configuration",
		"Make configuration changes",
		"Test changes",
		"Update service catalog entry",
		"Update service documentation",
	},
	"service/fix": {
		"Identify service issue",
		"Check logs and diagnostics",
		"Implement fix",
		"Restart/redeploy service",
		"Verify service is healthy",
		"Document fix for future reference",
	},
	"documentation/new": {
		"Define documentation scope and audience",
		"Create document structure/outline",
		"Write documentation content",
		"Add examples and code snippets",
		"Review for clarity and accuracy",
		"Add to docs/ directory",
	},
	"documentation/change": {
		"Identify sections to update",
		"Make documentation changes",
		"Update examples if needed",
		"Review for accuracy",
	},
}

// fallback seeds work items whose category/action pair has no template.
var fallback = []string{
	"Complete the work",
	"Document changes",
}

// For returns a fresh checklist for the given category and action type.
// Every item starts not done. Unknown combinations get a minimal generic
// checklist rather than an error, so a work item is never step-less.
func For(category domain.Category, action domain.ActionType) []domain.ChecklistItem {
	descriptions, ok := templates[string(category)+"/"+string(action)]
	if !ok {
		descriptions = fallback
	}

	items := make([]domain.ChecklistItem, len(descriptions))
	for i, desc := range descriptions {
		items[i] = domain.ChecklistItem{Description: desc}
	}
	return items
}
