package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/calcifer/internal/domain"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name      string
		category  domain.Category
		action    domain.ActionType
		wantCount int
		wantFirst string
	}{
		{
			name:      "service new has eight steps",
			category:  domain.CategoryService,
			action:    domain.ActionNew,
			wantCount: 8,
			wantFirst: "Define service purpose and requirements",
		},
		{
			name:      "platform feature new",
			category:  domain.CategoryPlatformFeature,
			action:    domain.ActionNew,
			wantCount: 7,
			wantFirst: "Define feature requirements and scope",
		},
		{
			name:      "platform feature fix",
			category:  domain.CategoryPlatformFeature,
			action:    domain.ActionFix,
			wantCount: 6,
			wantFirst: "Reproduce the issue",
		},
		{
			name:      "integration change",
			category:  domain.CategoryIntegration,
			action:    domain.ActionChange,
			wantCount: 4,
			wantFirst: "Document current integration behavior",
		},
		{
			name:      "documentation new",
			category:  domain.CategoryDocumentation,
			action:    domain.ActionNew,
			wantCount: 6,
			wantFirst: "Define documentation scope and audience",
		},
		{
			name:      "unknown combination gets fallback",
			category:  domain.CategoryDocumentation,
			action:    domain.ActionFix,
			wantCount: 2,
			wantFirst: "Complete the work",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := For(tt.category, tt.action)
			require.Len(t, items, tt.wantCount)
			assert.Equal(t, tt.wantFirst, items[0].Description)
			for _, item := range items {
				assert.False(t, item.Done, "new checklist items must start not done")
			}
		})
	}
}

func TestForReturnsIndependentCopies(t *testing.T) {
	first := For(domain.CategoryService, domain.ActionNew)
	first[0].Done = true
	first[0].Description = "mutated"

	second := For(domain.CategoryService, domain.ActionNew)
	assert.False(t, second[0].Done)
	assert.Equal(t, "Define service purpose and requirements", second[0].Description)
}
