package httpapi

import (
	"context"

	"github.com/alexanderramin/pinely/internal/intelligence"
)

type panickingOrganizer struct{}

func (panickingOrganizer) Organize(context.Context, string) (*intelligence.OrganizeResult, error) {
	panic("boom")
}
