package tools

import (
	"time"

	"gateway/pkg/bankapi"
)

// Dependencies are the collaborators of the default tool set.
type Dependencies struct {
	Bank          bankapi.Client
	KnowledgeBase *KnowledgeBase
	// Now overrides the clock used by get_statement.
	Now func() time.Time
}

// NewDefaultRegistry registers every tool offered to the model.
func NewDefaultRegistry(deps Dependencies) *Registry {
	return NewRegistry(
		NewExchangeTool(),
		NewBalanceTool(),
		NewSpecificBalanceTool(deps.Bank),
		NewAccountsInfoTool(deps.Bank),
		NewStatementTool(deps.Now),
		NewBankInfoTool(deps.KnowledgeBase),
	)
}
