package enrich

import "fmt"

// stageNames maps deal pipeline stage ids to display names. The pipeline is
// account-specific; resolve actual names from /api/deal_pipelines when the
// table drifts. Unknown ids fall back to a generated name.
var stageNames = map[int64]string{
	402001815646: "New Lead",
	402001815647: "Contact Made",
	402001815648: "Qualified",
	402001815649: "Proposal Sent",
	402001815650: "KYC Created",
	402001815651: "Closed Lost",
	402001815652: "Closed Won",
	402001821236: "Account Not Funded",
	402001842536: "Account Funded",
}

// StageName resolves a pipeline stage id to its display name.
// Unknown ids produce "Stage <id>".
func StageName(id int64) string {
	if name, ok := stageNames[id]; ok {
		return name
	}
	return fmt.Sprintf("Stage %d", id)
}
