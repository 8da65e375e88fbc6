package catalog

import "path"

// Namespace names.
const (
	NamespaceSkills = "skills"
	NamespaceAgents = "agents"
)

// Namespaces lists the content namespaces in install order.
var Namespaces = []string{NamespaceSkills, NamespaceAgents}

// Well-known entry contents.
const (
	ResourcesDir = "resources"
	ScriptsDir   = "scripts"
)

// WorkflowFiles are the accepted agent workflow descriptor names.
var WorkflowFiles = []string{"workflow.yaml", "workflow.yml"}

// Entry is a skill or agent found in the repository.
type Entry struct {
	Namespace string   // "skills" or "agents"
	Category  string   // e.g. "core"
	Name      string   // e.g. "tdd"
	Dir       string   // absolute path to the entry directory
	RelDir    string   // slash-separated path relative to the repo root
	DocPaths  []string // absolute paths of primary doc candidates (want exactly one)
	Resources []string // repo-relative resource files
	Scripts   []string // repo-relative script files
	Workflow  string   // absolute path to the workflow descriptor, agents only
}

// ID returns the "<category>/<name>" identifier used in skill chains.
func (e Entry) ID() string {
	return path.Join(e.Category, e.Name)
}

// DocPath returns the primary documentation file, or "" when the entry does
// not have exactly one.
func (e Entry) DocPath() string {
	if len(e.DocPaths) != 1 {
		return ""
	}
	return e.DocPaths[0]
}
