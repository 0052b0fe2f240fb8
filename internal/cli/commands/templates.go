package commands

import (
	"embed"
	"io"
	"text/template"

	"github.com/leapstack-labs/earlylint/internal/cli/config"
	"github.com/leapstack-labs/earlylint/pkg/core"
	"github.com/leapstack-labs/earlylint/pkg/lint"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var configTemplate = template.Must(template.ParseFS(templateFS, "templates/earlylint.yaml.tmpl"))

// configTemplateData feeds templates/earlylint.yaml.tmpl.
type configTemplateData struct {
	Severity      string
	Applicability string
	ExampleRule   string
	IDWidth       int
	Rules         []core.RuleInfo
	Options       []core.RuleInfo // rules with config keys
}

// renderConfig writes a starter config listing every registered rule.
func renderConfig(w io.Writer) error {
	d := config.Defaults()
	data := configTemplateData{
		Severity:      d.Severity,
		Applicability: d.Fix.Applicability,
		Rules:         lint.AllRules(),
	}
	for _, ri := range data.Rules {
		if len(ri.ID)+1 > data.IDWidth {
			data.IDWidth = len(ri.ID) + 1
		}
		if len(ri.ConfigKeys) > 0 {
			data.Options = append(data.Options, ri)
		}
		if ri.DefaultSeverity == core.SeverityHint && data.ExampleRule == "" {
			data.ExampleRule = ri.ID
		}
	}
	if data.ExampleRule == "" && len(data.Rules) > 0 {
		data.ExampleRule = data.Rules[0].ID
	}
	return configTemplate.ExecuteTemplate(w, "earlylint.yaml.tmpl", data)
}
