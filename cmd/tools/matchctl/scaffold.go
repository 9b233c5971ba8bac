// cmd/tools/matchctl/scaffold.go
package main

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"matching-workers/pkg/registry"
)

type scaffoldField struct {
	Name    string
	Type    string
	JSONTag string
	Comment string
}

type scaffoldData struct {
	PackageName  string
	TaskType     string
	DisplayName  string
	Timeout      string
	InputFields  []scaffoldField
	OutputFields []scaffoldField
}

const configTemplate = `package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`

const modelsTemplate = `package {{ .PackageName }}

// Input is the job variables accepted by {{ .TaskType }}.
type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .Type }} ` + "`json:\"{{ .JSONTag }}\"`" + `{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
}

// Output is the variables {{ .DisplayName }} completes the job with.
type Output struct {
{{- range .OutputFields }}
	{{ .Name }} interface{} ` + "`json:\"{{ .JSONTag }}\"`" + `
{{- end }}
}
`

func scaffoldCmd(load func() (*registry.ActivityRegistry, error)) *cobra.Command {
	var id, outDir string
	cmd := &cobra.Command{
		Use:   "scaffold",
		Short: "Generate config.go and models.go for a registered activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := load()
			if err != nil {
				return err
			}
			var act *registry.Activity
			for i := range reg.Activities {
				if reg.Activities[i].ID == id {
					act = &reg.Activities[i]
				}
			}
			if act == nil {
				return fmt.Errorf("activity not found: %s", id)
			}

			files, err := renderScaffold(newScaffoldData(act))
			if err != nil {
				return err
			}
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			for name, content := range files {
				path := filepath.Join(outDir, name)
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists", path)
				} else if !errors.Is(err, os.ErrNotExist) {
					return err
				}
				if err := os.WriteFile(path, content, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "Activity id")
	cmd.Flags().StringVar(&outDir, "out", "", "Target package directory")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func newScaffoldData(act *registry.Activity) scaffoldData {
	data := scaffoldData{
		PackageName: strings.ReplaceAll(act.TaskType, "-", ""),
		TaskType:    act.TaskType,
		DisplayName: act.DisplayName,
		Timeout:     "10 * time.Second",
	}
	if d, ok := durationLiteral(act.Timeout); ok {
		data.Timeout = d
	}

	props, _ := act.InputSchema["properties"].(map[string]interface{})
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		desc, _ := details["description"].(string)
		data.InputFields = append(data.InputFields, scaffoldField{
			Name:    exportedName(name),
			Type:    goTypeFor(details["type"]),
			JSONTag: name,
			Comment: desc,
		})
	}
	for _, name := range act.OutputFields {
		data.OutputFields = append(data.OutputFields, scaffoldField{Name: exportedName(name), JSONTag: name})
	}
	return data
}

func renderScaffold(data scaffoldData) (map[string][]byte, error) {
	files := map[string][]byte{}
	for name, text := range map[string]string{"config.go": configTemplate, "models.go": modelsTemplate} {
		tmpl, err := template.New(name).Parse(text)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		src, err := format.Source(buf.Bytes())
		if err != nil {
			return nil, fmt.Errorf("format %s: %w", name, err)
		}
		files[name] = src
	}
	return files, nil
}

// durationLiteral turns "15s" or "2m" into Go source.
func durationLiteral(s string) (string, bool) {
	units := map[byte]string{'s': "time.Second", 'm': "time.Minute", 'h': "time.Hour"}
	if len(s) < 2 {
		return "", false
	}
	unit, ok := units[s[len(s)-1]]
	num := s[:len(s)-1]
	if !ok || strings.Trim(num, "0123456789") != "" || num == "" {
		return "", false
	}
	return num + " * " + unit, true
}

func goTypeFor(jsonType interface{}) string {
	switch jsonType {
	case "string":
		return "string"
	case "number":
		return "float64"
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

func exportedName(s string) string {
	if s == "" {
		return s
	}
	name := strings.ToUpper(s[:1]) + s[1:]
	if strings.HasSuffix(name, "Id") {
		name = strings.TrimSuffix(name, "Id") + "ID"
	}
	return name
}
