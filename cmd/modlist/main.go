// cmd/modlist/main.go
package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/modbot/internal/config"
	"github.com/keshon/modbot/internal/mods"
)

func main() {
	var table bytes.Buffer
	table.WriteString("| Mod | Command | Aliases | Listens | Description |\n")
	table.WriteString("|-----|---------|---------|---------|-------------|\n")

	for _, m := range mods.All(&config.Config{}) {
		command := "-"
		if m.Command != "" {
			command = "`!" + m.Command + "`"
		}

		aliases := "-"
		if len(m.Aliases) > 0 {
			quoted := make([]string, len(m.Aliases))
			for i, a := range m.Aliases {
				quoted[i] = "`!" + a + "`"
			}
			aliases = strings.Join(quoted, " ")
		}

		var listens []string
		if m.OnMessageCreate != nil {
			listens = append(listens, "create")
		}
		if m.OnMessageUpdate != nil {
			listens = append(listens, "update")
		}
		if m.OnMessageDelete != nil {
			listens = append(listens, "delete")
		}

		fmt.Fprintf(&table, "| %s | %s | %s | %s | %s |\n",
			m.Name, command, aliases, strings.Join(listens, ", "), m.Description)
	}

	tmplData, err := os.ReadFile("README.md.tmpl")
	if err != nil {
		panic(err)
	}

	tmpl, err := template.New("readme").Parse(string(tmplData))
	if err != nil {
		panic(err)
	}

	var out bytes.Buffer
	if err := tmpl.Execute(&out, map[string]any{"ModTable": table.String()}); err != nil {
		panic(err)
	}

	if err := os.WriteFile("README.md", out.Bytes(), 0644); err != nil {
		panic(err)
	}
}
