package config

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// ParseTemplate parses text with the sprig function map
func ParseTemplate(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid template %s: %w", name, err)
	}
	return tmpl, nil
}

// Render parses and executes text against data
func Render(name, text string, data any) (string, error) {
	tmpl, err := ParseTemplate(name, text)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return b.String(), nil
}

// TemplateVars returns the variables every template sees
func (c *Config) TemplateVars() map[string]any {
	cwd, _ := os.Getwd()
	return map[string]any{
		"CONFIG_DIR":       c.ConfigDir,
		"USER_WORKING_DIR": cwd,
	}
}

// expandTemplate renders text with the config variables. Text that is not a
// valid template is returned unchanged.
func (c *Config) expandTemplate(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}
	out, err := Render("expand", text, c.TemplateVars())
	if err != nil {
		return text
	}
	return out
}

// ExpandPaths renders the config variables into the log file path
func (c *Config) ExpandPaths() {
	c.LogFile = c.expandTemplate(c.LogFile)
}
