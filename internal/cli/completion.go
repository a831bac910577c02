package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/agbru/fractal/internal/config"
	"github.com/agbru/fractal/internal/palette"
	"github.com/agbru/fractal/internal/rules"
)

// ProgramName is the command that completion scripts attach to.
const ProgramName = "fractal"

// FlagCompletion describes a flag for shell completion generation.
type FlagCompletion struct {
	Name      string   // flag name without the leading dash
	Help      string   // description text
	Values    []string // suggested values (nil = boolean or free-form)
	ValueName string   // label for the value; empty for boolean flags
}

// Shells lists the accepted -completion values.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// CompletionFlags returns the flag registry used by every generator. Value
// lists come from the live registries so new rules and palettes show up
// without editing this file.
func CompletionFlags() []FlagCompletion {
	var kinds []string
	for _, k := range rules.Kinds() {
		kinds = append(kinds, k.String())
	}
	return []FlagCompletion{
		{Name: "h", Help: "Show help message"},
		{Name: "version", Help: "Show version information"},
		{Name: "mode", Help: "Execution mode", Values: config.Modes(), ValueName: "mode"},
		{Name: "rule", Help: "Iteration rule", Values: kinds, ValueName: "rule"},
		{Name: "poly", Help: "Polynomial for newton and nova", Values: rules.PolynomialNames(), ValueName: "poly"},
		{Name: "palette", Help: "Color palette", Values: palette.PresetNames(), ValueName: "palette"},
		{Name: "width", Help: "Frame width in pixels", Values: []string{"80", "640", "1280", "1920"}, ValueName: "pixels"},
		{Name: "height", Help: "Frame height in pixels", Values: []string{"40", "480", "720", "1080"}, ValueName: "pixels"},
		{Name: "workers", Help: "Row bands per frame", Values: []string{"0", "1", "4", "8", "16"}, ValueName: "count"},
		{Name: "batch", Help: "Use the batched coloring path"},
		{Name: "seed", Help: "Julia and Nova seed", ValueName: "complex"},
		{Name: "center", Help: "Initial viewport center", ValueName: "complex"},
		{Name: "scale", Help: "Initial viewport scale", ValueName: "scale"},
		{Name: "frames", Help: "Frames rendered by bench", Values: []string{"10", "30", "100"}, ValueName: "count"},
		{Name: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
		{Name: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
		{Name: "metrics", Help: "Print Prometheus metrics after bench"},
		{Name: "no-color", Help: "Disable colored output"},
		{Name: "completion", Help: "Generate completion script", Values: Shells, ValueName: "shell"},
	}
}

// GenerateCompletion writes a completion script for shell to out.
func GenerateCompletion(out io.Writer, shell string) error {
	flags := CompletionFlags()
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(flags)
	case "zsh":
		script = zshCompletion(flags)
	case "fish":
		script = fishCompletion(flags)
	case "powershell", "ps":
		script = powerShellCompletion(flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func bashCompletion(flags []FlagCompletion) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flags {
		opts = append(opts, "-"+f.Name)
		if len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        -%s|--%s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
			f.Name, f.Name, strings.Join(f.Values, " "))
	}

	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

_%[1]s_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[2]s"

    case "${prev}" in
%[3]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _%[1]s_completions %[1]s
`, ProgramName, strings.Join(opts, " "), cases.String())
}

func zshCompletion(flags []FlagCompletion) string {
	args := make([]string, 0, len(flags))
	for _, f := range flags {
		suffix := ""
		switch {
		case len(f.Values) > 0:
			suffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
		case f.ValueName != "":
			suffix = fmt.Sprintf(":%s:", f.ValueName)
		}
		args = append(args, fmt.Sprintf("        '-%s[%s]%s'", f.Name, f.Help, suffix))
	}

	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

_%[1]s() {
    _arguments -s \
%[2]s
}

_%[1]s "$@"
`, ProgramName, strings.Join(args, " \\\n"))
}

func fishCompletion(flags []FlagCompletion) string {
	lines := []string{
		"# Fish completion script for " + ProgramName,
		"# Add this to ~/.config/fish/completions/" + ProgramName + ".fish",
		"",
		"complete -c " + ProgramName + " -f",
	}
	for _, f := range flags {
		// Go's flag package accepts single-dash long names; fish calls them old-style options.
		line := fmt.Sprintf("complete -c %s -o %s -d '%s'", ProgramName, f.Name, f.Help)
		switch {
		case len(f.Values) > 0:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(f.Values, " "))
		case f.ValueName != "":
			line += " -x"
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

func powerShellCompletion(flags []FlagCompletion) string {
	var options, switches []string
	for _, f := range flags {
		options = append(options, fmt.Sprintf("        @{Name = '-%s'; Description = '%s' }", f.Name, f.Help))
		if len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = "'" + v + "'"
		}
		switches = append(switches, fmt.Sprintf(`        '-%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Name, strings.Join(quoted, ", ")))
	}

	return fmt.Sprintf(`# PowerShell completion script for %[1]s
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName '%[1]s' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%[2]s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%[3]s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, ProgramName, strings.Join(options, "\n"), strings.Join(switches, "\n"))
}
