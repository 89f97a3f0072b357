package format

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/deployo/deployo/pkg/deployexec"
)

// PrintDeploySummary renders the outcome of a deployment run. In JSON mode the
// full result is emitted instead of the human-readable summary.
func (f *Formatter) PrintDeploySummary(res *deployexec.Result) error {
	if f.mode == ModeJSON || f.mode == ModeYAML {
		return f.printStructured(res)
	}
	if f.quiet {
		return nil
	}

	var completed, failed, canceled int
	for _, fr := range res.Files {
		switch {
		case fr.Canceled:
			canceled++
		case fr.Err != nil:
			failed++
		default:
			completed++
		}
	}

	switch {
	case res.Status == "canceled":
		fmt.Fprintf(f.stdout, "%s Deployment to '%s' canceled (%d deployed, %d pending)\n",
			f.glyph("⚠", color.FgYellow), res.Target, completed, canceled)
	case failed > 0:
		fmt.Fprintf(f.stdout, "%s Deployment to '%s' finished with errors (%d deployed, %d failed)\n",
			f.glyph("⚠", color.FgYellow), res.Target, completed, failed)
		for _, fr := range res.Files {
			if fr.Err != nil {
				fmt.Fprintf(f.stdout, "  %s %s: %v\n", f.glyph("✗", color.FgRed), fr.File, fr.Err)
			}
		}
	default:
		fmt.Fprintf(f.stdout, "%s Deployed %d file(s) to '%s'\n",
			f.glyph("✓", color.FgGreen), completed, res.Target)
	}
	return nil
}

// PrintDeployFailure renders a run-level error with optional follow-up hints.
func (f *Formatter) PrintDeployFailure(err error, suggestions []string) error {
	if f.mode == ModeJSON || f.mode == ModeYAML {
		return f.printStructured(map[string]any{
			"error":       err.Error(),
			"code":        deployexec.ErrorCode(err),
			"suggestions": suggestions,
		})
	}

	fmt.Fprintf(f.stderr, "%s %v\n", f.glyph("✗", color.FgRed), err)
	if len(suggestions) > 0 {
		fmt.Fprintf(f.stderr, "\n💡 Suggestions:\n")
		for _, s := range suggestions {
			fmt.Fprintf(f.stderr, "  • %s\n", s)
		}
	}
	return nil
}

func (f *Formatter) glyph(symbol string, attr color.Attribute) string {
	if !f.color {
		return symbol
	}
	return color.New(attr).Sprint(symbol)
}
