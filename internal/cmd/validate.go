package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/stagehand/internal/appconfig"
	"github.com/harrison/stagehand/internal/pkgpath"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config-file]",
		Short: "Validate a launch configuration without starting anything",
		Long: `Validate parses the launch configuration and reports problems that
would otherwise only surface at launch time: missing executables,
script entries without a path, monitor entries without an executable.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	var configFile string
	if len(args) == 1 {
		configFile = args[0]
	} else {
		packageRoot, err := pkgpath.Resolve()
		if err != nil {
			return err
		}
		configFile = filepath.Join(packageRoot, appconfig.FileName)
	}

	doc, err := appconfig.Load(configFile)
	if err != nil {
		return err
	}

	apps := doc.Applications()
	if len(apps) == 0 {
		return fmt.Errorf("%s: no applications configured", configFile)
	}

	var problems []string
	for i, app := range apps {
		name := app.ID()
		if name == "" {
			name = fmt.Sprintf("applications[%d]", i)
		}

		if _, err := app.Executable(); err != nil {
			problems = append(problems, fmt.Sprintf("%s: missing executable", name))
		}
		if script, ok := app.StartScript(); ok && script.Path == "" {
			problems = append(problems, fmt.Sprintf("%s: startScript has no scriptPath", name))
		}
		if script, ok := app.EndScript(); ok && script.Path == "" {
			problems = append(problems, fmt.Sprintf("%s: endScript has no scriptPath", name))
		}
		if monitor, ok := app.Monitor(); ok && monitor.Executable == "" {
			problems = append(problems, fmt.Sprintf("%s: monitor has no executable", name))
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Fprintln(os.Stderr, p)
		}
		return fmt.Errorf("%s: %d problem(s) found", configFile, len(problems))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d application(s) OK\n", configFile, len(apps))
	return nil
}
