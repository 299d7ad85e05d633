package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gradletree/pkg/errors"
	"github.com/matzehuels/gradletree/pkg/pipeline"
)

// stderrTail bounds the Gradle error output quoted in a failure.
const stderrTail = 20

// runOpts holds the flags of the run command.
type runOpts struct {
	outputOpts
	gradle  string // executable, overrides ./gradlew and the config
	project string // subproject path such as ":app"
}

// runCommand creates the run command, which invokes Gradle directly.
func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run [project-dir]",
		Short: "Run `gradle dependencies` in a project and parse its output",
		Long: `Run "gradle -q dependencies" in a project directory (default: the current
directory) and parse its output.

The project's ./gradlew wrapper is used when present, otherwise the Gradle
executable from the config (default "gradle"). With exactly one
--configuration the name is passed on to Gradle so only that configuration
is resolved.`,
		Example: `  gradletree run
  gradletree run ~/src/app -p :server -c runtimeClasspath -f json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return c.runGradle(cmd, dir, &opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVar(&opts.gradle, "gradle", "", "Gradle executable (default ./gradlew, then config)")
	cmd.Flags().StringVarP(&opts.project, "project", "p", "", "subproject whose dependencies to report, e.g. :app")
	return cmd
}

func (c *CLI) runGradle(cmd *cobra.Command, dir string, opts *runOpts) error {
	ctx := cmd.Context()
	if err := errors.ValidatePath(dir); err != nil {
		return err
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return errors.New(errors.ErrCodeInvalidPath, "%s is not a directory", dir)
	}

	popts := opts.options(cmd, c.Config, dir)
	popts.Logger = loggerFromContext(ctx)
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	fallback := c.Config.Gradle
	if opts.gradle != "" {
		fallback = opts.gradle
	}
	bin, args := gradleCommand(dir, fallback, opts.project, popts.Configurations, opts.gradle != "")

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %s %s", filepath.Base(bin), strings.Join(args, " ")))
	spinner.Start()
	prog := newProgress(loggerFromContext(ctx))

	result, err := execGradle(ctx, runner, dir, bin, args, popts)
	if err != nil {
		spinner.StopWithError("Gradle failed")
		return err
	}
	spinner.Stop()
	prog.done("Gradle finished", "dir", dir)
	warnIfEmpty(result, dir, popts.Lenient)

	return writeResult(cmd, result, popts.Format, opts.output)
}

// gradleCommand returns the executable and arguments that print the
// dependency report of dir. The wrapper in dir wins unless explicit is set.
func gradleCommand(dir, fallback, project string, configurations []string, explicit bool) (string, []string) {
	bin := fallback
	if !explicit {
		if wrapper := filepath.Join(dir, wrapperName()); isExecutable(wrapper) {
			bin, _ = filepath.Abs(wrapper)
		}
	}

	task := "dependencies"
	if project != "" {
		if !strings.HasPrefix(project, ":") {
			project = ":" + project
		}
		task = strings.TrimSuffix(project, ":") + ":dependencies"
	}

	args := []string{"-q", task}
	if len(configurations) == 1 {
		args = append(args, "--configuration", configurations[0])
	}
	return bin, args
}

func wrapperName() string {
	if runtime.GOOS == "windows" {
		return "gradlew.bat"
	}
	return "gradlew"
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return runtime.GOOS == "windows" || info.Mode()&0o111 != 0
}

// execGradle streams Gradle's stdout into the runner. A non-zero exit is a
// BUILD_TOOL_FAILED error quoting the end of Gradle's stderr.
func execGradle(ctx context.Context, runner *pipeline.Runner, dir, bin string, args []string, opts pipeline.Options) (*pipeline.Result, error) {
	command := exec.CommandContext(ctx, bin, args...)
	command.Dir = dir
	var stderr bytes.Buffer
	command.Stderr = &stderr

	stdout, err := command.StdoutPipe()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildTool, err, "pipe %s", bin)
	}
	if err := command.Start(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBuildTool, err, "start %s", bin)
	}

	result, parseErr := runner.ExecuteReader(ctx, stdout, opts)
	if parseErr != nil {
		_, _ = io.Copy(io.Discard, stdout)
	}

	if err := command.Wait(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeBuildTool, err, "%s %s: %s", filepath.Base(bin), strings.Join(args, " "), tail(stderr.String(), stderrTail))
	}
	return result, parseErr
}

// tail returns the last n non-empty lines of s joined by newlines.
func tail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	if len(lines) == 0 {
		return "no output on stderr"
	}
	return strings.Join(lines, "\n")
}
