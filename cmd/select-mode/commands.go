package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cexll/swe-mode/internal/github"
	"github.com/cexll/swe-mode/internal/logging"
	"github.com/cexll/swe-mode/internal/modes"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const outputDelimiter = "SWE_SELECT_MODE_EOF"

func newRootCmd(v *viper.Viper) *cobra.Command {
	// Action inputs arrive as INPUT_<NAME> environment variables.
	v.SetEnvPrefix("INPUT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "select-mode",
		Short:         "Choose the mode that handles a GitHub event",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(v.GetString("log-level"), v.GetString("log-format"), cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "console", "log format (console, json)")
	_ = v.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log-format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newSelectCmd(v), newValidateCmd(), newListCmd())
	return root
}

func newSelectCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Select a mode for the current event and print its name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := loadEvent(v.GetString("event-name"), v.GetString("event-path"))
			if err != nil {
				return err
			}
			ev = ev.WithInputs(github.Inputs{
				Prompt:        v.GetString("prompt"),
				TriggerPhrase: v.GetString("trigger-phrase"),
			})

			decision := modes.Decide(ev)
			result, err := decision.Mode.Prepare(context.Background(), ev)
			if err != nil {
				return fmt.Errorf("prepare %s mode: %w", decision.Mode.Name(), err)
			}

			log.Info().
				Str("event", string(ev.EventName)).
				Str("kind", string(ev.Kind)).
				Str("mode", result.Mode).
				Str("rule", decision.Rule).
				Msg("mode selected")

			if path := v.GetString("output"); path != "" {
				if err := writeOutputs(path, result); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), result.Mode)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.String("event-name", "", "GitHub event name (default $GITHUB_EVENT_NAME)")
	flags.String("event-path", "", "path to the event payload (default $GITHUB_EVENT_PATH)")
	flags.String("prompt", "", "explicit prompt; selects agent mode when set (default $INPUT_PROMPT)")
	flags.String("trigger-phrase", github.DefaultTriggerPhrase, "phrase that activates tag mode in comments (default $INPUT_TRIGGER_PHRASE)")
	flags.String("output", "", "file to append step outputs to (default $GITHUB_OUTPUT)")

	for _, name := range []string{"event-name", "event-path", "prompt", "trigger-phrase", "output"} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}
	_ = v.BindEnv("event-name", "GITHUB_EVENT_NAME")
	_ = v.BindEnv("event-path", "GITHUB_EVENT_PATH")
	_ = v.BindEnv("output", "GITHUB_OUTPUT")

	return cmd
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate NAME",
		Short: "Check that NAME is a known mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !modes.IsValidMode(args[0]) {
				_, err := modes.Lookup(args[0])
				return fmt.Errorf("%w (valid modes: %s)", err, strings.Join(modes.GetAllModeNames(), ", "))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is a valid mode\n", args[0])
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the known modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range modes.GetAllModeNames() {
				mode, err := modes.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", mode.Name(), mode.Description())
			}
			return nil
		},
	}
}

// loadEvent reads the event payload from disk. An empty path yields a context carrying only the event kind.
func loadEvent(name, path string) (*github.Context, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("event name is required (--event-name or GITHUB_EVENT_NAME)")
	}

	var payload []byte
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read event payload: %w", err)
		}
		payload = data
	}

	return github.ParseEvent(name, payload)
}

// writeOutputs appends step outputs in the GITHUB_OUTPUT file format.
func writeOutputs(path string, result *modes.PrepareResult) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "mode=%s\ntrack_progress=%t\nprompt<<%s\n%s\n%s\n",
		result.Mode, result.TrackProgress, outputDelimiter, result.Prompt, outputDelimiter)
	if err != nil {
		return fmt.Errorf("write outputs: %w", err)
	}
	return nil
}
