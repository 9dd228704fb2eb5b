package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"factcheck-quiz-service/internal/domain"
	"github.com/spf13/cobra"
)

// NewCheckCmd classifies one piece of text and prints the result as JSON.
func NewCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check [text]",
		Short: "Fact-check text given as argument or on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := checkInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			checker, err := newChecker(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return writeResult(cmd.OutOrStdout(), checker.Check(ctx, text))
		},
	}
}

func checkInput(args []string, stdin io.Reader) (string, error) {
	text := ""
	if len(args) == 1 {
		text = args[0]
	} else {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyText
	}
	return text, nil
}

func writeResult(w io.Writer, result domain.ClassificationResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if result.Label == domain.LabelError {
		return errors.New("model call failed")
	}
	return nil
}
