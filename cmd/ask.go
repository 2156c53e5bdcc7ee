package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spacecanva/spacecanva/internal/laboratory"
	"github.com/spacecanva/spacecanva/internal/viz"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the space exploration expert a question",
	Long: `Sends a question to the laboratory model and prints the answer. Charts,
tables and gauges embedded in the answer are rendered after the prose.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().Float64("temperature", -1, "sampling temperature between 0 and 1 (default from config)")
	askCmd.Flags().Bool("json", false, "output the full reply as JSON")
	askCmd.Flags().Bool("type", false, "print the answer with the typing effect")
	askCmd.Flags().Bool("usage", false, "print token usage and estimated cost")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	service, err := newLaboratoryService(cfg)
	if err != nil {
		return err
	}

	q := laboratory.Query{Question: strings.Join(args, " ")}
	if t, _ := cmd.Flags().GetFloat64("temperature"); t >= 0 {
		q.Temperature = &t
	}

	reply, err := service.AskWith(ctx, q)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(reply)
	}

	out := cmd.OutOrStdout()
	if typed, _ := cmd.Flags().GetBool("type"); typed {
		tw := laboratory.Typewriter{Delay: cfg.Laboratory.TypingDelay, ChunkWords: cfg.Laboratory.TypingChunk}
		printed := 0
		if err := tw.Type(ctx, reply.Text, func(partial string) error {
			_, err := io.WriteString(out, partial[printed:])
			printed = len(partial)
			return err
		}); err != nil {
			return err
		}
		fmt.Fprintln(out)
	} else {
		fmt.Fprintln(out, reply.Text)
	}

	for _, v := range reply.Visualizations {
		fmt.Fprintln(out)
		renderVisualization(out, v)
	}

	if usage, _ := cmd.Flags().GetBool("usage"); usage {
		fmt.Fprintf(out, "\n%s: %d input + %d output tokens (~$%.4f)\n",
			reply.Usage.Model, reply.Usage.InputTokens, reply.Usage.OutputTokens, reply.Usage.CostUSD)
	}
	return nil
}

// renderVisualization prints a plain-text rendition of v.
func renderVisualization(w io.Writer, v viz.Visualization) {
	fmt.Fprintf(w, "== %s ==\n", v.Data.DisplayTitle(v.Type))

	switch v.Type {
	case viz.KindTable:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		if len(v.Data.Columns) > 0 {
			fmt.Fprintln(tw, strings.Join(v.Data.Columns, "\t"))
		}
		for _, row := range v.Data.Rows {
			cells := make([]string, len(row))
			for i, c := range row {
				cells[i] = fmt.Sprint(c)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		tw.Flush()

	case viz.KindChart:
		for _, p := range v.Data.Points {
			label := p.Label
			if label == "" {
				label = fmt.Sprintf("%g", p.X)
			}
			fmt.Fprintf(w, "  %-20s %g\n", label, p.Y)
		}

	case viz.KindGauge:
		min, max := v.Data.GaugeBounds()
		if v.Data.Value == nil {
			fmt.Fprintf(w, "  %s: no value\n", v.Data.Label)
			return
		}
		fmt.Fprintf(w, "  %s %s %g%s (range %g-%g)\n",
			v.Data.Label, gaugeBar(*v.Data.Value, min, max, 20), *v.Data.Value, v.Data.Unit, min, max)

	case viz.KindCustom:
		fmt.Fprintf(w, "  custom component: %s\n", v.Data.CustomComponent)
	}
}

// gaugeBar draws value's position in [min, max] as a bar of width cells.
func gaugeBar(value, min, max float64, width int) string {
	filled := 0
	if max > min {
		frac := (value - min) / (max - min)
		switch {
		case frac < 0:
			frac = 0
		case frac > 1:
			frac = 1
		}
		filled = int(frac * float64(width))
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
