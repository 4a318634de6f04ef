package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"teamreel/internal/catalog"
	"teamreel/internal/workbook"
)

type videoView struct {
	Row         int      `json:"row"`
	Label       string   `json:"label"`
	Code        string   `json:"code,omitempty"`
	Value       *float64 `json:"value,omitempty"`
	VideoNumber string   `json:"video_number,omitempty"`
	Duration    string   `json:"duration,omitempty"`
	VideoID     string   `json:"video_id,omitempty"`
	Matches     []int    `json:"matches,omitempty"`
}

func newVideosCommand(ctx *commandContext) *cobra.Command {
	var workbookPath string
	var asJSON bool

	videosCmd := &cobra.Command{
		Use:   "videos",
		Short: "Inspect the workbook video catalog",
	}
	videosCmd.PersistentFlags().StringVarP(&workbookPath, "workbook", "w", "", "Event workbook (.xlsx)")
	videosCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print entries as JSON")
	_ = videosCmd.MarkPersistentFlagRequired("workbook")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog entries in sheet order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loadCatalog(cmd, ctx, workbookPath)
			if err != nil {
				return err
			}
			return printVideos(cmd, dataset.Entries(), asJSON)
		},
	}

	var limit int
	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find catalog entries by code or approximate label",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loadCatalog(cmd, ctx, workbookPath)
			if err != nil {
				return err
			}
			return printVideos(cmd, dataset.Search(strings.Join(args, " "), limit), asJSON)
		},
	}
	searchCmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results (0 = all)")

	videosCmd.AddCommand(listCmd, searchCmd)
	return videosCmd
}

func loadCatalog(cmd *cobra.Command, ctx *commandContext, path string) (*catalog.Dataset, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return nil, err
	}
	wb, err := workbook.Open(path, logger)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	dataset, diags, err := wb.ReadVideos(workbook.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}
	diags.Log(cmd.Context(), logger)
	return dataset, nil
}

func printVideos(cmd *cobra.Command, entries []*catalog.Entry, asJSON bool) error {
	views := make([]videoView, 0, len(entries))
	for _, e := range entries {
		views = append(views, videoView{
			Row:         e.Row + 1,
			Label:       e.Label,
			Code:        e.Identity.String(),
			Value:       e.Value,
			VideoNumber: e.VideoNumber,
			Duration:    e.Duration,
			VideoID:     e.VideoID,
			Matches:     e.Matches,
		})
	}
	if asJSON {
		return writeJSON(cmd, views)
	}

	out := cmd.OutOrStdout()
	if len(views) == 0 {
		fmt.Fprintln(out, "No videos found.")
		return nil
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		value := ""
		if v.Value != nil {
			value = strconv.FormatFloat(*v.Value, 'f', -1, 64)
		}
		matches := make([]string, len(v.Matches))
		for i, m := range v.Matches {
			matches[i] = strconv.Itoa(m)
		}
		rows = append(rows, []string{
			strconv.Itoa(v.Row), v.Label, v.Code, value, v.VideoNumber, v.Duration, strings.Join(matches, ", "),
		})
	}
	fmt.Fprintln(out, renderTable(out,
		[]string{"Row", "Team", "Code", "Value", "Video", "Duration", "Matches"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight},
	))
	return nil
}
