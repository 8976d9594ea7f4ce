package standings

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/cmd/cmdutil"
	"github.com/mpapenbr/skirace-standings-go/pkg/model"
	"github.com/mpapenbr/skirace-standings-go/pkg/view"
)

type options struct {
	gender string
	class  string
	event  string
	season bool
}

func NewStandingsCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "prints individual, team or season standings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.SetupLogger()
			return runStandings(cmd, &opts)
		},
	}
	cmd.Flags().StringVarP(&opts.gender, "gender", "g", "M", "gender (M or F)")
	cmd.Flags().StringVarP(&opts.class, "class", "c", "Varsity",
		"class filter (Varsity, JV or empty for all)")
	cmd.Flags().StringVarP(&opts.event, "event", "e", "",
		"event date (YYYY-MM-DD), defaults to the latest event")
	cmd.Flags().BoolVar(&opts.season, "season", false, "print season standings")
	return cmd
}

func runStandings(cmd *cobra.Command, opts *options) error {
	gender := model.ParseGender(opts.gender)
	if gender == "" {
		return fmt.Errorf("invalid gender %q", opts.gender)
	}
	engine, err := cmdutil.NewEngine()
	if err != nil {
		return err
	}
	season, err := cmdutil.NewLoader().Load(cmd.Context())
	if err != nil {
		log.Error("could not load season", log.ErrorField(err))
		return err
	}
	out := cmd.OutOrStdout()
	if opts.season {
		return printSeason(out, engine.Season(season.Events, gender, opts.class))
	}

	var event *model.Event
	if opts.event == "" {
		if len(season.Events) == 0 {
			return view.ErrEventNotFound
		}
		event = season.Events[len(season.Events)-1]
	} else if event, err = view.FindEvent(season, opts.event); err != nil {
		return fmt.Errorf("event %s: %w", opts.event, err)
	}

	fmt.Fprintf(out, "%s %s (%s)\n\n", event.Date, event.Name, event.Location)
	racers := event.Racers()
	if err := printIndividual(out, engine.Individual(racers, gender, opts.class)); err != nil {
		return err
	}
	if opts.class == "" {
		return nil
	}
	fmt.Fprintln(out)
	return printTeams(out, engine.TeamStandings(racers, gender, opts.class, 0))
}
