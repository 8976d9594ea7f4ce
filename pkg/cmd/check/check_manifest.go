package check

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/skirace-standings-go/log"
	"github.com/mpapenbr/skirace-standings-go/pkg/cmd/cmdutil"
)

func NewCheckManifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "load the season manifest and log the resulting events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdutil.SetupLogger()
			season, err := cmdutil.NewLoader().Load(cmd.Context())
			if err != nil {
				log.Error("could not load season", log.ErrorField(err))
				return err
			}
			log.Info("season", log.String("name", season.Name),
				log.Int("events", len(season.Events)))
			for _, e := range season.Events {
				log.Info("event",
					log.String("date", e.Date),
					log.String("name", e.Name),
					log.String("location", e.Location),
					log.String("discipline", e.Discipline),
					log.Int("races", len(e.Races)),
					log.Int("racers", len(e.Racers())))
			}
			return nil
		},
	}
}
